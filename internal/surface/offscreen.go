package surface

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Script produces the events delivered after the given presented frame.
type Script func(frame int) []Event

// Offscreen renders into an in-memory gg raster. Events come from Push, an
// optional Script and the optional frame limit.
type Offscreen struct {
	dc        *gg.Context
	spec      Spec
	queue     []Event
	script    Script
	maxFrames int
	presented int
	closed    bool
}

type OffscreenOption func(*Offscreen)

// WithMaxFrames makes the surface report a quit event once n frames have been
// presented.
func WithMaxFrames(n int) OffscreenOption {
	return func(o *Offscreen) { o.maxFrames = n }
}

func WithScript(s Script) OffscreenOption {
	return func(o *Offscreen) { o.script = s }
}

func NewOffscreen(opts ...OffscreenOption) *Offscreen {
	o := &Offscreen{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Offscreen) Name() string { return "offscreen" }

func (o *Offscreen) Open(spec Spec) error {
	if o.closed {
		return ErrClosed
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return fmt.Errorf("surface: invalid size %dx%d", spec.Width, spec.Height)
	}
	face, err := LoadFace(spec.FontPath, spec.FontSize)
	if err != nil {
		return err
	}
	o.spec = spec
	o.dc = gg.NewContext(spec.Width, spec.Height)
	o.dc.SetFont(face)
	return nil
}

// LoadFace loads a TTF/OTF face at size points. An empty path selects the
// embedded Go Regular face.
func LoadFace(path string, size int) (text.Face, error) {
	if size <= 0 {
		size = 16
	}
	var (
		src *text.FontSource
		err error
	)
	if path == "" {
		src, err = text.NewFontSource(goregular.TTF)
	} else {
		src, err = text.NewFontSourceFromFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("surface: load font %q: %w", path, err)
	}
	return src.Face(float64(size)), nil
}

func (o *Offscreen) Spec() Spec { return o.spec }

// Presented reports how many frames have been presented since Open.
func (o *Offscreen) Presented() int { return o.presented }

// Push queues events for the next PollEvents.
func (o *Offscreen) Push(events ...Event) {
	o.queue = append(o.queue, events...)
}

func (o *Offscreen) BeginFrame() {}

func (o *Offscreen) Present() error {
	if o.closed {
		return ErrClosed
	}
	if o.dc == nil {
		return ErrNotOpen
	}
	o.presented++
	if o.script != nil {
		o.queue = append(o.queue, o.script(o.presented)...)
	}
	if o.maxFrames > 0 && o.presented >= o.maxFrames {
		o.queue = append(o.queue, QuitEvent())
	}
	return nil
}

func (o *Offscreen) PollEvents() []Event {
	events := o.queue
	o.queue = nil
	return events
}

func (o *Offscreen) Snapshot() (image.Image, error) {
	if o.closed {
		return nil, ErrClosed
	}
	if o.dc == nil {
		return nil, ErrNotOpen
	}
	if err := o.dc.FlushGPU(); err != nil {
		return nil, err
	}
	return o.dc.Image(), nil
}

func (o *Offscreen) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true
	if o.dc == nil {
		return nil
	}
	return o.dc.Close()
}

func (o *Offscreen) Clear(c color.Color) {
	if o.dc == nil {
		return
	}
	o.dc.ClearWithColor(gg.FromColor(c))
}

func (o *Offscreen) FillRect(x, y, w, h float64, c color.Color) {
	if o.dc == nil {
		return
	}
	o.dc.SetColor(c)
	o.dc.DrawRectangle(x, y, w, h)
	_ = o.dc.Fill()
}

func (o *Offscreen) StrokeRect(x, y, w, h, width float64, c color.Color) {
	if o.dc == nil {
		return
	}
	o.dc.SetColor(c)
	o.dc.SetLineWidth(width)
	o.dc.DrawRectangle(x, y, w, h)
	_ = o.dc.Stroke()
}

func (o *Offscreen) FillCircle(x, y, r float64, c color.Color) {
	if o.dc == nil {
		return
	}
	o.dc.SetColor(c)
	o.dc.DrawCircle(x, y, r)
	_ = o.dc.Fill()
}

func (o *Offscreen) Line(x1, y1, x2, y2, width float64, c color.Color) {
	if o.dc == nil {
		return
	}
	o.dc.SetColor(c)
	o.dc.SetLineWidth(width)
	o.dc.DrawLine(x1, y1, x2, y2)
	_ = o.dc.Stroke()
}

func (o *Offscreen) Text(s string, x, y float64, c color.Color) {
	if o.dc == nil {
		return
	}
	o.dc.SetColor(c)
	o.dc.DrawStringAnchored(s, x, y, 0, 1)
}

func (o *Offscreen) MeasureText(s string) (float64, float64) {
	if o.dc == nil {
		return 0, 0
	}
	return o.dc.MeasureString(s)
}
