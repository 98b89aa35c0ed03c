package surface

import (
	"errors"
	"image"
	"image/color"
)

var (
	// ErrNotOpen is returned by operations that need Open to have succeeded.
	ErrNotOpen = errors.New("surface: not open")

	// ErrClosed is returned after Close.
	ErrClosed = errors.New("surface: closed")
)

// Spec describes the surface a View asks for.
type Spec struct {
	Title    string
	Width    int
	Height   int
	FontPath string
	FontSize int
}

// Canvas is the drawing API handed to renderable objects.
// Text is positioned by the top-left corner of its box.
type Canvas interface {
	Clear(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, width float64, c color.Color)
	FillCircle(x, y, r float64, c color.Color)
	Line(x1, y1, x2, y2, width float64, c color.Color)
	Text(s string, x, y float64, c color.Color)
	MeasureText(s string) (w, h float64)
}

type Surface interface {
	Canvas
	Name() string
	Open(spec Spec) error
	BeginFrame()
	Present() error
	PollEvents() []Event
	Snapshot() (image.Image, error)
	Close() error
}

var (
	Black = color.RGBA{0, 0, 0, 255}
	White = color.RGBA{255, 255, 255, 255}
)

// RGBA converts any color to 8-bit non-premultiplied components.
func RGBA(c color.Color) color.RGBA {
	if c == nil {
		return Black
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: n.A}
}
