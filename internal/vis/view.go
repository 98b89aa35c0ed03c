package vis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/vis/internal/capture"
	"github.com/san-kum/vis/internal/logging"
	"github.com/san-kum/vis/internal/surface"
)

const (
	DefaultWidth    = 1920
	DefaultHeight   = 1080
	DefaultFPS      = 60
	DefaultFontSize = 16
	DefaultTitle    = "AOC"
)

// View owns the surface, frame pacing, the frame counter and, when armed,
// per-frame capture and the final video encode.
type View struct {
	Width    int
	Height   int
	FontSize int
	FontPath string

	fps     int
	frame   int
	save    bool
	ready   bool
	surface surface.Surface
	clock   Clock
	log     *slog.Logger

	quality int
	frames  *capture.FrameStore
	encoder capture.Encoder
	output  string
}

type ViewOption func(*View)

func WithSize(w, h int) ViewOption {
	return func(v *View) { v.Width, v.Height = w, h }
}

func WithFPS(fps int) ViewOption {
	return func(v *View) { v.fps = fps }
}

// WithFont sets the font file and pixel size. An empty path lets the surface
// pick its built-in font.
func WithFont(path string, size int) ViewOption {
	return func(v *View) { v.FontPath, v.FontSize = path, size }
}

func WithClock(c Clock) ViewOption {
	return func(v *View) { v.clock = c }
}

func WithEncoder(e capture.Encoder) ViewOption {
	return func(v *View) { v.encoder = e }
}

func WithJPEGQuality(q int) ViewOption {
	return func(v *View) { v.quality = q }
}

func WithLogger(l *slog.Logger) ViewOption {
	return func(v *View) { v.log = l }
}

func NewView(s surface.Surface, opts ...ViewOption) *View {
	v := &View{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FontSize: DefaultFontSize,
		fps:      DefaultFPS,
		surface:  s,
		clock:    NewFrameClock(),
		quality:  capture.DefaultQuality,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.encoder == nil {
		v.encoder = capture.NewFFmpeg("")
	}
	if v.log == nil {
		v.log = logging.Discard()
	}
	return v
}

// Setup opens the surface and clears it to black.
func (v *View) Setup(title string) error {
	if title == "" {
		title = DefaultTitle
	}
	err := v.surface.Open(surface.Spec{
		Title:    title,
		Width:    v.Width,
		Height:   v.Height,
		FontPath: v.FontPath,
		FontSize: v.FontSize,
	})
	if err != nil {
		return fmt.Errorf("vis: setup %s surface: %w", v.surface.Name(), err)
	}
	v.surface.BeginFrame()
	v.surface.Clear(surface.Black)
	v.ready = true
	return nil
}

// Record arms capture mode for a video at output. Stale frames from earlier
// runs are deleted first.
func (v *View) Record(output string) error {
	if output == "" {
		return ErrNoOutput
	}
	frames := capture.ForOutput(output, v.quality)
	removed, err := frames.Clean()
	if err != nil {
		return err
	}
	v.save = true
	v.output = output
	v.frames = frames
	v.log.Info("recording video", "output", output, "frames", frames.Dir(), "stale_removed", removed)
	return nil
}

// Render runs one tick: every object's Update in insertion order, present,
// pace, then count and (if armed) capture the frame when animating.
func (v *View) Render(c *Controller) error {
	if !v.ready {
		return ErrNotSetup
	}
	v.surface.BeginFrame()
	for _, obj := range c.objects {
		obj.Update(v, c)
	}
	if err := v.surface.Present(); err != nil {
		return err
	}
	v.clock.Tick(v.fps)

	if !c.animate {
		return nil
	}
	v.frame++
	if !v.save {
		return nil
	}
	img, err := v.surface.Snapshot()
	if err != nil {
		return fmt.Errorf("vis: snapshot frame %d: %w", v.frame, err)
	}
	return v.frames.Write(v.frame, img)
}

// PollEvents drains the surface's input queue.
func (v *View) PollEvents() []surface.Event {
	return v.surface.PollEvents()
}

// Close tears down the surface. Captured frames stay on disk for Finish.
func (v *View) Close() error {
	v.ready = false
	return v.surface.Close()
}

// Finish encodes the captured frames into the output video and deletes them.
// It does nothing unless Record armed capture. Frames are removed whether or
// not the encoder succeeded.
func (v *View) Finish(ctx context.Context) (capture.EncodeResult, error) {
	if !v.save {
		return capture.EncodeResult{}, nil
	}
	v.save = false

	files, err := v.frames.List()
	if err != nil {
		return capture.EncodeResult{}, err
	}

	var (
		res    capture.EncodeResult
		encErr error
	)
	if len(files) == 0 {
		encErr = capture.ErrNoFrames
	} else {
		v.log.Info("saving video", "output", v.output, "frames", len(files), "fps", v.fps)
		res, encErr = v.encoder.Encode(ctx, capture.Job{
			FPS:    v.fps,
			Input:  v.frames.Input(),
			Output: v.output,
			Frames: len(files),
		})
	}
	if encErr != nil {
		v.log.Error("encoder failed", "err", encErr, "exit", res.ExitCode)
	}

	v.log.Info("cleaning up snaps", "dir", v.frames.Dir())
	_, cleanErr := v.frames.Clean()
	return res, errors.Join(encErr, cleanErr)
}

// Canvas is the drawing API for objects.
func (v *View) Canvas() surface.Canvas { return v.surface }

func (v *View) Surface() surface.Surface { return v.surface }

// Frame is the number of animated frames rendered so far.
func (v *View) Frame() int { return v.frame }

func (v *View) FPS() int { return v.fps }

func (v *View) SetFPS(fps int) { v.fps = fps }

func (v *View) Size() (int, int) { return v.Width, v.Height }

func (v *View) Recording() bool { return v.save }

func (v *View) Output() string { return v.output }
