package vis

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/san-kum/vis/internal/capture"
	"github.com/san-kum/vis/internal/logging"
	"github.com/san-kum/vis/internal/surface"
)

// Args are the parsed command-line options a Controller acts on.
type Args struct {
	Record bool
	FPS    int    // overrides the view's FPS when > 0
	Output string // video path; derived from the executable when empty
}

// Controller owns the animate/quit state and the object lists, and runs the
// event loop.
type Controller struct {
	animate    bool
	quit       bool
	objects    []Renderable
	clickables []Clickable
	args       Args

	log     *slog.Logger
	now     func() time.Time
	meter   fpsMeter
	encoded capture.EncodeResult
}

type ControllerOption func(*Controller)

// WithAnimation sets the initial animation state (default on).
func WithAnimation(on bool) ControllerOption {
	return func(c *Controller) { c.animate = on }
}

func WithControllerLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) { c.log = l }
}

// WithNow replaces the wall clock used for FPS measurement.
func WithNow(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

func WithFPSInterval(d time.Duration) ControllerOption {
	return func(c *Controller) { c.meter.interval = d }
}

func NewController(args Args, opts ...ControllerOption) *Controller {
	c := &Controller{
		animate: true,
		args:    args,
		now:     time.Now,
		meter:   fpsMeter{interval: DefaultFPSInterval},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.Discard()
	}
	return c
}

// Add appends r to the render list. Adding the same object twice renders it
// twice.
func (c *Controller) Add(r Renderable) {
	c.objects = append(c.objects, r)
}

// AddClickable appends obj to the render list and to the click list.
func (c *Controller) AddClickable(obj Clickable) {
	c.objects = append(c.objects, obj)
	c.clickables = append(c.clickables, obj)
}

// Run drives v until quit: render, dispatch input, report FPS. It then closes
// the surface and finishes any recording. Cancelling ctx ends the loop like a
// quit event; the recording is still encoded.
func (c *Controller) Run(ctx context.Context, v *View) error {
	if c.args.Record {
		out := c.args.Output
		if out == "" {
			var err error
			if out, err = DefaultOutputPath(); err != nil {
				return fmt.Errorf("vis: derive output path: %w", err)
			}
		}
		if err := v.Record(out); err != nil {
			return err
		}
	}
	if c.args.FPS > 0 {
		v.SetFPS(c.args.FPS)
		c.log.Info("fps override", "fps", v.FPS())
	}

	v.PollEvents()
	c.meter.reset(c.now())

	var loopErr error
	for !c.quit {
		if ctx.Err() != nil {
			c.quit = true
			break
		}
		if err := v.Render(c); err != nil {
			loopErr = err
			break
		}
		c.Dispatch(v.PollEvents())
		if fps, ok := c.meter.frame(c.now()); ok {
			c.log.Info("fps", "value", fmt.Sprintf("%.2f", fps), "frame", v.Frame())
		}
	}

	closeErr := v.Close()
	res, finishErr := v.Finish(context.WithoutCancel(ctx))
	c.encoded = res
	return errors.Join(loopErr, closeErr, finishErr)
}

// Dispatch applies a batch of input events.
func (c *Controller) Dispatch(events []surface.Event) {
	for _, ev := range events {
		switch ev.Type {
		case surface.EventQuit:
			c.quit = true
		case surface.EventKeyDown:
			switch ev.Key {
			case surface.KeySpace:
				c.Toggle()
			case surface.KeyEscape:
				c.quit = true
			}
		case surface.EventMouseDown:
			c.click(ev.Pos, true)
		case surface.EventMouseUp:
			c.click(ev.Pos, false)
		}
	}
}

// click broadcasts to every clickable; there is no hit-testing here.
func (c *Controller) click(pos image.Point, pressed bool) {
	for _, obj := range c.clickables {
		obj.Click(pos, pressed)
	}
}

func (c *Controller) Animating() bool { return c.animate }

func (c *Controller) SetAnimating(on bool) { c.animate = on }

// Toggle flips between animating and paused.
func (c *Controller) Toggle() { c.animate = !c.animate }

// Quit stops the loop after the current iteration. There is no way back.
func (c *Controller) Quit() { c.quit = true }

func (c *Controller) Quitting() bool { return c.quit }

func (c *Controller) Objects() []Renderable { return c.objects }

func (c *Controller) Clickables() []Clickable { return c.clickables }

func (c *Controller) Args() Args { return c.args }

// FPSSamples returns every FPS measurement taken so far.
func (c *Controller) FPSSamples() []float64 { return c.meter.samples }

// Encoded is the result of the encode performed at the end of Run, zero if
// nothing was recorded.
func (c *Controller) Encoded() capture.EncodeResult { return c.encoded }
