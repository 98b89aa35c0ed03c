package vis

import (
	"bytes"
	"context"
	"image"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/vis/internal/logging"
	"github.com/san-kum/vis/internal/surface"
)

type plain struct{ updates int }

func (p *plain) Update(*View, *Controller) { p.updates++ }

type clicker struct {
	plain
	clicks []image.Point
	states []bool
}

func (c *clicker) Click(pos image.Point, pressed bool) {
	c.clicks = append(c.clicks, pos)
	c.states = append(c.states, pressed)
}

func TestAddKeepsClickablesSubsequence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		c := NewController(Args{})
		var marked []Renderable
		n := rng.Intn(20)
		for i := 0; i < n; i++ {
			if rng.Intn(2) == 0 {
				cl := &clicker{}
				c.AddClickable(cl)
				marked = append(marked, cl)
			} else {
				c.Add(&plain{})
			}
		}

		objs, clicks := c.Objects(), c.Clickables()
		if len(clicks) > len(objs) {
			t.Fatalf("trial %d: %d clickables > %d objects", trial, len(clicks), len(objs))
		}
		if len(clicks) != len(marked) {
			t.Fatalf("trial %d: expected %d clickables, got %d", trial, len(marked), len(clicks))
		}
		// clickables appear in objects in the same order
		j := 0
		for _, o := range objs {
			if j < len(clicks) && o == Renderable(clicks[j]) {
				j++
			}
		}
		if j != len(clicks) {
			t.Errorf("trial %d: clickables are not a subsequence of objects", trial)
		}
	}
}

func TestAddNoDeduplication(t *testing.T) {
	c := NewController(Args{})
	cl := &clicker{}
	c.AddClickable(cl)
	c.AddClickable(cl)

	c.Dispatch([]surface.Event{surface.MouseEvent(true, 1, 1)})
	if len(cl.clicks) != 2 {
		t.Errorf("expected 2 clicks for an object added twice, got %d", len(cl.clicks))
	}
	if len(c.Objects()) != 2 {
		t.Errorf("expected 2 objects, got %d", len(c.Objects()))
	}
}

func TestToggleParity(t *testing.T) {
	for n := 0; n < 7; n++ {
		c := NewController(Args{})
		for i := 0; i < n; i++ {
			c.Dispatch([]surface.Event{surface.KeyEvent(surface.KeySpace)})
		}
		want := n%2 == 0
		if c.Animating() != want {
			t.Errorf("%d toggles: expected animating=%v", n, want)
		}
	}
}

func TestClickOnlyReachesClickables(t *testing.T) {
	c := NewController(Args{})
	p := &plain{}
	cl := &clicker{}
	c.Add(p)
	c.AddClickable(cl)

	c.Dispatch([]surface.Event{surface.MouseEvent(true, 500, 700)})

	if len(cl.clicks) != 1 {
		t.Fatalf("expected exactly one click, got %d", len(cl.clicks))
	}
	if cl.clicks[0] != image.Pt(500, 700) || !cl.states[0] {
		t.Errorf("unexpected click %v pressed=%v", cl.clicks[0], cl.states[0])
	}
}

func TestDispatchQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   surface.Event
		quit bool
	}{
		{"window close", surface.QuitEvent(), true},
		{"escape", surface.KeyEvent(surface.KeyEscape), true},
		{"space", surface.KeyEvent(surface.KeySpace), false},
		{"other key", surface.KeyEvent(surface.KeyOther), false},
		{"mouse up", surface.MouseEvent(false, 0, 0), false},
	}
	for _, tt := range tests {
		c := NewController(Args{})
		c.Dispatch([]surface.Event{tt.ev})
		if c.Quitting() != tt.quit {
			t.Errorf("%s: expected quit=%v", tt.name, tt.quit)
		}
	}
}

func TestWithAnimation(t *testing.T) {
	c := NewController(Args{}, WithAnimation(false))
	if c.Animating() {
		t.Error("expected paused controller")
	}
	c.SetAnimating(true)
	if !c.Animating() {
		t.Error("expected animating controller")
	}
}

func TestRunUntilMaxFrames(t *testing.T) {
	v, off := newTestView(t, &testEncoder{}, surface.WithMaxFrames(5))
	c := NewController(Args{})
	p := &plain{}
	c.Add(p)

	if err := c.Run(context.Background(), v); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if p.updates != 5 || off.Presented() != 5 {
		t.Errorf("expected 5 updates and presents, got %d / %d", p.updates, off.Presented())
	}
	if _, err := off.Snapshot(); err == nil {
		t.Error("surface should be closed after Run")
	}
}

func TestRunRecords(t *testing.T) {
	enc := &testEncoder{}
	v, _ := newTestView(t, enc, surface.WithMaxFrames(6))
	out := filepath.Join(t.TempDir(), "rec.mp4")
	c := NewController(Args{Record: true, FPS: 12, Output: out})
	c.Add(&plain{})

	if err := c.Run(context.Background(), v); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if v.FPS() != 12 {
		t.Errorf("expected fps override 12, got %d", v.FPS())
	}
	if enc.calls != 1 || enc.job.FPS != 12 || enc.job.Output != out {
		t.Errorf("unexpected encode: calls=%d job=%+v", enc.calls, enc.job)
	}
	if len(enc.onDisk) != 6 {
		t.Errorf("expected 6 frames before encode, got %d", len(enc.onDisk))
	}
	if !c.Encoded().OK() || c.Encoded().Frames != 6 {
		t.Errorf("unexpected encode result %+v", c.Encoded())
	}
	left, _ := filepath.Glob(filepath.Join(filepath.Dir(out), "tmp", "frame_*.jpg"))
	if len(left) != 0 {
		t.Errorf("expected no frames left, got %d", len(left))
	}
}

func TestRunPauseSkipsCapture(t *testing.T) {
	enc := &testEncoder{}
	script := func(frame int) []surface.Event {
		switch frame {
		case 2, 4:
			return []surface.Event{surface.KeyEvent(surface.KeySpace)}
		case 6:
			return []surface.Event{surface.KeyEvent(surface.KeyEscape)}
		}
		return nil
	}
	v, _ := newTestView(t, enc, surface.WithScript(script))
	c := NewController(Args{Record: true, Output: filepath.Join(t.TempDir(), "p.mp4")})

	if err := c.Run(context.Background(), v); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	// frames 1,2 animate; 3,4 paused; 5,6 animate
	if v.Frame() != 4 {
		t.Errorf("expected 4 animated frames, got %d", v.Frame())
	}
	if len(enc.onDisk) != 4 {
		t.Errorf("expected 4 captured frames, got %d", len(enc.onDisk))
	}
	for i, f := range enc.onDisk {
		if want := filepath.Base(v.frames.Path(i + 1)); filepath.Base(f) != want {
			t.Errorf("frame %d: expected %s, got %s", i+1, want, filepath.Base(f))
		}
	}
}

func TestRunContextCancel(t *testing.T) {
	v, off := newTestView(t, &testEncoder{})
	ctx, cancel := context.WithCancel(context.Background())
	c := NewController(Args{})
	c.Add(RenderFunc(func(v *View, _ *Controller) {
		if v.Frame() == 2 {
			cancel()
		}
	}))

	if err := c.Run(ctx, v); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if off.Presented() != 3 {
		t.Errorf("expected loop to stop after 3 frames, got %d", off.Presented())
	}
	if !c.Quitting() {
		t.Error("cancel should set quit")
	}
}

func TestRunLogsFPS(t *testing.T) {
	var buf bytes.Buffer
	now := time.Unix(0, 0)
	clock := func() time.Time { return now }

	v, _ := newTestView(t, &testEncoder{}, surface.WithMaxFrames(8))
	c := NewController(Args{FPS: 30},
		WithNow(clock),
		WithControllerLogger(logging.New(&buf, "info", "text")),
	)
	c.Add(RenderFunc(func(*View, *Controller) { now = now.Add(time.Second) }))

	if err := c.Run(context.Background(), v); err != nil {
		t.Fatal(err)
	}
	samples := c.FPSSamples()
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %v", samples)
	}
	if samples[0] != 1 {
		t.Errorf("expected 1 fps, got %f", samples[0])
	}
	out := buf.String()
	if !strings.Contains(out, "msg=fps") || !strings.Contains(out, "msg=\"fps override\"") {
		t.Errorf("missing log records: %q", out)
	}
}

func TestFPSMeter(t *testing.T) {
	start := time.Unix(100, 0)
	m := fpsMeter{interval: 3 * time.Second}
	m.reset(start)

	for i := 1; i <= 5; i++ {
		if _, ok := m.frame(start.Add(time.Duration(i) * 500 * time.Millisecond)); ok {
			t.Fatalf("unexpected sample at frame %d", i)
		}
	}
	fps, ok := m.frame(start.Add(3 * time.Second))
	if !ok || fps != 2 {
		t.Errorf("expected 2 fps sample, got %f ok=%v", fps, ok)
	}
	if m.frames != 0 {
		t.Error("meter should reset after sample")
	}
}

func TestFrameClock(t *testing.T) {
	now := time.Unix(0, 0)
	var slept []time.Duration
	c := &FrameClock{
		now:   func() time.Time { return now },
		sleep: func(d time.Duration) { slept = append(slept, d); now = now.Add(d) },
	}

	if d := c.Tick(10); d != 0 {
		t.Errorf("first tick should return 0, got %v", d)
	}
	now = now.Add(30 * time.Millisecond)
	if d := c.Tick(10); d != 100*time.Millisecond {
		t.Errorf("expected 100ms frame, got %v", d)
	}
	if len(slept) != 1 || slept[0] != 70*time.Millisecond {
		t.Errorf("expected one 70ms sleep, got %v", slept)
	}

	now = now.Add(250 * time.Millisecond)
	if d := c.Tick(10); d != 250*time.Millisecond {
		t.Errorf("slow frame should not sleep, got %v", d)
	}
	if len(slept) != 1 {
		t.Errorf("unexpected extra sleep %v", slept)
	}
}

func TestOutputPathFor(t *testing.T) {
	got := OutputPathFor(filepath.Join("/work", "day14", "bin", "day14.exe"))
	want := filepath.Join("/work", "day14", "day14.mp4")
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
