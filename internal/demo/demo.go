// Package demo holds the stand-in objects the vis command animates.
package demo

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/san-kum/vis/internal/vis"
)

var (
	ColBg     = color.RGBA{10, 10, 10, 255}
	ColAccent = color.RGBA{180, 180, 180, 255}
	ColSelect = color.RGBA{255, 255, 255, 255}
	ColText   = color.RGBA{140, 140, 140, 255}
	ColGrid   = color.RGBA{30, 30, 30, 255}
)

// Backdrop clears the frame and draws a grid.
type Backdrop struct {
	Spacing float64
}

func (b *Backdrop) Update(v *vis.View, c *vis.Controller) {
	cv := v.Canvas()
	w, h := v.Size()
	cv.Clear(ColBg)
	step := b.Spacing
	if step <= 0 {
		step = 40
	}
	for x := 0.0; x < float64(w); x += step {
		cv.Line(x, 0, x, float64(h), 1, ColGrid)
	}
	for y := 0.0; y < float64(h); y += step {
		cv.Line(0, y, float64(w), y, 1, ColGrid)
	}
}

// Orbit is a ball circling the view center. It only advances while the
// controller is animating.
type Orbit struct {
	Radius float64
	Speed  float64 // radians per frame
	angle  float64
	trail  []image.Point
}

const trailLen = 40

func (o *Orbit) Update(v *vis.View, c *vis.Controller) {
	if c.Animating() {
		o.angle += o.Speed
	}
	w, h := v.Size()
	cx, cy := float64(w)/2, float64(h)/2
	x := cx + o.Radius*math.Cos(o.angle)
	y := cy + o.Radius*math.Sin(o.angle)

	if c.Animating() {
		o.trail = append(o.trail, image.Pt(int(x), int(y)))
		if len(o.trail) > trailLen {
			o.trail = o.trail[1:]
		}
	}

	cv := v.Canvas()
	for i := 1; i < len(o.trail); i++ {
		a, b := o.trail[i-1], o.trail[i]
		cv.Line(float64(a.X), float64(a.Y), float64(b.X), float64(b.Y), 2, ColAccent)
	}
	cv.FillCircle(x, y, 12, ColSelect)
}

// Button is a clickable toggle. It hit-tests every click it is sent.
type Button struct {
	Bounds image.Rectangle
	Label  string
	On     bool
	down   bool
}

func (b *Button) Update(v *vis.View, c *vis.Controller) {
	cv := v.Canvas()
	r := b.Bounds
	fill := ColGrid
	if b.On {
		fill = ColAccent
	}
	cv.FillRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), fill)
	cv.StrokeRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()), 2, ColSelect)

	tw, th := cv.MeasureText(b.Label)
	cv.Text(b.Label, float64(r.Min.X)+(float64(r.Dx())-tw)/2, float64(r.Min.Y)+(float64(r.Dy())-th)/2, ColSelect)
}

// Click toggles on release when the press also started inside.
func (b *Button) Click(pos image.Point, pressed bool) {
	inside := pos.In(b.Bounds)
	if pressed {
		b.down = inside
		return
	}
	if b.down && inside {
		b.On = !b.On
	}
	b.down = false
}

// HUD prints the frame counter and state in the top-left corner.
type HUD struct{}

func (HUD) Update(v *vis.View, c *vis.Controller) {
	state := "running"
	if !c.Animating() {
		state = "paused"
	}
	if v.Recording() {
		state += "  REC"
	}
	line := fmt.Sprintf("frame %05d  %d fps  %s", v.Frame(), v.FPS(), state)
	v.Canvas().Text(line, 12, 12, ColText)
}

// Scene registers the demo objects on c.
func Scene(c *vis.Controller, width, height int) *Button {
	c.Add(&Backdrop{Spacing: 40})
	c.Add(&Orbit{Radius: float64(min(width, height)) / 3, Speed: 0.04})
	btn := &Button{
		Bounds: image.Rect(width-180, height-80, width-20, height-20),
		Label:  "toggle",
	}
	c.AddClickable(btn)
	c.Add(HUD{})
	return btn
}
