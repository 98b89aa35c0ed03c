package vis

import "image"

// Renderable takes part in every frame's draw pass. Update gets the view
// (drawing, frame counter, size) and the controller (animation state, other
// objects).
type Renderable interface {
	Update(v *View, c *Controller)
}

// Clickable is a Renderable that also receives pointer button events. Click is
// called for every press and release anywhere on the surface; the object does
// its own hit-testing.
type Clickable interface {
	Renderable
	Click(pos image.Point, pressed bool)
}

// RenderFunc adapts a plain function to Renderable.
type RenderFunc func(v *View, c *Controller)

func (f RenderFunc) Update(v *View, c *Controller) { f(v, c) }
