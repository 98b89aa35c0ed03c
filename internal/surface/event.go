package surface

import (
	"fmt"
	"image"
)

type EventType int

const (
	EventQuit EventType = iota + 1
	EventKeyDown
	EventMouseDown
	EventMouseUp
)

func (t EventType) String() string {
	switch t {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "keydown"
	case EventMouseDown:
		return "mousedown"
	case EventMouseUp:
		return "mouseup"
	}
	return fmt.Sprintf("event(%d)", int(t))
}

type Key int

const (
	KeyOther Key = iota
	KeySpace
	KeyEscape
)

// Event is one input event drained from a surface.
// Pos is only meaningful for mouse events.
type Event struct {
	Type EventType
	Key  Key
	Pos  image.Point
}

func QuitEvent() Event { return Event{Type: EventQuit} }

func KeyEvent(k Key) Event { return Event{Type: EventKeyDown, Key: k} }

func MouseEvent(pressed bool, x, y int) Event {
	t := EventMouseUp
	if pressed {
		t = EventMouseDown
	}
	return Event{Type: t, Pos: image.Pt(x, y)}
}
