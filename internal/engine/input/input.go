// Package input translates SDL2 events into viewer events, including the
// pointer streams the camera gesture tracker consumes.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies a translated event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventPointerDown
	EventPointerMove
	EventPointerUp
	EventWheel
)

// MousePointer is the pointer id used for the mouse; touch fingers use
// their SDL finger ids, which are non-negative.
const MousePointer = -1

// touchMouseID is SDL_TOUCH_MOUSEID, the device id of mouse events SDL
// synthesises from touch input.
const touchMouseID = ^uint32(0)

// Event is a processed input event. Pointer coordinates are in window
// pixels for both mouse and touch.
type Event struct {
	Type    EventType
	Key     sdl.Scancode
	Repeat  bool
	Width   int
	Height  int
	Pointer int
	X, Y    float32
	Button  uint8
	Wheel   float32 // positive scrolls away from the user
}

// Input polls and buffers one frame of events.
type Input struct {
	events        []Event
	width, height int
}

// New creates an input handler for a window of the given size. The size
// maps normalised touch coordinates to pixels and follows resize events.
func New(width, height int) *Input {
	return &Input{
		events: make([]Event, 0, 16),
		width:  width,
		height: height,
	}
}

// Update polls SDL events. Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		e, ok := i.Translate(event)
		if !ok {
			continue
		}
		i.events = append(i.events, e)
		if e.Type == EventQuit {
			quit = true
		}
	}
	return quit
}

// Translate converts one SDL event. Mouse events synthesised from touch
// are dropped so each contact is reported once.
func (i *Input) Translate(event sdl.Event) (Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Event{Type: EventQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.width, i.height = int(e.Data1), int(e.Data2)
			return Event{Type: EventWindowResize, Width: i.width, Height: i.height}, true
		}

	case *sdl.KeyboardEvent:
		t := EventKeyUp
		if e.Type == sdl.KEYDOWN {
			t = EventKeyDown
		}
		return Event{Type: t, Key: e.Keysym.Scancode, Repeat: e.Repeat != 0}, true

	case *sdl.MouseMotionEvent:
		if e.Which == touchMouseID {
			return Event{}, false
		}
		return Event{Type: EventPointerMove, Pointer: MousePointer, X: float32(e.X), Y: float32(e.Y)}, true

	case *sdl.MouseButtonEvent:
		if e.Which == touchMouseID {
			return Event{}, false
		}
		t := EventPointerUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventPointerDown
		}
		return Event{Type: t, Pointer: MousePointer, X: float32(e.X), Y: float32(e.Y), Button: e.Button}, true

	case *sdl.MouseWheelEvent:
		if e.Which == touchMouseID || e.Y == 0 {
			return Event{}, false
		}
		wheel := float32(e.Y)
		if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
			wheel = -wheel
		}
		return Event{Type: EventWheel, Wheel: wheel}, true

	case *sdl.TouchFingerEvent:
		out := Event{
			Pointer: int(e.FingerID),
			X:       e.X * float32(i.width),
			Y:       e.Y * float32(i.height),
		}
		switch e.Type {
		case sdl.FINGERDOWN:
			out.Type = EventPointerDown
		case sdl.FINGERMOTION:
			out.Type = EventPointerMove
		case sdl.FINGERUP:
			out.Type = EventPointerUp
		default:
			return Event{}, false
		}
		return out, true
	}
	return Event{}, false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed reports whether the key went down this frame, ignoring repeats.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode && !e.Repeat {
			return true
		}
	}
	return false
}
