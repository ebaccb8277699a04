package camera

import (
	"github.com/Faultbox/mannequin/pkg/math"
)

// GestureKind classifies a tracked movement.
type GestureKind int

const (
	GestureNone GestureKind = iota
	GestureDrag
	GesturePinch
)

// Gesture is the camera-relevant result of one pointer event.
type Gesture struct {
	Kind  GestureKind
	Delta Delta   // GestureDrag
	Scale float32 // GesturePinch
}

type pointer struct {
	id  int
	pos math.Vec2
}

// Tracker turns raw pointer events into drag and pinch gestures. One
// pointer drags; two pointers pinch. Lifting any pointer ends the pinch.
type Tracker struct {
	Sensitivity float32

	pointers []pointer
	last     math.Vec2
	pinch    float32
}

// NewTracker returns a tracker using the given drag sensitivity.
func NewTracker(sensitivity float32) *Tracker {
	return &Tracker{Sensitivity: sensitivity}
}

// Down registers a pointer.
func (t *Tracker) Down(id int, x, y float32) {
	p := math.Vec2{X: x, Y: y}
	for i := range t.pointers {
		if t.pointers[i].id == id {
			t.pointers[i].pos = p
			return
		}
	}
	t.pointers = append(t.pointers, pointer{id: id, pos: p})
	if len(t.pointers) == 1 {
		t.last = p
	}
}

// Move updates a pointer and returns the resulting gesture.
func (t *Tracker) Move(id int, x, y float32) Gesture {
	p := math.Vec2{X: x, Y: y}
	found := false
	for i := range t.pointers {
		if t.pointers[i].id == id {
			t.pointers[i].pos = p
			found = true
			break
		}
	}
	if !found {
		return Gesture{}
	}

	switch len(t.pointers) {
	case 1:
		d := p.Sub(t.last)
		t.last = p
		return Gesture{Kind: GestureDrag, Delta: Drag(d.X, d.Y, t.Sensitivity)}
	case 2:
		dist := t.pointers[0].pos.Distance(t.pointers[1].pos)
		scale, ok := PinchScale(t.pinch, dist)
		t.pinch = dist
		if !ok {
			return Gesture{}
		}
		return Gesture{Kind: GesturePinch, Scale: scale}
	}
	return Gesture{}
}

// Up releases a pointer.
func (t *Tracker) Up(id int) {
	for i := range t.pointers {
		if t.pointers[i].id == id {
			t.pointers = append(t.pointers[:i], t.pointers[i+1:]...)
			break
		}
	}
	t.pinch = 0
	if len(t.pointers) == 1 {
		t.last = t.pointers[0].pos
	}
}

// Active returns the number of pointers down.
func (t *Tracker) Active() int {
	return len(t.pointers)
}
