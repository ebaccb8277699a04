package camera

import "testing"

func TestTrackerDrag(t *testing.T) {
	tr := NewTracker(0.5)
	tr.Down(0, 100, 100)

	g := tr.Move(0, 110, 96)
	if g.Kind != GestureDrag || g.Delta.X != 5 || g.Delta.Y != -2 {
		t.Errorf("first move: got %+v", g)
	}

	g = tr.Move(0, 120, 96)
	if g.Kind != GestureDrag || g.Delta.X != 5 || g.Delta.Y != 0 {
		t.Errorf("second move should be relative to the first: %+v", g)
	}

	tr.Up(0)
	if tr.Active() != 0 {
		t.Errorf("active pointers: %d", tr.Active())
	}
	if g := tr.Move(0, 0, 0); g.Kind != GestureNone {
		t.Errorf("move after up: %+v", g)
	}
}

func TestTrackerPinch(t *testing.T) {
	tr := NewTracker(0.5)
	tr.Down(0, 0, 0)
	tr.Down(1, 100, 0)

	// The first two-finger move only primes the baseline.
	if g := tr.Move(1, 100, 0); g.Kind != GestureNone {
		t.Errorf("priming move: %+v", g)
	}

	g := tr.Move(1, 200, 0)
	if g.Kind != GesturePinch || g.Scale != 2 {
		t.Errorf("spread: got %+v, want scale 2", g)
	}

	s := NewState(4, 0, 0)
	s.Apply(g)
	if s.Distance != 2 {
		t.Errorf("distance after pinch: %f", s.Distance)
	}

	// Lifting a finger resets the baseline and resumes dragging from the
	// remaining pointer's position.
	tr.Up(1)
	g = tr.Move(0, 4, 0)
	if g.Kind != GestureDrag || g.Delta.X != 2 {
		t.Errorf("drag after pinch: %+v", g)
	}

	tr.Down(1, 50, 0)
	if g := tr.Move(1, 60, 0); g.Kind != GestureNone {
		t.Errorf("new pinch should prime again: %+v", g)
	}
}

func TestTrackerIgnoresThirdPointer(t *testing.T) {
	tr := NewTracker(0.5)
	tr.Down(0, 0, 0)
	tr.Down(1, 10, 0)
	tr.Down(2, 20, 0)

	if g := tr.Move(2, 30, 0); g.Kind != GestureNone {
		t.Errorf("three pointers should not gesture: %+v", g)
	}
	if tr.Active() != 3 {
		t.Errorf("active: %d", tr.Active())
	}
}
