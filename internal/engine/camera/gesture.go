package camera

// DefaultDragSensitivity is degrees of rotation per pixel of drag.
const DefaultDragSensitivity = 0.5

// Delta is a rotation change in degrees.
type Delta struct {
	X, Y float32
}

// Drag converts a pointer movement in pixels into a rotation delta.
func Drag(dx, dy, sensitivity float32) Delta {
	return Delta{X: dx * sensitivity, Y: dy * sensitivity}
}

// PinchScale returns the ratio of the current to the previous distance
// between two pointers. It reports false when either distance is not
// positive, which happens on the first sample of a pinch.
func PinchScale(prev, cur float32) (float32, bool) {
	if prev <= 0 || cur <= 0 {
		return 1, false
	}
	return cur / prev, true
}

// WheelScale maps wheel notches to a pinch-equivalent scale; positive
// delta zooms in.
func WheelScale(delta, sensitivity float32) float32 {
	scale := 1 + delta*sensitivity
	if scale < 0.1 {
		scale = 0.1
	}
	return scale
}

// ApplyDrag adds d to the rotation, subject to the pitch clamp.
func (s *State) ApplyDrag(d Delta) {
	s.SetRotation(s.RotationX+d.X, s.RotationY+d.Y)
}

// ApplyPinch divides the distance by scale, subject to the distance clamp.
// Spreading the fingers (scale > 1) moves the camera closer.
func (s *State) ApplyPinch(scale float32) {
	if scale <= 0 {
		return
	}
	s.SetDistance(s.Distance / scale)
}

// Apply feeds a tracked gesture into the camera.
func (s *State) Apply(g Gesture) {
	switch g.Kind {
	case GestureDrag:
		s.ApplyDrag(g.Delta)
	case GesturePinch:
		s.ApplyPinch(g.Scale)
	}
}
