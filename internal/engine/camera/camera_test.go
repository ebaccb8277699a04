package camera

import (
	"testing"

	"github.com/Faultbox/mannequin/pkg/math"
)

func near(a, b float32) bool {
	d := a - b
	return d < 1e-3 && d > -1e-3
}

func TestSetRotation(t *testing.T) {
	s := DefaultState()

	s.SetRotation(10, 95)
	if s.RotationX != 10 || s.RotationY != 89 {
		t.Errorf("SetRotation(10, 95): got (%f, %f), want (10, 89)", s.RotationX, s.RotationY)
	}

	s.SetRotation(-720, -100)
	if s.RotationX != -720 || s.RotationY != -89 {
		t.Errorf("SetRotation(-720, -100): got (%f, %f)", s.RotationX, s.RotationY)
	}
}

func TestSetDistance(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0.1, 1.5},
		{1.5, 1.5},
		{3, 3},
		{6, 6},
		{42, 6},
	}
	s := DefaultState()
	for _, tt := range tests {
		s.SetDistance(tt.in)
		if s.Distance != tt.want {
			t.Errorf("SetDistance(%f) = %f, want %f", tt.in, s.Distance, tt.want)
		}
	}
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()
	if s.Distance != 3 || s.RotationX != 0 || s.RotationY != 15 {
		t.Errorf("DefaultState: %+v", s)
	}

	clamped := NewState(100, 5, 200)
	if clamped.Distance != MaxDistance || clamped.RotationY != MaxPitch {
		t.Errorf("NewState should clamp: %+v", clamped)
	}
}

func TestViewMatrixUnrotated(t *testing.T) {
	s := NewState(3, 0, 0)

	eye := s.Eye()
	if !near(eye.X, 0) || !near(eye.Y, LookHeight) || !near(eye.Z, 3) {
		t.Errorf("eye: got %+v, want (0, 1.5, 3)", eye)
	}

	p := s.ViewMatrix().TransformPoint([3]float32{0, LookHeight, 0})
	if !near(p[0], 0) || !near(p[1], 0) || !near(p[2], -3) {
		t.Errorf("look-at point in view space: got %v, want (0, 0, -3)", p)
	}
}

func TestViewMatrixYaw(t *testing.T) {
	// A quarter turn of yaw brings a point on +X to where the camera looks.
	s := NewState(3, 90, 0)
	v := s.ViewMatrix()

	p := v.TransformPoint([3]float32{1, 0, 0})
	q := math.RotateY(math.Radians(90)).TransformPoint([3]float32{1, 0, 0})
	want := math.LookAt(
		math.Vec3{Y: LookHeight, Z: 3},
		math.Vec3{Y: LookHeight},
		math.Vec3{Y: 1},
	).TransformPoint(q)
	for i := range p {
		if !near(p[i], want[i]) {
			t.Fatalf("yawed view: got %v, want %v", p, want)
		}
	}
}

func TestDrag(t *testing.T) {
	d := Drag(10, -4, DefaultDragSensitivity)
	if d.X != 5 || d.Y != -2 {
		t.Errorf("Drag: got %+v, want (5, -2)", d)
	}

	s := NewState(3, 0, 85)
	s.ApplyDrag(Drag(20, 20, 0.5))
	if s.RotationX != 10 || s.RotationY != 89 {
		t.Errorf("ApplyDrag: got (%f, %f), want (10, 89)", s.RotationX, s.RotationY)
	}
}

func TestPinch(t *testing.T) {
	if _, ok := PinchScale(0, 100); ok {
		t.Error("first pinch sample should not produce a scale")
	}

	scale, ok := PinchScale(100, 200)
	if !ok || scale != 2 {
		t.Fatalf("PinchScale(100, 200) = %f, %v", scale, ok)
	}

	s := NewState(4, 0, 0)
	s.ApplyPinch(scale)
	if s.Distance != 2 {
		t.Errorf("ApplyPinch(2): distance %f, want 2", s.Distance)
	}

	s.ApplyPinch(0.1)
	if s.Distance != MaxDistance {
		t.Errorf("pinch out should clamp to %f, got %f", MaxDistance, s.Distance)
	}

	s.ApplyPinch(0)
	if s.Distance != MaxDistance {
		t.Error("zero scale should be ignored")
	}
}

func TestWheelScale(t *testing.T) {
	if s := WheelScale(1, 0.1); !near(s, 1.1) {
		t.Errorf("WheelScale(1): got %f", s)
	}
	if s := WheelScale(-100, 0.1); s != 0.1 {
		t.Errorf("WheelScale should floor at 0.1, got %f", s)
	}
}
