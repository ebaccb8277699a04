// Package camera provides the orbit camera state and the translation of
// pointer gestures into camera changes.
package camera

import (
	"github.com/Faultbox/mannequin/pkg/math"
)

// Limits enforced by the setters.
const (
	MinDistance = 1.5
	MaxDistance = 6.0
	MinPitch    = -89.0
	MaxPitch    = 89.0
)

// LookHeight is the height of the look-at point, roughly chest level.
const LookHeight = 1.5

// State is the orbit camera. RotationX is the yaw in degrees and is never
// clamped; RotationY is the pitch in degrees.
type State struct {
	Distance  float32
	RotationX float32
	RotationY float32
}

// NewState returns a camera with the given values, clamped.
func NewState(distance, rotationX, rotationY float32) *State {
	s := &State{}
	s.SetDistance(distance)
	s.SetRotation(rotationX, rotationY)
	return s
}

// DefaultState returns the camera used on startup.
func DefaultState() *State {
	return NewState(3, 0, 15)
}

// SetRotation stores x as given and y clamped to [MinPitch, MaxPitch].
func (s *State) SetRotation(x, y float32) {
	s.RotationX = x
	s.RotationY = math.Clamp(y, MinPitch, MaxPitch)
}

// SetDistance stores d clamped to [MinDistance, MaxDistance].
func (s *State) SetDistance(d float32) {
	s.Distance = math.Clamp(d, MinDistance, MaxDistance)
}

// ViewMatrix looks from (0, LookHeight, Distance) at (0, LookHeight, 0),
// then rotates the world by the pitch about X and the yaw about Y.
func (s *State) ViewMatrix() math.Mat4 {
	eye := math.Vec3{X: 0, Y: LookHeight, Z: s.Distance}
	center := math.Vec3{X: 0, Y: LookHeight, Z: 0}
	up := math.Vec3{X: 0, Y: 1, Z: 0}

	return math.LookAt(eye, center, up).
		Mul(math.RotateX(math.Radians(s.RotationY))).
		Mul(math.RotateY(math.Radians(s.RotationX)))
}

// Eye returns the camera position in world space.
func (s *State) Eye() math.Vec3 {
	return s.ViewMatrix().Inverse().TransformVec3(math.Vec3{})
}
