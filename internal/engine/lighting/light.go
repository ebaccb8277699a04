// Package lighting describes the directional key light shared by the GPU
// and software renderers.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/mannequin/pkg/math"
)

// Default key light: up and to the front right of the stage.
const (
	DefaultLongitude = 34
	DefaultLatitude  = 48
	DefaultAmbient   = 0.55
	DefaultDiffuse   = 0.45
)

// Light is a directional light plus a flat ambient term. Shading is
// min(ambient + diffuse * max(n·dir, 0), 1), applied per vertex in model space.
type Light struct {
	Direction math.Vec3 // unit vector pointing towards the light
	Ambient   float32
	Diffuse   float32
}

// New builds a light from angles in degrees.
func New(longitude, latitude, ambient, diffuse float32) Light {
	return Light{
		Direction: SunDirection(longitude, latitude),
		Ambient:   ambient,
		Diffuse:   diffuse,
	}
}

// Default returns the stage key light.
func Default() Light {
	return New(DefaultLongitude, DefaultLatitude, DefaultAmbient, DefaultDiffuse)
}

// SunDirection converts longitude (rotation about Y from +Z) and latitude
// (elevation above the horizon) in degrees to a unit direction.
func SunDirection(longitude, latitude float32) math.Vec3 {
	lon := float64(math.Radians(longitude))
	lat := float64(math.Radians(latitude))
	return math.Vec3{
		X: float32(gomath.Cos(lat) * gomath.Sin(lon)),
		Y: float32(gomath.Sin(lat)),
		Z: float32(gomath.Cos(lat) * gomath.Cos(lon)),
	}
}

// Intensity returns the shading factor for normal n, at most 1.
func (l Light) Intensity(n math.Vec3) float32 {
	return min(l.Ambient+l.Diffuse*max(n.Normalize().Dot(l.Direction), 0), 1)
}

// Shade scales the colour's RGB by the intensity for n; alpha is kept.
func (l Light) Shade(c [4]float32, n [3]float32) [4]float32 {
	s := l.Intensity(math.Vec3{X: n[0], Y: n[1], Z: n[2]})
	return [4]float32{c[0] * s, c[1] * s, c[2] * s, c[3]}
}
