package mannequin

import (
	gomath "math"

	"github.com/Faultbox/mannequin/internal/body"
	"github.com/Faultbox/mannequin/pkg/math"
)

// Proportions as fractions of total height.
const (
	headHeight  = 0.12
	torsoHeight = 0.35
	legHeight   = 0.47

	headRadius = 0.08
	armRadius  = 0.03
	legRadius  = 0.04

	// girthFactor thins circumference-derived torso radii.
	girthFactor = 0.8
	// hipSpread places each leg at this fraction of the hip radius from the
	// centre line.
	hipSpread = 0.4
	// armSwing is the outward tilt of each arm, in degrees.
	armSwing = 30
)

// Subdivision counts.
const (
	SphereStacks  = 16
	SphereSlices  = 16
	TorsoSegments = 16
	LimbSegments  = 12
)

// Generate builds the mesh for m: a head sphere, a tapered torso and four
// limb cylinders, in that order. It is deterministic and returns buffers
// owned by the caller.
//
// Every dimension scales with Height/100. Lengths and girths taken from m
// are first converted from centimetres to world units (1 unit = 100 cm).
func Generate(m body.Measurements) *Geometry {
	scale := m.Height / 100
	b := newBuilder()

	b.part(PartHead, func() {
		center := math.Vec3{Y: (legHeight + torsoHeight + headHeight/2) * scale}
		b.sphere(center, headRadius*scale, SphereStacks, SphereSlices, SkinColor)
	})

	b.part(PartTorso, func() {
		bottom := circumferenceRadius(m.Waist) * scale * girthFactor
		top := circumferenceRadius(m.Chest) * scale * girthFactor
		xf := math.Translate(0, legHeight*scale, 0)
		b.cylinder(bottom, top, torsoHeight*scale, TorsoSegments, xf, TorsoColor)
	})

	shoulderY := (legHeight + torsoHeight*0.9) * scale
	shoulderX := m.ShoulderWidth / 200 * scale
	armLen := m.ArmLength / 100 * scale
	arm := func(side float32) func() {
		return func() {
			b.cylinder(armRadius*scale, armRadius*scale, armLen, LimbSegments,
				limbTransform(math.Vec3{X: side * shoulderX, Y: shoulderY}, side*armSwing, armLen), SkinColor)
		}
	}
	b.part(PartLeftArm, arm(-1))
	b.part(PartRightArm, arm(1))

	hipX := circumferenceRadius(m.Hips) * scale * hipSpread
	legLen := m.LegLength / 100 * scale
	leg := func(side float32) func() {
		return func() {
			b.cylinder(legRadius*scale, legRadius*scale, legLen, LimbSegments,
				limbTransform(math.Vec3{X: side * hipX, Y: legHeight * scale}, 0, legLen), TorsoColor)
		}
	}
	b.part(PartLeftLeg, leg(-1))
	b.part(PartRightLeg, leg(1))

	return b.g
}

// limbTransform maps an upright cylinder of the given length so that its top
// ring sits on pivot and it hangs down, tilted by swing degrees about Z.
// Positive swing moves the far end toward +X.
func limbTransform(pivot math.Vec3, swing, length float32) math.Mat4 {
	return math.Translate(pivot.X, pivot.Y, pivot.Z).
		Mul(math.RotateZ(math.Radians(swing))).
		Mul(math.Translate(0, -length, 0))
}

// circumferenceRadius converts a girth in centimetres to a radius in world units.
func circumferenceRadius(cm float32) float32 {
	return cm / (2 * gomath.Pi) / 100
}

// VertexCount is the number of vertices every generated mesh has.
const VertexCount = (SphereStacks+1)*(SphereSlices+1) + 2*(TorsoSegments+1) + 4*2*(LimbSegments+1)

// IndexCount is the number of indices every generated mesh has.
const IndexCount = 6*SphereStacks*SphereSlices + 6*TorsoSegments + 4*6*LimbSegments
