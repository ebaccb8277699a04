// Package picking provides ray casting against mannequin bounding boxes.
package picking

import (
	gomath "math"

	"github.com/Faultbox/mannequin/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// ScreenToRay converts screen coordinates to a world-space ray.
// screenX, screenY are pixel coordinates with the origin at the top left;
// invViewProj is the inverse of projection·view.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	near := unproject(invViewProj, math.Vec4{ndcX, ndcY, -1.0, 1.0})
	far := unproject(invViewProj, math.Vec4{ndcX, ndcY, 1.0, 1.0})

	dir := far.Sub(near).Normalize()
	return Ray{Origin: near.Array(), Direction: dir.Array()}
}

func unproject(inv math.Mat4, ndc math.Vec4) math.Vec3 {
	p := inv.MulVec4(ndc)
	if p[3] != 0 {
		return math.Vec3{X: p[0] / p[3], Y: p[1] / p[3], Z: p[2] / p[3]}
	}
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box
// using the slab method. It returns the distance to the entry point, or to
// the exit point when the ray starts inside the box.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - o) / d
		t2 := (box.Max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Nearest returns the index of the closest box hit by the ray.
func (r Ray) Nearest(boxes []AABB) (int, bool) {
	best, bestT := -1, float32(gomath.MaxFloat32)
	for i, box := range boxes {
		if t, ok := r.IntersectAABB(box); ok && t < bestT {
			best, bestT = i, t
		}
	}
	return best, best >= 0
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(minX, minY, minZ, maxX, maxY, maxZ float32) AABB {
	return AABB{
		Min: [3]float32{min(minX, maxX), min(minY, maxY), min(minZ, maxZ)},
		Max: [3]float32{max(minX, maxX), max(minY, maxY), max(minZ, maxZ)},
	}
}

// TransformAABB returns the world-space box enclosing the eight corners of
// box under m.
func TransformAABB(box AABB, m math.Mat4) AABB {
	out := AABB{
		Min: [3]float32{gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32},
		Max: [3]float32{-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32},
	}
	for i := 0; i < 8; i++ {
		corner := [3]float32{box.Min[0], box.Min[1], box.Min[2]}
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) != 0 {
				corner[axis] = box.Max[axis]
			}
		}
		p := m.TransformPoint(corner)
		for axis := 0; axis < 3; axis++ {
			out.Min[axis] = min(out.Min[axis], p[axis])
			out.Max[axis] = max(out.Max[axis], p[axis])
		}
	}
	return out
}
