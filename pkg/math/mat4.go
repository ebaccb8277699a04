package math

import "math"

// Mat4 is a 4x4 matrix stored column by column, the layout GL expects:
// element (row r, column c) lives at index c*4+r.
type Mat4 [16]float32

// Vec4 is a homogeneous vector.
type Vec4 [4]float32

func (m Mat4) at(row, col int) float32 {
	return m[col*4+row]
}

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Translate returns a translation by (x, y, z).
func Translate(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// planeRotation rotates the a axis towards the b axis by angle radians.
func planeRotation(a, b int, angle float32) Mat4 {
	s, c := math.Sincos(float64(angle))
	m := Identity()
	m[a*4+a], m[b*4+b] = float32(c), float32(c)
	m[a*4+b], m[b*4+a] = float32(s), float32(-s)
	return m
}

// RotateX rotates about X by angle radians; +Y turns towards +Z.
func RotateX(angle float32) Mat4 { return planeRotation(1, 2, angle) }

// RotateY rotates about Y by angle radians; +Z turns towards +X.
func RotateY(angle float32) Mat4 { return planeRotation(2, 0, angle) }

// RotateZ rotates about Z by angle radians; +X turns towards +Y.
func RotateZ(angle float32) Mat4 { return planeRotation(0, 1, angle) }

// Perspective returns a right-handed projection into GL clip space, with
// fovY in radians and aspect as width/height.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	depth := near - far
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / depth
	m[11] = -1
	m[14] = 2 * far * near / depth
	return m
}

// LookAt returns a view matrix placing eye at the origin and looking
// towards center along -Z.
func LookAt(eye, center, up Vec3) Mat4 {
	fwd := center.Sub(eye).Normalize()
	right := fwd.Cross(up).Normalize()
	upv := right.Cross(fwd)

	m := Identity()
	for i, axis := range [3]Vec3{right, upv, fwd.Scale(-1)} {
		m[0*4+i], m[1*4+i], m[2*4+i] = axis.X, axis.Y, axis.Z
		m[3*4+i] = -axis.Dot(eye)
	}
	return m
}

// Mul returns m · other, so other is applied first.
func (m Mat4) Mul(other Mat4) Mat4 {
	var out Mat4
	for col := range 4 {
		for row := range 4 {
			var sum float32
			for k := range 4 {
				sum += m.at(row, k) * other.at(k, col)
			}
			out[col*4+row] = sum
		}
	}
	return out
}

// MulVec4 returns m · v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var out Vec4
	for row := range 4 {
		out[row] = m.at(row, 0)*v[0] + m.at(row, 1)*v[1] + m.at(row, 2)*v[2] + m.at(row, 3)*v[3]
	}
	return out
}

// TransformPoint applies m to a point (w = 1) with perspective divide.
func (m Mat4) TransformPoint(p [3]float32) [3]float32 {
	r := m.MulVec4(Vec4{p[0], p[1], p[2], 1})
	if w := r[3]; w != 0 && w != 1 {
		return [3]float32{r[0] / w, r[1] / w, r[2] / w}
	}
	return [3]float32{r[0], r[1], r[2]}
}

// TransformVec3 is TransformPoint for Vec3.
func (m Mat4) TransformVec3(v Vec3) Vec3 {
	p := m.TransformPoint(v.Array())
	return Vec3{p[0], p[1], p[2]}
}

// TransformDirection applies the upper 3x3 of m, ignoring translation.
func (m Mat4) TransformDirection(d [3]float32) [3]float32 {
	r := m.MulVec4(Vec4{d[0], d[1], d[2], 0})
	return [3]float32{r[0], r[1], r[2]}
}

// Ptr returns the first element for GL uniform uploads.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// Inverse returns the inverse of m, or the identity when m is singular.
func (m Mat4) Inverse() Mat4 {
	a00, a01, a02, a03 := m[0], m[1], m[2], m[3]
	a10, a11, a12, a13 := m[4], m[5], m[6], m[7]
	a20, a21, a22, a23 := m[8], m[9], m[10], m[11]
	a30, a31, a32, a33 := m[12], m[13], m[14], m[15]

	// 2x2 minors of the top and bottom halves
	b00 := a00*a11 - a01*a10
	b01 := a00*a12 - a02*a10
	b02 := a00*a13 - a03*a10
	b03 := a01*a12 - a02*a11
	b04 := a01*a13 - a03*a11
	b05 := a02*a13 - a03*a12
	b06 := a20*a31 - a21*a30
	b07 := a20*a32 - a22*a30
	b08 := a20*a33 - a23*a30
	b09 := a21*a32 - a22*a31
	b10 := a21*a33 - a23*a31
	b11 := a22*a33 - a23*a32

	det := b00*b11 - b01*b10 + b02*b09 + b03*b08 - b04*b07 + b05*b06
	if det == 0 {
		return Identity()
	}
	inv := 1 / det

	return Mat4{
		(a11*b11 - a12*b10 + a13*b09) * inv,
		(a02*b10 - a01*b11 - a03*b09) * inv,
		(a31*b05 - a32*b04 + a33*b03) * inv,
		(a22*b04 - a21*b05 - a23*b03) * inv,
		(a12*b08 - a10*b11 - a13*b07) * inv,
		(a00*b11 - a02*b08 + a03*b07) * inv,
		(a32*b02 - a30*b05 - a33*b01) * inv,
		(a20*b05 - a22*b02 + a23*b01) * inv,
		(a10*b10 - a11*b08 + a13*b06) * inv,
		(a01*b08 - a00*b10 - a03*b06) * inv,
		(a30*b04 - a31*b02 + a33*b00) * inv,
		(a21*b02 - a20*b04 - a23*b00) * inv,
		(a11*b07 - a10*b09 - a12*b06) * inv,
		(a00*b09 - a01*b07 + a02*b06) * inv,
		(a31*b01 - a30*b03 - a32*b00) * inv,
		(a20*b03 - a21*b01 + a22*b00) * inv,
	}
}
