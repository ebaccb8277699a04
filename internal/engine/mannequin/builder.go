package mannequin

import (
	gomath "math"

	"github.com/Faultbox/mannequin/pkg/math"
)

// builder appends primitives to one shared set of buffers, offsetting
// indices by the running vertex count.
type builder struct {
	g *Geometry
}

func newBuilder() *builder {
	return &builder{g: &Geometry{
		Bounds: Bounds{
			Min: [3]float32{1e10, 1e10, 1e10},
			Max: [3]float32{-1e10, -1e10, -1e10},
		},
	}}
}

func (b *builder) base() uint16 {
	return uint16(b.g.VertexCount())
}

func (b *builder) vertex(p, n math.Vec3, color [4]float32) {
	b.g.Positions = append(b.g.Positions, p.X, p.Y, p.Z)
	b.g.Normals = append(b.g.Normals, n.X, n.Y, n.Z)
	b.g.Colors = append(b.g.Colors, color[:]...)
	updateBounds(&b.g.Bounds, p)
}

// part records the buffer range appended by fn under name.
func (b *builder) part(name string, fn func()) {
	p := Part{Name: name, FirstVertex: b.g.VertexCount(), FirstIndex: len(b.g.Indices)}
	fn()
	p.VertexCount = b.g.VertexCount() - p.FirstVertex
	p.IndexCount = len(b.g.Indices) - p.FirstIndex
	b.g.Parts = append(b.g.Parts, p)
}

// sphere emits a UV sphere of (stacks+1)×(slices+1) vertices, pole to pole.
func (b *builder) sphere(center math.Vec3, radius float32, stacks, slices int, color [4]float32) {
	start := b.base()

	for i := 0; i <= stacks; i++ {
		phi := gomath.Pi * float64(i) / float64(stacks)
		for j := 0; j <= slices; j++ {
			theta := 2 * gomath.Pi * float64(j) / float64(slices)
			n := math.Vec3{
				X: float32(gomath.Sin(phi) * gomath.Cos(theta)),
				Y: float32(gomath.Cos(phi)),
				Z: float32(gomath.Sin(phi) * gomath.Sin(theta)),
			}
			b.vertex(center.Add(n.Scale(radius)), n, color)
		}
	}

	row := uint16(slices + 1)
	for i := 0; i < stacks; i++ {
		for j := 0; j < slices; j++ {
			first := start + uint16(i)*row + uint16(j)
			second := first + row
			b.g.Indices = append(b.g.Indices,
				first, first+1, second,
				second, first+1, second+1,
			)
		}
	}
}

// cylinder emits an open cylinder along +Y from 0 to height, with the bottom
// and top rings interleaved (even = bottom, odd = top). Every vertex is
// transformed by xf; normals by its rotation.
func (b *builder) cylinder(bottomRadius, topRadius, height float32, segments int, xf math.Mat4, color [4]float32) {
	start := b.base()

	for i := 0; i <= segments; i++ {
		theta := 2 * gomath.Pi * float64(i) / float64(segments)
		c, s := float32(gomath.Cos(theta)), float32(gomath.Sin(theta))
		n := xf.TransformDirection([3]float32{c, 0, s})
		normal := math.Vec3{X: n[0], Y: n[1], Z: n[2]}.Normalize()

		bottom := xf.TransformVec3(math.Vec3{X: c * bottomRadius, Y: 0, Z: s * bottomRadius})
		top := xf.TransformVec3(math.Vec3{X: c * topRadius, Y: height, Z: s * topRadius})
		b.vertex(bottom, normal, color)
		b.vertex(top, normal, color)
	}

	for i := 0; i < segments; i++ {
		b0 := start + uint16(i*2)
		t0 := b0 + 1
		b1 := b0 + 2
		t1 := b0 + 3
		b.g.Indices = append(b.g.Indices,
			b0, t0, b1,
			b1, t0, t1,
		)
	}
}

func updateBounds(bounds *Bounds, p math.Vec3) {
	for i, v := range p.Array() {
		if v < bounds.Min[i] {
			bounds.Min[i] = v
		}
		if v > bounds.Max[i] {
			bounds.Max[i] = v
		}
	}
}
