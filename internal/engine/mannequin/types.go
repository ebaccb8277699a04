// Package mannequin builds procedural body-proxy meshes from measurements.
package mannequin

// Part names, in generation order.
const (
	PartHead     = "head"
	PartTorso    = "torso"
	PartLeftArm  = "left_arm"
	PartRightArm = "right_arm"
	PartLeftLeg  = "left_leg"
	PartRightLeg = "right_leg"
)

// Body part tints.
var (
	SkinColor  = [4]float32{0.95, 0.85, 0.75, 1}
	TorsoColor = [4]float32{0.9, 0.8, 0.7, 1}
)

// FloatsPerVertex is the interleaved layout: position(3) normal(3) color(4).
const FloatsPerVertex = 10

// Geometry holds the buffers of one mannequin, ready for a single upload.
// Every index is less than VertexCount.
type Geometry struct {
	Positions []float32 // xyz
	Normals   []float32 // unit length
	Colors    []float32 // rgba
	Indices   []uint16
	Parts     []Part
	Bounds    Bounds
}

// Part locates one body primitive inside the shared buffers.
type Part struct {
	Name        string
	FirstVertex int
	VertexCount int
	FirstIndex  int
	IndexCount  int
}

// Bounds holds the axis-aligned bounding box in model space.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// TriangleCount returns the number of indexed triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// Position returns vertex i.
func (g *Geometry) Position(i int) [3]float32 {
	return [3]float32{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]}
}

// Normal returns the normal of vertex i.
func (g *Geometry) Normal(i int) [3]float32 {
	return [3]float32{g.Normals[i*3], g.Normals[i*3+1], g.Normals[i*3+2]}
}

// Color returns the colour of vertex i.
func (g *Geometry) Color(i int) [4]float32 {
	return [4]float32{g.Colors[i*4], g.Colors[i*4+1], g.Colors[i*4+2], g.Colors[i*4+3]}
}

// Part returns the named part.
func (g *Geometry) Part(name string) (Part, bool) {
	for _, p := range g.Parts {
		if p.Name == name {
			return p, true
		}
	}
	return Part{}, false
}

// Interleave packs the vertex attributes into one FloatsPerVertex-strided
// slice for backends that upload a single vertex buffer.
func (g *Geometry) Interleave() []float32 {
	n := g.VertexCount()
	out := make([]float32, 0, n*FloatsPerVertex)
	for i := 0; i < n; i++ {
		out = append(out, g.Positions[i*3:i*3+3]...)
		out = append(out, g.Normals[i*3:i*3+3]...)
		out = append(out, g.Colors[i*4:i*4+4]...)
	}
	return out
}
