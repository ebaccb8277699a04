package raster

import (
	"errors"
	"image"

	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/mannequin/internal/engine/lighting"
	"github.com/Faultbox/mannequin/internal/engine/mannequin"
	"github.com/Faultbox/mannequin/internal/engine/pipeline"
	"github.com/Faultbox/mannequin/internal/logger"
	"github.com/Faultbox/mannequin/pkg/math"
)

var (
	_ pipeline.Backend      = (*Renderer)(nil)
	_ pipeline.FrameBackend = (*Renderer)(nil)
	_ pipeline.Resizer      = (*Renderer)(nil)
)

// Mesh is geometry held by the software backend.
type Mesh struct {
	geom *mannequin.Geometry
	lit  [][4]float32 // shaded colour per vertex
}

// Options configures a software renderer.
type Options struct {
	Supersample int            // render at N times the output size, at least 1
	ClearColor  [4]float32     // straight alpha
	CullBack    bool
	Light       lighting.Light // zero value means lighting.Default
}

// DefaultOptions renders at 2x with back-face culling on a transparent background.
func DefaultOptions() Options {
	return Options{Supersample: 2, CullBack: true}
}

// Renderer rasterises mannequin meshes on the CPU.
type Renderer struct {
	opts          Options
	width, height int
	fb            *FrameBuffer
	log           *zap.Logger

	scratch []Vertex
	drawn   int
}

// New creates a renderer producing width x height images.
func New(width, height int, opts Options) *Renderer {
	opts.Supersample = max(opts.Supersample, 1)
	if opts.Light == (lighting.Light{}) {
		opts.Light = lighting.Default()
	}
	r := &Renderer{opts: opts, log: logger.Named("raster")}
	r.Resize(width, height)
	return r
}

// Resize reallocates the internal buffer for a new output size.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = max(width, 1), max(height, 1)
	ss := r.opts.Supersample
	r.fb = NewFrameBuffer(r.width*ss, r.height*ss)
	r.fb.Clear(r.opts.ClearColor)
	r.log.Debug("raster buffer resized",
		zap.Int("width", r.fb.Width),
		zap.Int("height", r.fb.Height),
	)
}

// Size returns the output size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// SetClearColor changes the background colour used by BeginFrame.
func (r *Renderer) SetClearColor(c [4]float32) {
	r.opts.ClearColor = c
}

// BeginFrame clears colour and depth.
func (r *Renderer) BeginFrame() {
	r.fb.Clear(r.opts.ClearColor)
	r.drawn = 0
}

// EndFrame is a no-op; the buffer is resolved on demand by Image.
func (r *Renderer) EndFrame() {}

// Upload keeps a reference to the geometry and precomputes vertex shading.
func (r *Renderer) Upload(g *mannequin.Geometry) (pipeline.Mesh, error) {
	if g == nil || len(g.Indices) == 0 {
		return nil, errors.New("upload: empty geometry")
	}
	n := g.VertexCount()
	m := &Mesh{geom: g, lit: make([][4]float32, n)}
	for i := range n {
		m.lit[i] = r.opts.Light.Shade(g.Color(i), g.Normal(i))
	}
	return m, nil
}

// Release drops the mesh.
func (r *Renderer) Release(handle pipeline.Mesh) {
	if m, ok := handle.(*Mesh); ok && m != nil {
		m.geom, m.lit = nil, nil
	}
}

// Draw projects every vertex by mvp and fills the mesh's triangles.
// Triangles with a vertex in front of the near plane are skipped.
func (r *Renderer) Draw(handle pipeline.Mesh, mvp math.Mat4) {
	m, ok := handle.(*Mesh)
	if !ok || m == nil || m.geom == nil {
		r.log.Warn("draw skipped: foreign or released mesh")
		return
	}
	g := m.geom
	n := g.VertexCount()
	if cap(r.scratch) < n {
		r.scratch = make([]Vertex, n)
	}
	verts := r.scratch[:n]
	visible := make([]bool, n)

	w, h := float32(r.fb.Width), float32(r.fb.Height)
	for i := range n {
		p := g.Position(i)
		clip := mvp.MulVec4(math.Vec4{p[0], p[1], p[2], 1})
		if clip[3] <= 0 || clip[2] < -clip[3] {
			continue
		}
		invW := 1 / clip[3]
		verts[i] = Vertex{
			X: (clip[0]*invW + 1) * 0.5 * w,
			Y: (1 - clip[1]*invW) * 0.5 * h,
			Z: clip[2] * invW,
			C: m.lit[i],
		}
		visible[i] = true
	}

	for t := 0; t+2 < len(g.Indices); t += 3 {
		i0, i1, i2 := g.Indices[t], g.Indices[t+1], g.Indices[t+2]
		if !visible[i0] || !visible[i1] || !visible[i2] {
			continue
		}
		a, b, c := verts[i0], verts[i1], verts[i2]
		if r.opts.CullBack && SignedArea(a, b, c) >= 0 {
			continue
		}
		r.fb.Triangle(a, b, c)
		r.drawn++
	}
}

// Triangles reports how many triangles were filled since BeginFrame.
func (r *Renderer) Triangles() int {
	return r.drawn
}

// Image resolves the buffer to the output size. Supersampled buffers are
// filtered down with Catmull-Rom on premultiplied colour.
func (r *Renderer) Image() *image.RGBA {
	src := r.fb.RGBA()
	dst := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	if r.opts.Supersample == 1 {
		copy(dst.Pix, src.Pix)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
