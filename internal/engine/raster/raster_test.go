package raster

import (
	"image/color"
	"testing"

	"github.com/Faultbox/mannequin/internal/body"
	"github.com/Faultbox/mannequin/internal/engine/camera"
	"github.com/Faultbox/mannequin/internal/engine/instance"
	"github.com/Faultbox/mannequin/internal/engine/lighting"
	"github.com/Faultbox/mannequin/internal/engine/mannequin"
	"github.com/Faultbox/mannequin/internal/engine/pipeline"
	"github.com/Faultbox/mannequin/pkg/math"
)

// triangle builds a one-triangle mesh directly in NDC at depth z.
func triangle(pts [3][2]float32, z float32, c [4]float32) *mannequin.Geometry {
	g := &mannequin.Geometry{Indices: []uint16{0, 1, 2}}
	for _, p := range pts {
		g.Positions = append(g.Positions, p[0], p[1], z)
		g.Normals = append(g.Normals, 0, 0, 1)
		g.Colors = append(g.Colors, c[0], c[1], c[2], c[3])
	}
	return g
}

var lowerLeft = [3][2]float32{{-1, -1}, {1, -1}, {-1, 1}}

func render(t *testing.T, r *Renderer, geoms ...*mannequin.Geometry) {
	t.Helper()
	r.BeginFrame()
	for _, g := range geoms {
		m, err := r.Upload(g)
		if err != nil {
			t.Fatalf("Upload: %v", err)
		}
		r.Draw(m, math.Identity())
	}
	r.EndFrame()
}

func TestTriangleCoverage(t *testing.T) {
	r := New(4, 4, Options{Supersample: 1, CullBack: true})
	red := [4]float32{1, 0, 0, 1}
	render(t, r, triangle(lowerLeft, 0, red))

	img := r.Image()
	want := lighting.Default().Shade(red, [3]float32{0, 0, 1})
	if got := img.RGBAAt(0, 3); got.R != to8(want[0]) || got.A != 255 {
		t.Errorf("bottom-left pixel = %v, want red shade %v", got, want)
	}
	if got := img.RGBAAt(3, 0); got != (color.RGBA{}) {
		t.Errorf("top-right pixel = %v, want cleared", got)
	}
	if r.Triangles() != 1 {
		t.Errorf("Triangles = %d, want 1", r.Triangles())
	}
}

func TestBackFaceCulled(t *testing.T) {
	r := New(4, 4, Options{Supersample: 1, CullBack: true})
	cw := [3][2]float32{lowerLeft[0], lowerLeft[2], lowerLeft[1]}
	render(t, r, triangle(cw, 0, [4]float32{1, 1, 1, 1}))

	if r.Triangles() != 0 {
		t.Errorf("clockwise triangle drawn with culling on")
	}

	r = New(4, 4, Options{Supersample: 1})
	render(t, r, triangle(cw, 0, [4]float32{1, 1, 1, 1}))
	if r.Triangles() != 1 {
		t.Errorf("clockwise triangle skipped with culling off")
	}
}

func TestDepthOrderIndependent(t *testing.T) {
	near := triangle(lowerLeft, -0.5, [4]float32{0, 0, 1, 1})
	far := triangle(lowerLeft, 0.5, [4]float32{1, 0, 0, 1})

	for name, order := range map[string][]*mannequin.Geometry{
		"near first": {near, far},
		"far first":  {far, near},
	} {
		t.Run(name, func(t *testing.T) {
			r := New(4, 4, Options{Supersample: 1, CullBack: true})
			render(t, r, order...)
			px := r.Image().RGBAAt(0, 3)
			if px.B == 0 || px.R != 0 {
				t.Errorf("pixel = %v, want the nearer blue triangle", px)
			}
		})
	}
}

func TestClearColor(t *testing.T) {
	r := New(2, 2, Options{Supersample: 1, ClearColor: [4]float32{1, 1, 1, 0.5}})
	r.BeginFrame()
	px := r.Image().RGBAAt(1, 1)
	// premultiplied
	if px.R != 128 || px.A != 128 {
		t.Errorf("clear pixel = %v, want premultiplied half white", px)
	}
}

func TestSupersampleResolvesToOutputSize(t *testing.T) {
	r := New(8, 6, Options{Supersample: 3, CullBack: true})
	if r.fb.Width != 24 || r.fb.Height != 18 {
		t.Fatalf("internal buffer = %dx%d, want 24x18", r.fb.Width, r.fb.Height)
	}
	render(t, r, triangle(lowerLeft, 0, [4]float32{0, 1, 0, 1}))
	img := r.Image()
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("image = %v, want 8x6", b)
	}
	if img.RGBAAt(0, 5).G == 0 {
		t.Errorf("covered corner lost after downsampling")
	}
}

func TestDrawForeignMesh(t *testing.T) {
	r := New(2, 2, Options{Supersample: 1})
	r.BeginFrame()
	r.Draw("not a mesh", math.Identity())
	if r.Triangles() != 0 {
		t.Errorf("foreign mesh drew triangles")
	}
}

func TestUploadEmpty(t *testing.T) {
	r := New(2, 2, DefaultOptions())
	if _, err := r.Upload(&mannequin.Geometry{}); err == nil {
		t.Error("Upload of empty geometry succeeded")
	}
}

func TestPipelineRendersMannequin(t *testing.T) {
	r := New(64, 64, DefaultOptions())
	reg := instance.New()
	p := pipeline.New(pipeline.DefaultConfig(), r, reg, camera.DefaultState(), nil)
	p.Resize(64, 64)

	if _, err := p.AddInstance(body.Predict(175, 70, body.Male)); err != nil {
		t.Fatalf("AddInstance: %v", err)
	}
	p.Frame()

	img := r.Image()
	covered := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if img.RGBAAt(x, y).A > 0 {
				covered++
			}
		}
	}
	if covered == 0 {
		t.Fatal("mannequin produced no pixels")
	}
	if img.RGBAAt(0, 0).A != 0 {
		t.Errorf("corner pixel covered: %v", img.RGBAAt(0, 0))
	}
	if r.Triangles() == 0 || r.Triangles() > p.Stats().Triangles {
		t.Errorf("filled %d triangles of %d submitted", r.Triangles(), p.Stats().Triangles)
	}
}
