// Package renderer provides the OpenGL backend for the render pipeline.
package renderer

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"go.uber.org/zap"

	"github.com/Faultbox/mannequin/internal/engine/framebuffer"
	"github.com/Faultbox/mannequin/internal/engine/lighting"
	"github.com/Faultbox/mannequin/internal/engine/mannequin"
	"github.com/Faultbox/mannequin/internal/engine/pipeline"
	"github.com/Faultbox/mannequin/internal/engine/shader"
	"github.com/Faultbox/mannequin/internal/logger"
	"github.com/Faultbox/mannequin/pkg/math"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	_ pipeline.Backend      = (*Renderer)(nil)
	_ pipeline.FrameBackend = (*Renderer)(nil)
	_ pipeline.Resizer      = (*Renderer)(nil)
)

// ErrForeignMesh is reported when a handle from another backend is drawn.
var ErrForeignMesh = errors.New("mesh was not uploaded by this renderer")

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [4]float32
	Light      lighting.Light // zero value means lighting.Default
}

// Mesh is a mannequin uploaded to GPU buffers.
type Mesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
}

// Renderer draws mannequin meshes with OpenGL 4.1 core.
type Renderer struct {
	config  Config
	program *shader.Program
	log     *zap.Logger
	meshes  int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		log: logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var err error
	r.program, err = shader.NewMannequin()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	if cfg.Light == (lighting.Light{}) {
		cfg.Light = lighting.Default()
	}
	r.SetLight(cfg.Light)

	r.config = cfg
	if cfg.Width > 0 && cfg.Height > 0 {
		gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	}
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("live_meshes", r.meshes))
	if r.program != nil {
		r.program.Delete()
	}
}

// SetClearColor changes the background colour.
func (r *Renderer) SetClearColor(c [4]float32) {
	r.config.ClearColor = c
}

// SetLight uploads the key light to the mannequin program.
func (r *Renderer) SetLight(l lighting.Light) {
	r.config.Light = l
	r.program.Use()
	r.program.SetVec3("uLightDir", l.Direction)
	r.program.SetFloat("uAmbient", l.Ambient)
	r.program.SetFloat("uDiffuse", l.Diffuse)
	gl.UseProgram(0)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// BeginFrame restores depth and cull state, which an ImGui pass may have
// changed, clears the colour and depth buffers and binds the program.
func (r *Renderer) BeginFrame() {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	c := r.config.ClearColor
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
}

// EndFrame unbinds the vertex array. Buffer swapping belongs to the window.
func (r *Renderer) EndFrame() {
	gl.BindVertexArray(0)
}

// Upload creates the vertex array and buffers for a mannequin.
func (r *Renderer) Upload(g *mannequin.Geometry) (pipeline.Mesh, error) {
	if g == nil || len(g.Indices) == 0 {
		return nil, errors.New("upload: empty geometry")
	}
	vertices := g.Interleave()
	m := &Mesh{IndexCount: int32(len(g.Indices))}

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)
	r.meshes++

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &m.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*2, unsafe.Pointer(&g.Indices[0]), gl.STATIC_DRAW)

	stride := int32(mannequin.FloatsPerVertex * 4)
	gl.VertexAttribPointerWithOffset(shader.LocPosition, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(shader.LocPosition)
	gl.VertexAttribPointerWithOffset(shader.LocNormal, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(shader.LocNormal)
	gl.VertexAttribPointerWithOffset(shader.LocColor, 4, gl.FLOAT, false, stride, 6*4)
	gl.EnableVertexAttribArray(shader.LocColor)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		r.Release(m)
		return nil, fmt.Errorf("upload: gl error 0x%x", errCode)
	}

	r.log.Debug("mesh uploaded",
		zap.Uint32("vao", m.VAO),
		zap.Int("vertices", g.VertexCount()),
		zap.Int32("indices", m.IndexCount),
	)
	return m, nil
}

// Draw renders one uploaded mesh with the given MVP.
func (r *Renderer) Draw(handle pipeline.Mesh, mvp math.Mat4) {
	m, ok := handle.(*Mesh)
	if !ok || m == nil {
		r.log.Warn("draw skipped", zap.Error(ErrForeignMesh))
		return
	}
	r.program.SetMat4("uMVP", mvp)
	gl.BindVertexArray(m.VAO)
	gl.DrawElements(gl.TRIANGLES, m.IndexCount, gl.UNSIGNED_SHORT, nil)
}

// Release deletes the GPU buffers behind a mesh.
func (r *Renderer) Release(handle pipeline.Mesh) {
	m, ok := handle.(*Mesh)
	if !ok || m == nil {
		return
	}
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		r.meshes--
	}
	*m = Mesh{}
}

// Capture reads the currently bound framebuffer at the renderer's size.
// Call it after the frame is drawn and before buffers are swapped.
func (r *Renderer) Capture() *image.RGBA {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return framebuffer.FlipRows(pixels, w, h)
}
