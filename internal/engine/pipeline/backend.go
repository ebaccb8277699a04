// Package pipeline runs the per-frame tick, transform and draw sequence for
// every mannequin on stage.
package pipeline

import (
	"github.com/Faultbox/mannequin/internal/engine/mannequin"
	"github.com/Faultbox/mannequin/pkg/math"
)

// Mesh is an opaque handle to geometry resident in a backend.
type Mesh = any

// Backend is the graphics capability the pipeline needs: upload static
// buffers once, then draw them under a transform.
type Backend interface {
	Upload(g *mannequin.Geometry) (Mesh, error)
	Draw(m Mesh, mvp math.Mat4)
	Release(m Mesh)
}

// FrameBackend is implemented by backends that need to bracket a frame,
// for example to clear buffers.
type FrameBackend interface {
	BeginFrame()
	EndFrame()
}

// Resizer is implemented by backends that track the viewport size.
type Resizer interface {
	Resize(width, height int)
}
