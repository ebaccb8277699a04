package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/mannequin/internal/body"
	"github.com/Faultbox/mannequin/internal/engine/camera"
	"github.com/Faultbox/mannequin/internal/engine/instance"
	"github.com/Faultbox/mannequin/internal/engine/picking"
	"github.com/Faultbox/mannequin/internal/logger"
	"github.com/Faultbox/mannequin/pkg/math"
)

// ErrFull is returned by AddInstance when the registry is at capacity.
var ErrFull = errors.New("instance registry full")

// Config holds frame timing and projection settings.
type Config struct {
	Timestep time.Duration // animation advance per Frame
	FOV      float32       // vertical, degrees
	Near     float32
	Far      float32
}

// DefaultConfig matches a 90° frustum from 1 to 10 units at a nominal
// 60 Hz step.
func DefaultConfig() Config {
	return Config{
		Timestep: 16 * time.Millisecond,
		FOV:      90,
		Near:     1,
		Far:      10,
	}
}

// Stats describes the most recent frame.
type Stats struct {
	Frames    uint64
	Instances int
	Triangles int
	Requests  int // queue requests applied at the start of the frame
}

// Pipeline owns the frame sequence. It must be driven from one goroutine;
// other goroutines submit changes through the request queue.
type Pipeline struct {
	cfg     Config
	backend Backend
	reg     *instance.Registry
	cam     *camera.State
	queue   *instance.Queue
	log     *zap.Logger

	width, height int
	stats         Stats
	failed        map[uuid.UUID]struct{}
}

// New creates a pipeline. queue may be nil.
func New(cfg Config, backend Backend, reg *instance.Registry, cam *camera.State, queue *instance.Queue) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		backend: backend,
		reg:     reg,
		cam:     cam,
		queue:   queue,
		log:     logger.Named("pipeline"),
		width:   1,
		height:  1,
		failed:  make(map[uuid.UUID]struct{}),
	}
}

// Resize sets the viewport used for the projection aspect and picking.
func (p *Pipeline) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.width, p.height = width, height
	if r, ok := p.backend.(Resizer); ok {
		r.Resize(width, height)
	}
}

// Size returns the viewport size.
func (p *Pipeline) Size() (int, int) {
	return p.width, p.height
}

// Frame runs one frame with the configured timestep.
func (p *Pipeline) Frame() {
	p.Step(p.cfg.Timestep.Seconds())
}

// Step runs one frame advancing animation by dt seconds: apply queued
// requests, tick every controller, then draw each instance under
// projection·view·model.
func (p *Pipeline) Step(dt float64) {
	applied := 0
	if p.queue != nil {
		applied = p.queue.Drain(p.apply)
	}

	instances := p.reg.Instances()
	for _, inst := range instances {
		inst.Animation.Update(dt)
	}

	viewProj := p.Projection().Mul(p.cam.ViewMatrix())

	if fb, ok := p.backend.(FrameBackend); ok {
		fb.BeginFrame()
	}
	triangles := 0
	for _, inst := range instances {
		if !p.ensureUploaded(inst) {
			continue
		}
		p.backend.Draw(inst.Mesh, viewProj.Mul(ModelMatrix(inst)))
		triangles += inst.Geometry.TriangleCount()
	}
	if fb, ok := p.backend.(FrameBackend); ok {
		fb.EndFrame()
	}

	p.stats.Frames++
	p.stats.Instances = len(instances)
	p.stats.Triangles = triangles
	p.stats.Requests = applied
}

// Projection returns the perspective matrix for the current viewport.
func (p *Pipeline) Projection() math.Mat4 {
	aspect := float32(p.width) / float32(p.height)
	return math.Perspective(math.Radians(p.cfg.FOV), aspect, p.cfg.Near, p.cfg.Far)
}

// ModelMatrix places an instance: translate to its slot, yaw by its base
// rotation plus the animated body yaw, then lift by the animated offset.
func ModelMatrix(inst *instance.Instance) math.Mat4 {
	pose := inst.Animation.Pose()
	return math.Translate(inst.Position.X, inst.Position.Y, inst.Position.Z).
		Mul(math.RotateY(math.Radians(inst.BaseRotation + pose.BodyYaw))).
		Mul(math.Translate(0, pose.VerticalOffset, 0))
}

// AddInstance adds a mannequin and uploads its geometry once.
func (p *Pipeline) AddInstance(m body.Measurements) (*instance.Instance, error) {
	inst, ok := p.reg.Add(m)
	if !ok {
		return nil, ErrFull
	}

	mesh, err := p.backend.Upload(inst.Geometry)
	if err != nil {
		p.reg.DropLast(inst.ID)
		return nil, fmt.Errorf("uploading mannequin %s: %w", inst.ID, err)
	}
	inst.Mesh = mesh
	return inst, nil
}

// ensureUploaded uploads instances that were added to the registry
// directly. A failed upload is logged once and the instance is skipped.
func (p *Pipeline) ensureUploaded(inst *instance.Instance) bool {
	if inst.Mesh != nil {
		return true
	}
	if _, failed := p.failed[inst.ID]; failed {
		return false
	}
	mesh, err := p.backend.Upload(inst.Geometry)
	if err != nil {
		p.failed[inst.ID] = struct{}{}
		p.log.Error("upload failed", zap.Stringer("id", inst.ID), zap.Error(err))
		return false
	}
	inst.Mesh = mesh
	return true
}

// RemoveInstance releases the instance's mesh and removes it.
func (p *Pipeline) RemoveInstance(index int) bool {
	inst := p.reg.At(index)
	if inst == nil {
		return false
	}
	if inst.Mesh != nil {
		p.backend.Release(inst.Mesh)
		inst.Mesh = nil
	}
	delete(p.failed, inst.ID)
	return p.reg.Remove(index)
}

// Clear releases and removes every instance.
func (p *Pipeline) Clear() {
	for _, inst := range p.reg.Instances() {
		if inst.Mesh != nil {
			p.backend.Release(inst.Mesh)
			inst.Mesh = nil
		}
	}
	clear(p.failed)
	p.reg.Clear()
}

func (p *Pipeline) apply(req instance.Request) {
	switch req.Kind {
	case instance.RequestAdd:
		p.add(req.Measurements)
	case instance.RequestDuplicate:
		if inst := p.reg.At(p.reg.Resolve(req.Target)); inst != nil {
			p.add(inst.Measurements)
		}
	case instance.RequestRemove:
		if index := p.reg.Resolve(req.Target); !p.RemoveInstance(index) {
			p.log.Debug("remove request ignored", zap.Stringer("target", req.Target))
		}
	case instance.RequestSelect:
		p.reg.Select(p.reg.Resolve(req.Target))
	case instance.RequestSelectNext:
		p.reg.SelectNext()
	case instance.RequestSetMode:
		p.reg.SetMode(p.reg.Resolve(req.Target), req.Mode)
	case instance.RequestSetModeAll:
		p.reg.SetModeAll(req.Mode)
	case instance.RequestClear:
		p.Clear()
	case instance.RequestTogglePlay:
		p.reg.TogglePlay(p.reg.Resolve(req.Target))
	case instance.RequestRotate:
		p.reg.SetBaseRotation(p.reg.Resolve(req.Target), req.Degrees)
	}
}

func (p *Pipeline) add(m body.Measurements) {
	if _, err := p.AddInstance(m); err != nil {
		p.log.Warn("add request failed", zap.Error(err))
	}
}

// Pick selects the nearest instance under the screen point (pixels, top
// left origin) and reports its index.
func (p *Pipeline) Pick(x, y float32) (int, bool) {
	inv := p.Projection().Mul(p.cam.ViewMatrix()).Inverse()
	ray := picking.ScreenToRay(x, y, float32(p.width), float32(p.height), inv)

	instances := p.reg.Instances()
	boxes := make([]picking.AABB, len(instances))
	for i, inst := range instances {
		b := inst.Geometry.Bounds
		boxes[i] = picking.TransformAABB(picking.AABB{Min: b.Min, Max: b.Max}, ModelMatrix(inst))
	}

	index, ok := ray.Nearest(boxes)
	if ok {
		p.reg.Select(index)
	}
	return index, ok
}

// Stats returns counters for the last frame.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// Registry returns the registry driven by this pipeline.
func (p *Pipeline) Registry() *instance.Registry {
	return p.reg
}

// Camera returns the camera used by this pipeline.
func (p *Pipeline) Camera() *camera.State {
	return p.cam
}

// Close releases every uploaded mesh without removing instances.
func (p *Pipeline) Close() {
	for _, inst := range p.reg.Instances() {
		if inst.Mesh != nil {
			p.backend.Release(inst.Mesh)
			inst.Mesh = nil
		}
	}
}
