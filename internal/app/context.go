// Package app wires configuration, the instance registry, the camera and
// the render pipeline into one context shared by the front ends.
package app

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/mannequin/internal/body"
	"github.com/Faultbox/mannequin/internal/config"
	"github.com/Faultbox/mannequin/internal/engine/animation"
	"github.com/Faultbox/mannequin/internal/engine/camera"
	"github.com/Faultbox/mannequin/internal/engine/instance"
	"github.com/Faultbox/mannequin/internal/engine/lighting"
	"github.com/Faultbox/mannequin/internal/engine/pipeline"
	"github.com/Faultbox/mannequin/internal/logger"
)

// clickSlop is the pointer travel in pixels below which a press and
// release count as a click.
const clickSlop = 4

// Context owns the scene state. All methods and fields must be used from
// the render goroutine, except the Request* commands: they only push to the
// queue and act on the selection as it stands when the queue is drained.
type Context struct {
	Config   *config.Config
	Registry *instance.Registry
	Camera   *camera.State
	Queue    *instance.Queue
	Pipeline *pipeline.Pipeline
	Tracker  *camera.Tracker
	Clock    *Clock

	log      *zap.Logger
	pressAt  map[int][2]float32
	traveled map[int]float32
}

// New builds a context drawing through backend.
func New(cfg *config.Config, backend pipeline.Backend) *Context {
	reg := instance.New()
	cam := camera.NewState(cfg.Camera.Distance, cfg.Camera.RotationX, cfg.Camera.RotationY)
	queue := instance.NewQueue(instance.DefaultQueueSize)

	p := pipeline.New(pipeline.Config{
		Timestep: cfg.Render.Timestep,
		FOV:      cfg.Render.FOV,
		Near:     cfg.Render.Near,
		Far:      cfg.Render.Far,
	}, backend, reg, cam, queue)

	return &Context{
		Config:   cfg,
		Registry: reg,
		Camera:   cam,
		Queue:    queue,
		Pipeline: p,
		Tracker:  camera.NewTracker(cfg.Camera.DragSensitivity),
		Clock:    NewClock(cfg.Render.Timestep, cfg.Render.VariableTimestep),
		log:      logger.Named("app"),
		pressAt:  make(map[int][2]float32),
		traveled: make(map[int]float32),
	}
}

// KeyLight converts the configured light for the render backends.
func KeyLight(cfg config.LightConfig) lighting.Light {
	return lighting.New(cfg.Longitude, cfg.Latitude, cfg.Ambient, cfg.Diffuse)
}

// Populate adds the configured starting bodies. Bodies beyond the registry
// capacity are skipped with a warning.
func (c *Context) Populate() error {
	bodies, err := LoadBodies(c.Config.Body)
	if err != nil {
		return err
	}
	for i, m := range bodies {
		if _, err := c.Pipeline.AddInstance(m); err != nil {
			if errors.Is(err, pipeline.ErrFull) {
				c.log.Warn("skipping bodies over capacity",
					zap.Int("loaded", len(bodies)),
					zap.Int("capacity", instance.MaxInstances),
				)
				break
			}
			return err
		}
		c.log.Info("mannequin added",
			zap.Int("index", i),
			zap.Float32("height", m.Height),
			zap.Float32("weight", m.Weight),
			zap.Stringer("gender", m.Gender),
			zap.String("size", body.RecommendSize(m)),
		)
	}
	return nil
}

// Frame runs one pipeline frame starting at now.
func (c *Context) Frame(now time.Time) {
	c.Pipeline.Step(c.Clock.Next(now))
}

// Resize updates the viewport.
func (c *Context) Resize(width, height int) {
	c.Pipeline.Resize(width, height)
}

// PointerDown starts tracking a mouse button or finger.
func (c *Context) PointerDown(id int, x, y float32) {
	c.Tracker.Down(id, x, y)
	c.pressAt[id] = [2]float32{x, y}
	c.traveled[id] = 0
}

// PointerMove feeds drag or pinch movement into the camera.
func (c *Context) PointerMove(id int, x, y float32) {
	if start, ok := c.pressAt[id]; ok {
		c.traveled[id] = max(c.traveled[id], abs(x-start[0])+abs(y-start[1]))
	}
	c.Camera.Apply(c.Tracker.Move(id, x, y))
}

// PointerUp releases a pointer. A lone pointer released close to where it
// went down picks the mannequin under it; the picked index is returned.
func (c *Context) PointerUp(id int, x, y float32) (int, bool) {
	start, pressed := c.pressAt[id]
	lone := c.Tracker.Active() == 1
	moved := c.traveled[id]
	c.Tracker.Up(id)
	delete(c.pressAt, id)
	delete(c.traveled, id)

	if !pressed || !lone || moved > clickSlop {
		return -1, false
	}
	return c.Pick(start[0], start[1])
}

// Pick selects the mannequin under a viewport pixel.
func (c *Context) Pick(x, y float32) (int, bool) {
	index, ok := c.Pipeline.Pick(x, y)
	if ok {
		c.log.Debug("picked", zap.Int("index", index))
	}
	return index, ok
}

// Wheel zooms by wheel notches; positive zooms in.
func (c *Context) Wheel(delta float32) {
	c.Camera.ApplyPinch(camera.WheelScale(delta, c.Config.Camera.ZoomSensitivity))
}

// ResetCamera restores the configured camera.
func (c *Context) ResetCamera() {
	cfg := c.Config.Camera
	c.Camera.SetDistance(cfg.Distance)
	c.Camera.SetRotation(cfg.RotationX, cfg.RotationY)
}

func (c *Context) push(req instance.Request) bool {
	if !c.Queue.Push(req) {
		c.log.Warn("request dropped, queue full", zap.Stringer("kind", req.Kind))
		return false
	}
	return true
}

// RequestAdd queues a new mannequin.
func (c *Context) RequestAdd(m body.Measurements) bool {
	return c.push(instance.Request{Kind: instance.RequestAdd, Measurements: m})
}

// RequestDuplicate queues a copy of the selected mannequin.
func (c *Context) RequestDuplicate() bool {
	return c.push(instance.Request{Kind: instance.RequestDuplicate})
}

// RequestRemoveSelected queues removal of the selected mannequin.
func (c *Context) RequestRemoveSelected() bool {
	return c.push(instance.Request{Kind: instance.RequestRemove})
}

// RequestSelectNext queues selection of the next mannequin, wrapping.
func (c *Context) RequestSelectNext() bool {
	return c.push(instance.Request{Kind: instance.RequestSelectNext})
}

// RequestMode queues a mode change for the selected mannequin.
func (c *Context) RequestMode(m animation.Mode) bool {
	return c.push(instance.Request{Kind: instance.RequestSetMode, Mode: m})
}

// RequestModeAll queues a mode change for every mannequin.
func (c *Context) RequestModeAll(m animation.Mode) bool {
	return c.push(instance.Request{Kind: instance.RequestSetModeAll, Mode: m})
}

// RequestTogglePlay queues play/pause of the selected mannequin.
func (c *Context) RequestTogglePlay() bool {
	return c.push(instance.Request{Kind: instance.RequestTogglePlay})
}

// RequestRotate queues a new base rotation for the selected mannequin.
func (c *Context) RequestRotate(deg float32) bool {
	return c.push(instance.Request{Kind: instance.RequestRotate, Degrees: deg})
}

// RequestClear queues removal of every mannequin.
func (c *Context) RequestClear() bool {
	return c.push(instance.Request{Kind: instance.RequestClear})
}

// Close releases backend meshes.
func (c *Context) Close() {
	c.Pipeline.Close()
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
