// Package instance holds the bounded set of mannequins on stage.
package instance

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/mannequin/internal/body"
	"github.com/Faultbox/mannequin/internal/engine/animation"
	"github.com/Faultbox/mannequin/internal/engine/mannequin"
	"github.com/Faultbox/mannequin/internal/logger"
	"github.com/Faultbox/mannequin/pkg/math"
)

const (
	// MaxInstances is the hard cap on concurrently rendered mannequins.
	MaxInstances = 4
	// Spacing is the horizontal gap between neighbours, in world units.
	Spacing = 0.8
)

// Instance is one mannequin on stage. Geometry and Animation belong to this
// record alone.
type Instance struct {
	ID           uuid.UUID
	Measurements body.Measurements
	Geometry     *mannequin.Geometry
	Animation    *animation.Controller
	Position     math.Vec3
	BaseRotation float32 // degrees about Y
	Mesh         any     // backend handle, set after upload
}

// Registry is the ordered arena of instances plus the current selection.
// It is owned by the render loop; other goroutines go through Queue.
type Registry struct {
	instances []*Instance
	selected  int
	generate  func(body.Measurements) *mannequin.Geometry
	log       *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the registry logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

// WithGenerator replaces the mesh generator.
func WithGenerator(fn func(body.Measurements) *mannequin.Geometry) Option {
	return func(r *Registry) {
		r.generate = fn
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		instances: make([]*Instance, 0, MaxInstances),
		generate:  mannequin.Generate,
		log:       logger.Named("instance"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// PlacementX returns the x position of slot i in a row of n instances
// centred on the origin.
func PlacementX(i, n int) float32 {
	spread := float32(n-1) * Spacing
	return -spread/2 + float32(i)*Spacing
}

// Add generates geometry for m and appends a new Idle instance. It returns
// false without changing anything when the registry is full.
//
// Only the new instance is placed, using the post-add count; existing
// instances keep their positions until the next removal.
func (r *Registry) Add(m body.Measurements) (*Instance, bool) {
	if !r.CanAdd() {
		r.log.Debug("add rejected, registry full", zap.Int("count", len(r.instances)))
		return nil, false
	}

	n := len(r.instances) + 1
	inst := &Instance{
		ID:           uuid.New(),
		Measurements: m,
		Geometry:     r.generate(m),
		Animation:    animation.New(),
		Position:     math.Vec3{X: PlacementX(n-1, n)},
	}
	r.instances = append(r.instances, inst)

	r.log.Info("instance added",
		zap.Stringer("id", inst.ID),
		zap.Int("count", n),
		zap.Float32("x", inst.Position.X))
	return inst, true
}

// Remove drops the instance at index, re-places every survivor for the new
// count and clamps the selection. It returns false for an invalid index.
func (r *Registry) Remove(index int) bool {
	if index < 0 || index >= len(r.instances) {
		r.log.Debug("remove rejected", zap.Int("index", index), zap.Int("count", len(r.instances)))
		return false
	}

	removed := r.instances[index]
	copy(r.instances[index:], r.instances[index+1:])
	r.instances[len(r.instances)-1] = nil
	r.instances = r.instances[:len(r.instances)-1]

	r.reposition()
	if r.selected >= len(r.instances) && len(r.instances) > 0 {
		r.selected = len(r.instances) - 1
	}

	r.log.Info("instance removed", zap.Stringer("id", removed.ID), zap.Int("count", len(r.instances)))
	return true
}

// RemoveID removes the instance with the given id.
func (r *Registry) RemoveID(id uuid.UUID) bool {
	return r.Remove(r.Index(id))
}

// DropLast undoes the most recent Add when id is still the last instance.
// The survivors keep their positions, since Add only placed the new one.
func (r *Registry) DropLast(id uuid.UUID) bool {
	n := len(r.instances)
	if n == 0 || r.instances[n-1].ID != id {
		return false
	}
	r.instances[n-1] = nil
	r.instances = r.instances[:n-1]
	if r.selected >= len(r.instances) && len(r.instances) > 0 {
		r.selected = len(r.instances) - 1
	}
	return true
}

func (r *Registry) reposition() {
	n := len(r.instances)
	for i, inst := range r.instances {
		inst.Position = math.Vec3{X: PlacementX(i, n)}
	}
}

// Clear removes every instance and resets the selection.
func (r *Registry) Clear() {
	for i := range r.instances {
		r.instances[i] = nil
	}
	r.instances = r.instances[:0]
	r.selected = 0
}

// CanAdd reports whether another instance fits.
func (r *Registry) CanAdd() bool {
	return len(r.instances) < MaxInstances
}

// Len returns the number of instances.
func (r *Registry) Len() int {
	return len(r.instances)
}

// At returns the instance at index, or nil.
func (r *Registry) At(index int) *Instance {
	if index < 0 || index >= len(r.instances) {
		return nil
	}
	return r.instances[index]
}

// Index returns the position of id, or -1.
func (r *Registry) Index(id uuid.UUID) int {
	for i, inst := range r.instances {
		if inst.ID == id {
			return i
		}
	}
	return -1
}

// Instances returns a snapshot of the instance list.
func (r *Registry) Instances() []*Instance {
	out := make([]*Instance, len(r.instances))
	copy(out, r.instances)
	return out
}

// Resolve returns the index of id, or of the selected instance when id is
// uuid.Nil. It returns -1 when there is no such instance.
func (r *Registry) Resolve(id uuid.UUID) int {
	if id == uuid.Nil {
		if len(r.instances) == 0 {
			return -1
		}
		return r.selected
	}
	return r.Index(id)
}

// SelectNext advances the selection, wrapping to the first instance.
func (r *Registry) SelectNext() {
	if n := len(r.instances); n > 0 {
		r.selected = (r.selected + 1) % n
	}
}

// Select sets the selection; out-of-range indices are ignored.
func (r *Registry) Select(index int) {
	if index < 0 || index >= len(r.instances) {
		return
	}
	r.selected = index
}

// Selected returns the selection index.
func (r *Registry) Selected() int {
	return r.selected
}

// SelectedInstance returns the selected instance, or nil when empty.
func (r *Registry) SelectedInstance() *Instance {
	return r.At(r.selected)
}

// SetMode changes the animation mode of one instance.
func (r *Registry) SetMode(index int, mode animation.Mode) bool {
	inst := r.At(index)
	if inst == nil {
		return false
	}
	inst.Animation.SetMode(mode)
	return true
}

// SetModeAll changes the animation mode of every instance.
func (r *Registry) SetModeAll(mode animation.Mode) {
	for _, inst := range r.instances {
		inst.Animation.SetMode(mode)
	}
}

// SetBaseRotation sets the standing yaw of one instance, in degrees.
func (r *Registry) SetBaseRotation(index int, deg float32) bool {
	inst := r.At(index)
	if inst == nil {
		return false
	}
	inst.BaseRotation = deg
	return true
}

// TogglePlay pauses a playing instance or resumes a paused one.
func (r *Registry) TogglePlay(index int) bool {
	inst := r.At(index)
	if inst == nil {
		return false
	}
	if inst.Animation.Playing() {
		inst.Animation.Pause()
	} else {
		inst.Animation.Play()
	}
	return true
}
