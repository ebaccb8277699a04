package instance

import (
	"testing"

	"github.com/google/uuid"

	"github.com/Faultbox/mannequin/internal/body"
	"github.com/Faultbox/mannequin/internal/engine/animation"
	"github.com/Faultbox/mannequin/internal/engine/mannequin"
)

func measurements() body.Measurements {
	return body.Predict(175, 70, body.Male)
}

func near(a, b float32) bool {
	d := a - b
	return d < 1e-5 && d > -1e-5
}

func TestAddUpToCap(t *testing.T) {
	r := New()

	for i := 0; i < MaxInstances; i++ {
		inst, ok := r.Add(measurements())
		if !ok || inst == nil {
			t.Fatalf("add %d failed", i)
		}
		if inst.Geometry == nil || inst.Animation == nil {
			t.Fatalf("add %d: missing geometry or controller", i)
		}
		if inst.Animation.Mode() != animation.Idle {
			t.Errorf("add %d: new controller should be idle", i)
		}
		if inst.ID == uuid.Nil {
			t.Errorf("add %d: missing id", i)
		}
	}

	inst, ok := r.Add(measurements())
	if ok || inst != nil {
		t.Error("fifth add should fail")
	}
	if r.Len() != MaxInstances {
		t.Errorf("count after rejected add: got %d, want %d", r.Len(), MaxInstances)
	}
	if r.CanAdd() {
		t.Error("CanAdd should be false at cap")
	}
}

func TestAddPlacesNewInstance(t *testing.T) {
	r := New()

	want := []float32{0, 0.4, 0.8}
	for i, x := range want {
		inst, _ := r.Add(measurements())
		if !near(inst.Position.X, x) {
			t.Errorf("add %d: x = %f, want %f", i, inst.Position.X, x)
		}
		if inst.Position.Y != 0 || inst.Position.Z != 0 {
			t.Errorf("add %d: y/z should be 0, got %+v", i, inst.Position)
		}
	}

	// Earlier instances are not moved by later adds.
	if r.At(0).Position.X != 0 {
		t.Errorf("first instance moved to %f", r.At(0).Position.X)
	}
}

func TestRemoveRepositions(t *testing.T) {
	r := New()
	for i := 0; i < 3; i++ {
		r.Add(measurements())
	}
	second := r.At(1).ID

	if !r.Remove(0) {
		t.Fatal("remove(0) failed")
	}
	if r.Len() != 2 {
		t.Fatalf("count: got %d, want 2", r.Len())
	}
	if !near(r.At(0).Position.X, -0.4) || !near(r.At(1).Position.X, 0.4) {
		t.Errorf("positions after remove: %f, %f, want -0.4, 0.4", r.At(0).Position.X, r.At(1).Position.X)
	}
	if r.At(0).ID != second {
		t.Error("survivors should keep their order")
	}
}

func TestRemoveInvalid(t *testing.T) {
	r := New()
	r.Add(measurements())

	for _, idx := range []int{-1, 1, 10} {
		if r.Remove(idx) {
			t.Errorf("Remove(%d) should fail", idx)
		}
	}
	if r.Len() != 1 {
		t.Errorf("count changed to %d", r.Len())
	}
}

func TestSelection(t *testing.T) {
	r := New()
	for i := 0; i < 3; i++ {
		r.Add(measurements())
	}

	r.Select(2)
	if r.Selected() != 2 {
		t.Fatalf("Select(2): got %d", r.Selected())
	}

	r.Select(7)
	r.Select(-1)
	if r.Selected() != 2 {
		t.Errorf("out-of-range select should be ignored, got %d", r.Selected())
	}

	r.Remove(2)
	if r.Selected() != 1 {
		t.Errorf("selection should clamp to 1, got %d", r.Selected())
	}
	if r.SelectedInstance() != r.At(1) {
		t.Error("SelectedInstance mismatch")
	}

	r.Remove(0)
	r.Remove(0)
	if r.SelectedInstance() != nil {
		t.Error("empty registry should have no selected instance")
	}
}

func TestRemoveID(t *testing.T) {
	r := New()
	a, _ := r.Add(measurements())
	b, _ := r.Add(measurements())

	if r.Index(b.ID) != 1 {
		t.Errorf("Index(b) = %d, want 1", r.Index(b.ID))
	}
	if !r.RemoveID(a.ID) {
		t.Fatal("RemoveID failed")
	}
	if r.Index(a.ID) != -1 {
		t.Error("removed id still indexed")
	}
	if r.RemoveID(uuid.New()) {
		t.Error("RemoveID of unknown id should fail")
	}
}

func TestInstancesSnapshot(t *testing.T) {
	r := New()
	r.Add(measurements())
	r.Add(measurements())

	snap := r.Instances()
	snap[0] = nil
	if r.At(0) == nil {
		t.Error("Instances should return a copy")
	}
}

func TestClear(t *testing.T) {
	r := New()
	r.Add(measurements())
	r.Add(measurements())
	r.Select(1)

	r.Clear()
	if r.Len() != 0 || r.Selected() != 0 || !r.CanAdd() {
		t.Errorf("Clear: len=%d selected=%d", r.Len(), r.Selected())
	}
}

func TestSetMode(t *testing.T) {
	r := New()
	r.Add(measurements())
	r.Add(measurements())

	if !r.SetMode(1, animation.Walk) {
		t.Fatal("SetMode(1) failed")
	}
	if r.At(0).Animation.Mode() != animation.Idle || r.At(1).Animation.Mode() != animation.Walk {
		t.Error("SetMode should only touch one instance")
	}
	if r.SetMode(5, animation.Walk) {
		t.Error("SetMode out of range should fail")
	}

	r.SetModeAll(animation.Turn)
	for i := 0; i < r.Len(); i++ {
		if r.At(i).Animation.Mode() != animation.Turn {
			t.Errorf("instance %d not switched", i)
		}
	}

	if !r.SetBaseRotation(0, 45) || r.At(0).BaseRotation != 45 {
		t.Error("SetBaseRotation failed")
	}
}

func TestWithGenerator(t *testing.T) {
	calls := 0
	r := New(WithGenerator(func(m body.Measurements) *mannequin.Geometry {
		calls++
		return &mannequin.Geometry{}
	}))

	r.Add(measurements())
	r.Add(measurements())
	if calls != 2 {
		t.Errorf("generator calls: got %d, want 2", calls)
	}

	// Geometry is exclusive to each instance.
	if r.At(0).Geometry == r.At(1).Geometry {
		t.Error("instances share geometry")
	}
}

func TestPlacementX(t *testing.T) {
	tests := []struct {
		i, n int
		want float32
	}{
		{0, 1, 0},
		{0, 2, -0.4},
		{1, 2, 0.4},
		{0, 4, -1.2},
		{3, 4, 1.2},
	}
	for _, tt := range tests {
		if got := PlacementX(tt.i, tt.n); !near(got, tt.want) {
			t.Errorf("PlacementX(%d, %d) = %f, want %f", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestTogglePlay(t *testing.T) {
	r := New()
	r.Add(measurements())

	if !r.TogglePlay(0) || r.At(0).Animation.Playing() {
		t.Error("first toggle should pause")
	}
	if !r.TogglePlay(0) || !r.At(0).Animation.Playing() {
		t.Error("second toggle should resume")
	}
	if r.TogglePlay(3) {
		t.Error("TogglePlay out of range should fail")
	}
}

func TestResolve(t *testing.T) {
	r := New()
	if r.Resolve(uuid.Nil) != -1 {
		t.Error("Resolve(Nil) on an empty registry should be -1")
	}
	a, _ := r.Add(measurements())
	b, _ := r.Add(measurements())
	r.Select(1)

	tests := []struct {
		name string
		id   uuid.UUID
		want int
	}{
		{"selection", uuid.Nil, 1},
		{"by id", a.ID, 0},
		{"other id", b.ID, 1},
		{"unknown", uuid.New(), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Resolve(tt.id); got != tt.want {
				t.Errorf("Resolve = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelectNextWraps(t *testing.T) {
	r := New()
	r.SelectNext()
	if r.Selected() != 0 {
		t.Errorf("SelectNext on empty registry moved selection to %d", r.Selected())
	}
	r.Add(measurements())
	r.Add(measurements())
	r.SelectNext()
	if r.Selected() != 1 {
		t.Errorf("Selected = %d, want 1", r.Selected())
	}
	r.SelectNext()
	if r.Selected() != 0 {
		t.Errorf("Selected = %d, want wrap to 0", r.Selected())
	}
}

func TestDropLast(t *testing.T) {
	r := New()
	a, _ := r.Add(measurements())
	b, _ := r.Add(measurements())
	ax := a.Position.X
	r.Select(1)

	if r.DropLast(a.ID) {
		t.Error("DropLast of a non-last id should fail")
	}
	if !r.DropLast(b.ID) {
		t.Fatal("DropLast of the last id failed")
	}
	if r.Len() != 1 || a.Position.X != ax {
		t.Errorf("Len = %d, x = %v; want 1 and %v", r.Len(), a.Position.X, ax)
	}
	if r.Selected() != 0 {
		t.Errorf("Selected = %d, want 0", r.Selected())
	}
}
