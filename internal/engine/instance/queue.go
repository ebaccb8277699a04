package instance

import (
	"github.com/google/uuid"

	"github.com/Faultbox/mannequin/internal/body"
	"github.com/Faultbox/mannequin/internal/engine/animation"
)

// RequestKind identifies a deferred registry mutation.
type RequestKind int

const (
	RequestAdd RequestKind = iota
	RequestRemove
	RequestSelect
	RequestSetMode
	RequestSetModeAll
	RequestClear
	RequestTogglePlay
	RequestRotate
	RequestSelectNext
	RequestDuplicate
)

func (k RequestKind) String() string {
	switch k {
	case RequestAdd:
		return "add"
	case RequestRemove:
		return "remove"
	case RequestSelect:
		return "select"
	case RequestSetMode:
		return "set_mode"
	case RequestSetModeAll:
		return "set_mode_all"
	case RequestClear:
		return "clear"
	case RequestTogglePlay:
		return "toggle_play"
	case RequestRotate:
		return "rotate"
	case RequestSelectNext:
		return "select_next"
	case RequestDuplicate:
		return "duplicate"
	}
	return "unknown"
}

// Request is a registry mutation submitted from outside the render loop.
//
// Target names the instance by id and is resolved when the request is
// applied, so earlier requests in the same drain cannot redirect it. A nil
// Target means whichever instance is selected at that point.
type Request struct {
	Kind         RequestKind
	Target       uuid.UUID         // Remove, Select, SetMode, TogglePlay, Rotate, Duplicate
	Measurements body.Measurements // RequestAdd
	Mode         animation.Mode    // RequestSetMode, RequestSetModeAll
	Degrees      float32           // RequestRotate, absolute base rotation
}

// DefaultQueueSize is the capacity used by NewQueue when size <= 0.
const DefaultQueueSize = 32

// Queue carries requests from any goroutine to the render loop, which
// drains it at the start of each frame. Push never blocks.
type Queue struct {
	ch chan Request
}

// NewQueue creates a queue holding up to size pending requests.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Request, size)}
}

// Push enqueues req. It returns false and drops req when the queue is full.
func (q *Queue) Push(req Request) bool {
	select {
	case q.ch <- req:
		return true
	default:
		return false
	}
}

// Drain removes every pending request in submission order and passes each
// to fn. Requests pushed while draining wait for the next call.
func (q *Queue) Drain(fn func(Request)) int {
	n := len(q.ch)
	for i := 0; i < n; i++ {
		select {
		case req := <-q.ch:
			fn(req)
		default:
			return i
		}
	}
	return n
}

// Len returns the number of pending requests.
func (q *Queue) Len() int {
	return len(q.ch)
}
