// ABOUTME: Tracer capability and the Visitor used by mark and snapshot passes
// ABOUTME: Visit marks a child once and schedules its own trace

package arena

import "github.com/prateek/gcarena/graph"

// Tracer is implemented by every value stored in an Arena. Trace must call
// v.Visit for every handle the value holds directly. Leaf values implement
// it as a no-op.
type Tracer interface {
	Trace(v *Visitor)
}

// Finalizer is implemented by values that need to release resources when
// their allocation is collected. Finalize runs exactly once, during the
// sweep that reclaims the allocation. It must not allocate in, root into or
// collect the arena.
type Finalizer interface {
	Finalize()
}

// Sizer reports the logical size of a value for snapshots.
type Sizer interface {
	Size() uint64
}

type visitMode uint8

const (
	modeMark visitMode = iota
	modeRecord
)

// Visitor is handed to Tracer.Trace by the arena. Only the arena creates
// usable visitors; a Visitor built elsewhere ignores every call.
type Visitor struct {
	arena *Arena
	mode  visitMode
	gray  []int32
	edges []graph.ObjID
}

// Visit reports a child handle. In a collection it marks the child and
// schedules its trace, unless the child is already marked.
// Nil, collected and foreign handles are ignored.
func (v *Visitor) Visit(r Ref) {
	if v == nil || v.arena == nil || r == nil {
		return
	}
	idx, ok := v.arena.resolve(r.ref())
	if !ok {
		return
	}
	switch v.mode {
	case modeRecord:
		v.edges = append(v.edges, graph.ObjID(v.arena.slots[idx].id))
	default:
		v.shade(idx)
	}
}

// shade marks idx and pushes it on the gray stack on the unmarked to marked
// transition only.
func (v *Visitor) shade(idx int32) {
	marks := v.arena.marks
	if marks.Test(uint(idx)) {
		return
	}
	marks.Set(uint(idx))
	v.gray = append(v.gray, idx)
}

// drain traces gray allocations until none remain.
func (v *Visitor) drain() {
	for n := len(v.gray); n > 0; n = len(v.gray) {
		idx := v.gray[n-1]
		v.gray = v.gray[:n-1]
		v.arena.slots[idx].obj.trace(v)
	}
}
