// ABOUTME: Arena owning all allocations and the root set
// ABOUTME: Implements allocation, rooting and the reset/mark/sweep collection

package arena

import (
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

// Collection is the result of one Collect call.
type Collection struct {
	Total     int // allocations visited by the reset pass
	Collected int // allocations swept
}

// Stats holds cumulative arena counters.
type Stats struct {
	Collections    uint64
	Allocations    uint64
	Collected      uint64
	Finalized      uint64
	Live           int
	Roots          int
	LastCollection Collection
	LastDuration   time.Duration
}

// Arena owns a set of allocations linked into one list, plus the root set.
// The zero value is not usable; call New.
type Arena struct {
	slots  []slot
	free   []int32
	head   int32
	live   int
	nextID uint64

	marks *bitset.BitSet
	roots *roaring.Bitmap

	opts  options
	stats Stats
}

// New creates an empty arena.
func New(opts ...Option) *Arena {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Arena{
		slots: make([]slot, 0, o.capacity),
		head:  nilSlot,
		marks: bitset.New(uint(o.capacity)),
		roots: roaring.New(),
		opts:  o,
	}
}

// Allocate moves value into a new, unrooted allocation.
func Allocate[T Tracer](a *Arena, value T) Handle[T] {
	idx := a.link(&box[T]{v: value})
	a.stats.Allocations++
	a.opts.observer.OnAllocate()
	return Handle[T]{c: a.slots[idx].cell}
}

// AllocateRooted moves value into a new allocation and roots it.
func AllocateRooted[T Tracer](a *Arena, value T) Handle[T] {
	h := Allocate(a, value)
	a.roots.Add(uint32(h.c.slot))
	return h
}

// resolve returns the slot a cell points at if the cell belongs to a and its
// allocation is live.
func (a *Arena) resolve(c *cell) (int32, bool) {
	if c == nil || c.arena != a || c.slot == nilSlot {
		return nilSlot, false
	}
	if a.slots[c.slot].gen != c.gen {
		return nilSlot, false
	}
	return c.slot, true
}

// AddRoot roots r's allocation. Repeated calls have no further effect.
// Collected, nil and foreign handles are ignored.
func (a *Arena) AddRoot(r Ref) {
	idx, ok := a.rootable(r)
	if !ok {
		return
	}
	a.roots.Add(uint32(idx))
}

// RemoveRoot unroots r's allocation if it is rooted.
func (a *Arena) RemoveRoot(r Ref) {
	idx, ok := a.rootable(r)
	if !ok {
		return
	}
	a.roots.Remove(uint32(idx))
}

// IsRooted reports whether r's allocation is in the root set.
func (a *Arena) IsRooted(r Ref) bool {
	if r == nil {
		return false
	}
	idx, ok := a.resolve(r.ref())
	return ok && a.roots.Contains(uint32(idx))
}

func (a *Arena) rootable(r Ref) (int32, bool) {
	if r == nil {
		return nilSlot, false
	}
	c := r.ref()
	if c != nil && c.arena != a {
		a.opts.logger.Warn("ignoring handle from another arena")
		return nilSlot, false
	}
	return a.resolve(c)
}

// Len returns the number of live allocations.
func (a *Arena) Len() int {
	return a.live
}

// NumRoots returns the size of the root set.
func (a *Arena) NumRoots() int {
	return int(a.roots.GetCardinality())
}

// Stats returns cumulative counters.
func (a *Arena) Stats() Stats {
	s := a.stats
	s.Live = a.live
	s.Roots = a.NumRoots()
	return s
}

// Collect reclaims every allocation not reachable from the root set.
//
// It runs three passes: reset clears every mark bit, mark traces from each
// root, and sweep unlinks, invalidates and finalizes what stayed unmarked.
// Collect never fails.
func (a *Arena) Collect() Collection {
	start := time.Now()
	var col Collection

	for idx := range a.walk() {
		a.marks.Clear(uint(idx))
		col.Total++
	}

	v := &Visitor{arena: a, mode: modeMark}
	it := a.roots.Iterator()
	for it.HasNext() {
		v.shade(int32(it.Next()))
		v.drain()
	}

	finalized := 0
	for idx := range a.walk() {
		if a.marks.Test(uint(idx)) {
			continue
		}
		a.unlink(idx)
		if a.release(idx) {
			finalized++
		}
		col.Collected++
	}

	elapsed := time.Since(start)
	a.stats.Collections++
	a.stats.Collected += uint64(col.Collected)
	a.stats.Finalized += uint64(finalized)
	a.stats.LastCollection = col
	a.stats.LastDuration = elapsed

	a.opts.logger.Debug("collection completed",
		"total", col.Total,
		"collected", col.Collected,
		"finalized", finalized,
		"roots", a.NumRoots(),
		"duration", elapsed,
	)
	a.opts.observer.OnCollect(col, a.live, elapsed)
	return col
}
