// ABOUTME: Typed handles and the shared indirection cell behind them
// ABOUTME: All clones of a handle observe collection through one cell

package arena

// cell is shared by every clone of one handle. slot is set to nilSlot when
// the allocation is swept; a cell is never pointed at another allocation.
type cell struct {
	arena *Arena
	slot  int32
	gen   uint32
}

// Ref is the untyped view of a Handle, accepted by rooting and visiting.
// It cannot be implemented outside this package.
type Ref interface {
	ref() *cell
}

// Handle is a cloneable, typed reference to an allocation. The zero Handle
// refers to nothing.
type Handle[T Tracer] struct {
	c *cell
}

func (h Handle[T]) ref() *cell { return h.c }

// Clone returns a handle sharing h's identity.
func (h Handle[T]) Clone() Handle[T] {
	return Handle[T]{c: h.c}
}

// IsNil reports whether h is the zero Handle.
func (h Handle[T]) IsNil() bool {
	return h.c == nil
}

// Alive reports whether h's allocation has not been collected.
func (h Handle[T]) Alive() bool {
	_, ok := h.box()
	return ok
}

// ID returns the allocation id, or 0 if the allocation has been collected.
func (h Handle[T]) ID() uint64 {
	if h.c == nil {
		return 0
	}
	idx, ok := h.c.arena.resolve(h.c)
	if !ok {
		return 0
	}
	return h.c.arena.slots[idx].id
}

// TryGet returns a copy of the value, or false if the allocation has been
// collected.
func (h Handle[T]) TryGet() (T, bool) {
	b, ok := h.box()
	if !ok {
		var zero T
		return zero, false
	}
	return b.v, true
}

// Get returns a copy of the value. It panics with ErrCollected if the
// allocation has been collected.
func (h Handle[T]) Get() T {
	return h.mustBox().v
}

// TryGetMut returns a pointer to the stored value, or false if the
// allocation has been collected. The pointer is shared with every clone.
func (h Handle[T]) TryGetMut() (*T, bool) {
	b, ok := h.box()
	if !ok {
		return nil, false
	}
	return &b.v, true
}

// GetMut returns a pointer to the stored value. It panics with ErrCollected
// if the allocation has been collected.
func (h Handle[T]) GetMut() *T {
	return &h.mustBox().v
}

func (h Handle[T]) box() (*box[T], bool) {
	if h.c == nil {
		return nil, false
	}
	idx, ok := h.c.arena.resolve(h.c)
	if !ok {
		return nil, false
	}
	return h.c.arena.slots[idx].obj.(*box[T]), true
}

func (h Handle[T]) mustBox() *box[T] {
	if h.c == nil {
		panic(ErrNilHandle)
	}
	b, ok := h.box()
	if !ok {
		panic(ErrCollected)
	}
	return b
}

// SameAllocation reports whether a and b are clones of one handle.
func SameAllocation(a, b Ref) bool {
	if a == nil || b == nil {
		return false
	}
	ca := a.ref()
	return ca != nil && ca == b.ref()
}
