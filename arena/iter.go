// ABOUTME: Lazy iteration over the arena's allocation list
// ABOUTME: The successor is read before each yield so the current node may be unlinked

package arena

import "iter"

// Allocation is a read-only view of one live allocation.
type Allocation struct {
	ID         uint64
	Slot       int
	Generation uint32
	Rooted     bool
	Type       string
	Value      any
}

// walk yields slot indices in list order starting at the head.
func (a *Arena) walk() iter.Seq[int32] {
	return func(yield func(int32) bool) {
		cur := a.head
		for cur != nilSlot {
			next := a.slots[cur].next
			if !yield(cur) {
				return
			}
			cur = next
		}
	}
}

// Iterate yields every live allocation, most recent first. Each range over
// the result starts again from the current head.
func (a *Arena) Iterate() iter.Seq[Allocation] {
	return func(yield func(Allocation) bool) {
		for idx := range a.walk() {
			s := &a.slots[idx]
			alloc := Allocation{
				ID:         s.id,
				Slot:       int(idx),
				Generation: s.gen,
				Rooted:     a.roots.Contains(uint32(idx)),
				Type:       s.obj.typeName(),
				Value:      s.obj.value(),
			}
			if !yield(alloc) {
				return
			}
		}
	}
}
