// ABOUTME: Slot table backing the arena: type-erased boxes, list links, free list
// ABOUTME: Slots are linked into an intrusive doubly linked list by index

package arena

import (
	"fmt"
	"reflect"
)

const nilSlot int32 = -1

// object is the type-erased view of a boxed value.
type object interface {
	trace(v *Visitor)
	finalize() bool
	size() uint64
	typeName() string
	value() any
}

type box[T Tracer] struct {
	v T
}

func (b *box[T]) trace(v *Visitor) { b.v.Trace(v) }

func (b *box[T]) finalize() bool {
	if f, ok := any(b.v).(Finalizer); ok {
		f.Finalize()
		return true
	}
	if f, ok := any(&b.v).(Finalizer); ok {
		f.Finalize()
		return true
	}
	return false
}

func (b *box[T]) size() uint64 {
	if s, ok := any(b.v).(Sizer); ok {
		return s.Size()
	}
	if s, ok := any(&b.v).(Sizer); ok {
		return s.Size()
	}
	return uint64(reflect.TypeFor[T]().Size())
}

func (b *box[T]) typeName() string { return fmt.Sprintf("%T", b.v) }

func (b *box[T]) value() any { return b.v }

// slot is the header of one allocation. gen is bumped whenever the slot is
// released so that a stale cell can never resolve to a reused slot.
type slot struct {
	obj  object
	cell *cell
	id   uint64
	gen  uint32
	next int32
	prev int32
}

// link stores obj in a fresh or recycled slot and pushes it on the list head.
func (a *Arena) link(obj object) int32 {
	var idx int32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		idx = int32(len(a.slots) - 1)
	}

	a.nextID++
	s := &a.slots[idx]
	s.obj = obj
	s.id = a.nextID
	s.cell = &cell{arena: a, slot: idx, gen: s.gen}
	s.prev = nilSlot
	s.next = a.head
	if a.head != nilSlot {
		a.slots[a.head].prev = idx
	}
	a.head = idx
	a.live++
	a.marks.Clear(uint(idx))
	return idx
}

// unlink removes idx from the list, fixing neighbours and the head.
func (a *Arena) unlink(idx int32) {
	s := &a.slots[idx]
	if s.prev != nilSlot {
		a.slots[s.prev].next = s.next
	} else {
		a.head = s.next
	}
	if s.next != nilSlot {
		a.slots[s.next].prev = s.prev
	}
	s.next, s.prev = nilSlot, nilSlot
	a.live--
}

// release empties the slot's cell, finalizes the value and recycles the slot.
// It reports whether a finalizer ran.
func (a *Arena) release(idx int32) bool {
	s := &a.slots[idx]
	s.cell.slot = nilSlot
	obj := s.obj
	s.obj = nil
	s.cell = nil
	s.id = 0
	s.gen++
	a.free = append(a.free, idx)
	return obj.finalize()
}
