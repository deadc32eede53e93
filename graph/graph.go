// ABOUTME: Graph interface and in-memory implementation
// ABOUTME: Objects are visited in ascending ID order so analyses are deterministic

package graph

import (
	"slices"
	"sync"
)

// Graph is a read/write view of an object graph.
type Graph interface {
	// AddObject inserts obj, replacing any object with the same ID.
	AddObject(obj *Object)

	// GetObject returns the object with the given ID, or nil.
	GetObject(id ObjID) *Object

	// NumObjects returns the number of objects.
	NumObjects() int

	// ForEachObject calls fn for every object in ascending ID order.
	ForEachObject(fn func(*Object))

	// SetRoots replaces the root set.
	SetRoots(roots Roots)

	// GetRoots returns the root set.
	GetRoots() Roots
}

// MemGraph is a Graph held in memory. It is safe for concurrent use.
type MemGraph struct {
	mu      sync.RWMutex
	objects map[ObjID]*Object
	roots   Roots
}

// NewMemGraph creates an empty graph.
func NewMemGraph() *MemGraph {
	return &MemGraph{
		objects: make(map[ObjID]*Object),
	}
}

func (g *MemGraph) AddObject(obj *Object) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.objects[obj.ID] = obj
}

func (g *MemGraph) GetObject(id ObjID) *Object {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.objects[id]
}

func (g *MemGraph) NumObjects() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.objects)
}

// ForEachObject calls fn outside the lock, so fn may query g.
func (g *MemGraph) ForEachObject(fn func(*Object)) {
	for _, obj := range g.sorted() {
		fn(obj)
	}
}

func (g *MemGraph) sorted() []*Object {
	g.mu.RLock()
	objs := make([]*Object, 0, len(g.objects))
	for _, obj := range g.objects {
		objs = append(objs, obj)
	}
	g.mu.RUnlock()

	slices.SortFunc(objs, func(a, b *Object) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return objs
}

func (g *MemGraph) SetRoots(roots Roots) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.roots = Roots{IDs: slices.Clone(roots.IDs)}
}

func (g *MemGraph) GetRoots() Roots {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return Roots{IDs: slices.Clone(g.roots.IDs)}
}

// TotalSize sums the sizes of all objects.
func TotalSize(g Graph) uint64 {
	var total uint64
	g.ForEachObject(func(obj *Object) {
		total += obj.Size
	})
	return total
}
