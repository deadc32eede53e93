// ABOUTME: Converts the live arena into a graph for offline analysis
// ABOUTME: Edges come from each value's own Trace through a recording visitor

package arena

import "github.com/prateek/gcarena/graph"

// Snapshot returns the live allocations as an object graph keyed by
// allocation id. The arena is not modified.
func (a *Arena) Snapshot() *graph.MemGraph {
	g := graph.NewMemGraph()
	v := &Visitor{arena: a, mode: modeRecord}

	for idx := range a.walk() {
		s := &a.slots[idx]
		v.edges = nil
		s.obj.trace(v)
		ptrs := v.edges
		if ptrs == nil {
			ptrs = []graph.ObjID{}
		}
		g.AddObject(&graph.Object{
			ID:   graph.ObjID(s.id),
			Type: s.obj.typeName(),
			Size: s.obj.size(),
			Ptrs: ptrs,
		})
	}

	roots := graph.Roots{IDs: make([]graph.ObjID, 0, a.roots.GetCardinality())}
	it := a.roots.Iterator()
	for it.HasNext() {
		roots.IDs = append(roots.IDs, graph.ObjID(a.slots[it.Next()].id))
	}
	g.SetRoots(roots)
	return g
}
