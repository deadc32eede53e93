// ABOUTME: Reachability from the root set, mirroring the arena's mark phase
// ABOUTME: The complement is exactly what the next collection would sweep

package graph

import "slices"

// Reachable returns the set of objects reachable from the roots. Edges to
// IDs that are not in the graph are ignored.
func Reachable(g Graph) map[ObjID]bool {
	marked := make(map[ObjID]bool)
	var stack []ObjID

	shade := func(id ObjID) {
		if marked[id] || g.GetObject(id) == nil {
			return
		}
		marked[id] = true
		stack = append(stack, id)
	}

	for _, id := range g.GetRoots().IDs {
		shade(id)
		for n := len(stack); n > 0; n = len(stack) {
			cur := stack[n-1]
			stack = stack[:n-1]
			for _, child := range g.GetObject(cur).Ptrs {
				shade(child)
			}
		}
	}
	return marked
}

// Unreachable returns the IDs of objects not reachable from the roots, in
// ascending order.
func Unreachable(g Graph) []ObjID {
	marked := Reachable(g)
	var garbage []ObjID
	g.ForEachObject(func(obj *Object) {
		if !marked[obj.ID] {
			garbage = append(garbage, obj.ID)
		}
	})
	slices.Sort(garbage)
	return garbage
}
