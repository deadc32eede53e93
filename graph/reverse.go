// ABOUTME: Builds reverse edges for graph traversal
// ABOUTME: Maps objects to their referrers for paths-to-roots and dominators

package graph

// ReverseEdges maps each object to the objects that point to it. Each
// referrer appears once per target even if it holds several edges to it.
type ReverseEdges map[ObjID][]ObjID

// BuildReverseEdges creates the referrer map. Referrers are listed in
// ascending ID order.
func BuildReverseEdges(g Graph) ReverseEdges {
	reverse := make(ReverseEdges)
	g.ForEachObject(func(obj *Object) {
		for i, target := range obj.Ptrs {
			if containsID(obj.Ptrs[:i], target) {
				continue
			}
			reverse[target] = append(reverse[target], obj.ID)
		}
	})
	return reverse
}

func containsID(ids []ObjID, id ObjID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
