// ABOUTME: Retained size of objects from the dominator tree
// ABOUTME: What one allocation keeps alive, i.e. what unrooting it would free

package graph

// RetainedSize returns, for every reachable object, its own size plus the
// sizes of all objects it dominates: the bytes a collection would reclaim
// if the object alone stopped being reachable.
func RetainedSize(g Graph) map[ObjID]uint64 {
	retained := retainedSizes(g)
	delete(retained, SuperRoot)
	return retained
}

// RetainedSizeSubsets returns retained sizes for the reachable objects in ids
// only. Unknown and unreachable IDs are omitted.
func RetainedSizeSubsets(g Graph, ids []ObjID) map[ObjID]uint64 {
	result := make(map[ObjID]uint64)
	if len(ids) == 0 {
		return result
	}
	retained := retainedSizes(g)
	for _, id := range ids {
		if size, ok := retained[id]; ok && id != SuperRoot {
			result[id] = size
		}
	}
	return result
}

// retainedSizes accumulates sizes bottom-up over the dominator tree, using
// an explicit post-order so deep chains do not recurse.
func retainedSizes(g Graph) map[ObjID]uint64 {
	tree := DominatorTree(Dominators(g))

	var order []ObjID
	stack := []ObjID{SuperRoot}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, node)
		stack = append(stack, tree[node]...)
	}

	retained := make(map[ObjID]uint64, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		var size uint64
		if obj := g.GetObject(node); obj != nil && node != SuperRoot {
			size = obj.Size
		}
		for _, child := range tree[node] {
			size += retained[child]
		}
		retained[node] = size
	}
	return retained
}
