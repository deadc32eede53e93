// ABOUTME: Queries over immediate dominators and the dominator tree
// ABOUTME: Depths, dominator chains and dominance tests

package graph

// DominatorDepth returns the depth of every node in tree; SuperRoot has
// depth 0 and roots depth 1.
func DominatorDepth(tree map[ObjID][]ObjID) map[ObjID]int {
	depth := map[ObjID]int{SuperRoot: 0}
	queue := []ObjID{SuperRoot}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, child := range tree[node] {
			depth[child] = depth[node] + 1
			queue = append(queue, child)
		}
	}
	return depth
}

// DominatorPath returns node followed by its chain of dominators, ending
// with SuperRoot.
func DominatorPath(idom map[ObjID]ObjID, node ObjID) []ObjID {
	path := []ObjID{node}
	for cur := node; cur != SuperRoot; {
		dom, ok := idom[cur]
		if !ok {
			dom = SuperRoot
		}
		path = append(path, dom)
		cur = dom
	}
	return path
}

// IsDominated reports whether every path from the roots to node passes
// through dominator. A node dominates itself.
func IsDominated(idom map[ObjID]ObjID, node, dominator ObjID) bool {
	if node == dominator {
		return true
	}
	if _, ok := idom[node]; !ok {
		return false
	}
	for cur := node; cur != SuperRoot; {
		cur = idom[cur]
		if cur == dominator {
			return true
		}
	}
	return false
}
