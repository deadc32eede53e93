// ABOUTME: BFS over referrers to explain why an object is still retained
// ABOUTME: Finds up to K shortest paths from an object back to a root

package graph

// Path is a chain of IDs from an object to a root, both included.
type Path struct {
	IDs []ObjID
}

// Root returns the last element of the path.
func (p Path) Root() ObjID {
	return p.IDs[len(p.IDs)-1]
}

// PathsToRoots returns up to maxPaths paths from `from` to a root, shortest
// first. A path never visits the same object twice. An object that is itself
// a root yields the single one-element path.
func PathsToRoots(g Graph, from ObjID, maxPaths int) []Path {
	if maxPaths <= 0 || g.GetObject(from) == nil {
		return nil
	}

	rootSet := make(map[ObjID]bool)
	for _, id := range g.GetRoots().IDs {
		rootSet[id] = true
	}
	if rootSet[from] {
		return []Path{{IDs: []ObjID{from}}}
	}

	reverse := BuildReverseEdges(g)
	var result []Path
	queue := [][]ObjID{{from}}

	for len(queue) > 0 && len(result) < maxPaths {
		path := queue[0]
		queue = queue[1:]

		for _, referrer := range reverse[path[len(path)-1]] {
			if containsID(path, referrer) {
				continue
			}
			next := make([]ObjID, len(path)+1)
			copy(next, path)
			next[len(path)] = referrer

			if !rootSet[referrer] {
				queue = append(queue, next)
				continue
			}
			result = append(result, Path{IDs: next})
			if len(result) == maxPaths {
				break
			}
		}
	}
	return result
}
