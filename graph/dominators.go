// ABOUTME: Lengauer-Tarjan immediate dominators over the object graph
// ABOUTME: A synthetic super-root (ID 0) points at every root

package graph

// Dominators computes the immediate dominator of every object reachable from
// the roots. Roots, and objects reachable from more than one root, are
// dominated by SuperRoot. Unreachable objects are absent from the result.
//
// This is the simple Lengauer-Tarjan variant with path compression, running
// in O(E log V).
func Dominators(g Graph) map[ObjID]ObjID {
	d := newDomState(g)
	d.number()
	d.solve()

	idom := make(map[ObjID]ObjID, len(d.vertex)-1)
	for i := 1; i < len(d.vertex); i++ {
		idom[d.vertex[i]] = d.vertex[d.idom[i]]
	}
	return idom
}

// domState works on DFS numbers; index 0 is always the super-root.
type domState struct {
	g     Graph
	succ  map[ObjID][]ObjID
	preds ReverseEdges

	vertex   []ObjID       // dfnum -> id
	dfnum    map[ObjID]int // id -> dfnum
	parent   []int
	semi     []int
	idom     []int
	ancestor []int
	best     []int
	samedom  []int
	bucket   [][]int
}

func newDomState(g Graph) *domState {
	d := &domState{
		g:     g,
		succ:  make(map[ObjID][]ObjID),
		preds: BuildReverseEdges(g),
		dfnum: make(map[ObjID]int),
	}
	roots := g.GetRoots().IDs
	d.succ[SuperRoot] = roots
	for _, id := range roots {
		if !containsID(d.preds[id], SuperRoot) {
			d.preds[id] = append(d.preds[id], SuperRoot)
		}
	}
	g.ForEachObject(func(obj *Object) {
		d.succ[obj.ID] = obj.Ptrs
	})
	return d
}

// number assigns DFS numbers from the super-root with an explicit stack.
func (d *domState) number() {
	type frame struct {
		id   ObjID
		next int
	}
	d.visit(SuperRoot, -1)
	stack := []frame{{id: SuperRoot}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		children := d.succ[top.id]
		if top.next == len(children) {
			stack = stack[:len(stack)-1]
			continue
		}
		w := children[top.next]
		top.next++
		if _, seen := d.dfnum[w]; seen || d.g.GetObject(w) == nil {
			continue
		}
		d.visit(w, d.dfnum[top.id])
		stack = append(stack, frame{id: w})
	}
}

func (d *domState) visit(id ObjID, parent int) {
	n := len(d.vertex)
	d.dfnum[id] = n
	d.vertex = append(d.vertex, id)
	d.parent = append(d.parent, parent)
	d.semi = append(d.semi, n)
	d.idom = append(d.idom, 0)
	d.ancestor = append(d.ancestor, -1)
	d.best = append(d.best, n)
	d.samedom = append(d.samedom, -1)
	d.bucket = append(d.bucket, nil)
}

func (d *domState) solve() {
	for w := len(d.vertex) - 1; w > 0; w-- {
		p := d.parent[w]
		s := p
		for _, pred := range d.preds[d.vertex[w]] {
			v, reached := d.dfnum[pred]
			if !reached {
				continue
			}
			var candidate int
			if v <= w {
				candidate = v
			} else {
				candidate = d.semi[d.eval(v)]
			}
			if candidate < s {
				s = candidate
			}
		}
		d.semi[w] = s
		d.bucket[s] = append(d.bucket[s], w)
		d.ancestor[w] = p

		for _, v := range d.bucket[p] {
			y := d.eval(v)
			if d.semi[y] == d.semi[v] {
				d.idom[v] = p
			} else {
				d.samedom[v] = y
			}
		}
		d.bucket[p] = nil
	}

	for w := 1; w < len(d.vertex); w++ {
		if d.samedom[w] != -1 {
			d.idom[w] = d.idom[d.samedom[w]]
		}
	}
}

// eval returns the vertex with the lowest semidominator on the forest path
// above v, compressing the path as it goes.
func (d *domState) eval(v int) int {
	a := d.ancestor[v]
	if a == -1 {
		return v
	}
	if d.ancestor[a] != -1 {
		b := d.eval(a)
		d.ancestor[v] = d.ancestor[a]
		if d.semi[b] < d.semi[d.best[v]] {
			d.best[v] = b
		}
	}
	return d.best[v]
}

// DominatorTree inverts idom into parent -> children lists. Every node,
// including SuperRoot, has an entry.
func DominatorTree(idom map[ObjID]ObjID) map[ObjID][]ObjID {
	tree := map[ObjID][]ObjID{SuperRoot: {}}
	for node := range idom {
		if _, ok := tree[node]; !ok {
			tree[node] = []ObjID{}
		}
	}
	for node, dom := range idom {
		tree[dom] = append(tree[dom], node)
	}
	return tree
}
