// ABOUTME: Tests for dominator tree queries
// ABOUTME: Depth, dominator chains and dominance checks

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDominatorQueries(t *testing.T) {
	// 1 (root) -> 2 -> 3 -> 4, plus 1 -> 4 making 1 the idom of 4.
	g := buildGraph([]ObjID{1},
		&Object{ID: 1, Ptrs: []ObjID{2, 4}},
		&Object{ID: 2, Ptrs: []ObjID{3}},
		&Object{ID: 3, Ptrs: []ObjID{4}},
		&Object{ID: 4},
	)
	idom := Dominators(g)
	tree := DominatorTree(idom)

	assert.Equal(t, map[ObjID]int{0: 0, 1: 1, 2: 2, 3: 3, 4: 2}, DominatorDepth(tree))

	assert.Equal(t, []ObjID{3, 2, 1, 0}, DominatorPath(idom, 3))
	assert.Equal(t, []ObjID{4, 1, 0}, DominatorPath(idom, 4))
	assert.Equal(t, []ObjID{0}, DominatorPath(idom, SuperRoot))
	assert.Equal(t, []ObjID{77, 0}, DominatorPath(idom, 77))

	assert.True(t, IsDominated(idom, 3, 2))
	assert.True(t, IsDominated(idom, 3, 1))
	assert.True(t, IsDominated(idom, 3, SuperRoot))
	assert.True(t, IsDominated(idom, 4, 4))
	assert.False(t, IsDominated(idom, 4, 2))
	assert.False(t, IsDominated(idom, 2, 3))
	assert.False(t, IsDominated(idom, 77, 1))
}
