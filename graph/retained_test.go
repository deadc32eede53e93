// ABOUTME: Tests for retained size calculation over dominator trees
// ABOUTME: Retained size is what a collection frees once an object becomes unreachable

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetainedSize(t *testing.T) {
	tests := []struct {
		name string
		g    Graph
		want map[ObjID]uint64
	}{
		{
			name: "linear chain",
			g: buildGraph([]ObjID{1},
				&Object{ID: 1, Size: 100, Ptrs: []ObjID{2}},
				&Object{ID: 2, Size: 50, Ptrs: []ObjID{3}},
				&Object{ID: 3, Size: 25},
			),
			want: map[ObjID]uint64{1: 175, 2: 75, 3: 25},
		},
		{
			name: "diamond",
			g: buildGraph([]ObjID{1},
				&Object{ID: 1, Size: 100, Ptrs: []ObjID{2, 3}},
				&Object{ID: 2, Size: 30, Ptrs: []ObjID{4}},
				&Object{ID: 3, Size: 40, Ptrs: []ObjID{4}},
				&Object{ID: 4, Size: 20},
			),
			want: map[ObjID]uint64{1: 190, 2: 30, 3: 40, 4: 20},
		},
		{
			name: "tree",
			g: buildGraph([]ObjID{1},
				&Object{ID: 1, Size: 100, Ptrs: []ObjID{2, 3}},
				&Object{ID: 2, Size: 30, Ptrs: []ObjID{4}},
				&Object{ID: 3, Size: 40, Ptrs: []ObjID{5}},
				&Object{ID: 4, Size: 15},
				&Object{ID: 5, Size: 25},
			),
			want: map[ObjID]uint64{1: 210, 2: 45, 3: 65, 4: 15, 5: 25},
		},
		{
			name: "shared by two roots",
			g: buildGraph([]ObjID{1, 2},
				&Object{ID: 1, Size: 100, Ptrs: []ObjID{3}},
				&Object{ID: 2, Size: 200, Ptrs: []ObjID{3}},
				&Object{ID: 3, Size: 50},
			),
			want: map[ObjID]uint64{1: 100, 2: 200, 3: 50},
		},
		{
			name: "unreachable objects are excluded",
			g: buildGraph([]ObjID{1},
				&Object{ID: 1, Size: 100, Ptrs: []ObjID{2}},
				&Object{ID: 2, Size: 50},
				&Object{ID: 3, Size: 75},
			),
			want: map[ObjID]uint64{1: 150, 2: 50},
		},
		{
			name: "cycle below root",
			g: buildGraph([]ObjID{1},
				&Object{ID: 1, Size: 10, Ptrs: []ObjID{2}},
				&Object{ID: 2, Size: 20, Ptrs: []ObjID{3}},
				&Object{ID: 3, Size: 30, Ptrs: []ObjID{2}},
			),
			want: map[ObjID]uint64{1: 60, 2: 50, 3: 30},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RetainedSize(tt.g))
		})
	}
}

func TestRetainedSizeConsistentWithDominators(t *testing.T) {
	g := buildGraph([]ObjID{1},
		&Object{ID: 1, Size: 100, Ptrs: []ObjID{2, 3}},
		&Object{ID: 2, Size: 30, Ptrs: []ObjID{4}},
		&Object{ID: 3, Size: 40, Ptrs: []ObjID{4, 5}},
		&Object{ID: 4, Size: 20},
		&Object{ID: 5, Size: 15},
	)
	dom := Dominators(g)
	retained := RetainedSize(g)

	for node, dominator := range dom {
		if dominator == SuperRoot {
			continue
		}
		assert.GreaterOrEqual(t, retained[dominator], retained[node],
			"dominator %d retains less than %d", dominator, node)
	}
	g.ForEachObject(func(obj *Object) {
		assert.GreaterOrEqual(t, retained[obj.ID], obj.Size, "object %d", obj.ID)
	})
}

func TestRetainedSizeSubsets(t *testing.T) {
	g := buildGraph([]ObjID{1},
		&Object{ID: 1, Size: 100, Ptrs: []ObjID{2, 3}},
		&Object{ID: 2, Size: 30, Ptrs: []ObjID{4}},
		&Object{ID: 3, Size: 40},
		&Object{ID: 4, Size: 20},
	)

	tests := []struct {
		name string
		ids  []ObjID
		want map[ObjID]uint64
	}{
		{name: "single", ids: []ObjID{2}, want: map[ObjID]uint64{2: 50}},
		{name: "several", ids: []ObjID{2, 3}, want: map[ObjID]uint64{2: 50, 3: 40}},
		{name: "unknown", ids: []ObjID{999}, want: map[ObjID]uint64{}},
		{name: "super-root", ids: []ObjID{SuperRoot}, want: map[ObjID]uint64{}},
		{name: "none", ids: nil, want: map[ObjID]uint64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RetainedSizeSubsets(g, tt.ids))
		})
	}
}

func TestRetainedSizeDeepChain(t *testing.T) {
	const n = 50_000
	g := NewMemGraph()
	for i := 1; i <= n; i++ {
		obj := &Object{ID: ObjID(i), Size: 1}
		if i < n {
			obj.Ptrs = []ObjID{ObjID(i + 1)}
		}
		g.AddObject(obj)
	}
	g.SetRoots(Roots{IDs: []ObjID{1}})

	retained := RetainedSize(g)
	require.Len(t, retained, n)
	assert.Equal(t, uint64(n), retained[1])
	assert.Equal(t, uint64(1), retained[n])
}
