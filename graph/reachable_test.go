// ABOUTME: Tests for root reachability over object graphs
// ABOUTME: Mirrors the retention rules of the arena's mark phase

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReachable(t *testing.T) {
	tests := []struct {
		name      string
		objects   []*Object
		roots     []ObjID
		reachable []ObjID
		garbage   []ObjID
	}{
		{
			name: "container keeps child, sibling is garbage",
			objects: []*Object{
				{ID: 1, Ptrs: []ObjID{2}},
				{ID: 2},
				{ID: 3},
			},
			roots:     []ObjID{1},
			reachable: []ObjID{1, 2},
			garbage:   []ObjID{3},
		},
		{
			name: "unrooted cycle is garbage",
			objects: []*Object{
				{ID: 1, Ptrs: []ObjID{2}},
				{ID: 2, Ptrs: []ObjID{1}},
				{ID: 3, Ptrs: []ObjID{3}},
			},
			garbage: []ObjID{1, 2, 3},
		},
		{
			name: "rooted cycle survives",
			objects: []*Object{
				{ID: 1, Ptrs: []ObjID{2}},
				{ID: 2, Ptrs: []ObjID{1}},
			},
			roots:     []ObjID{2},
			reachable: []ObjID{1, 2},
		},
		{
			name: "dangling edges and unknown roots are ignored",
			objects: []*Object{
				{ID: 1, Ptrs: []ObjID{99}},
				{ID: 2},
			},
			roots:     []ObjID{1, 50},
			reachable: []ObjID{1},
			garbage:   []ObjID{2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewMemGraph()
			for _, obj := range tt.objects {
				g.AddObject(obj)
			}
			g.SetRoots(Roots{IDs: tt.roots})

			marked := Reachable(g)
			assert.Len(t, marked, len(tt.reachable))
			for _, id := range tt.reachable {
				assert.True(t, marked[id], "object %d should be reachable", id)
			}
			assert.Equal(t, tt.garbage, Unreachable(g))
		})
	}
}
