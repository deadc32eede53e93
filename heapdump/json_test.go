// ABOUTME: Tests for the JSON snapshot parser and writer
// ABOUTME: Validates parsing, format sniffing, and error handling

package heapdump

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek/gcarena/graph"
)

func TestJSONParse(t *testing.T) {
	jsonData := `{
		"objects": [
			{"id": 1, "type": "root", "size": 100, "ptrs": [2]},
			{"id": 2, "type": "child", "size": 50, "ptrs": []}
		],
		"roots": [1]
	}`

	g, err := (&JSONParser{}).Parse(strings.NewReader(jsonData))
	require.NoError(t, err)
	assert.Equal(t, 2, g.NumObjects())

	obj1 := g.GetObject(1)
	require.NotNil(t, obj1)
	assert.Equal(t, "root", obj1.Type)
	assert.Equal(t, uint64(100), obj1.Size)
	assert.Equal(t, []graph.ObjID{2}, obj1.Ptrs)
	assert.Equal(t, []graph.ObjID{1}, g.GetRoots().IDs)
}

func TestJSONParseDefaults(t *testing.T) {
	g, err := (&JSONParser{}).Parse(strings.NewReader(`{"objects": [{"id": 7}]}`))
	require.NoError(t, err)

	obj := g.GetObject(7)
	require.NotNil(t, obj)
	assert.NotNil(t, obj.Ptrs)
	assert.Empty(t, obj.Ptrs)
	assert.NotNil(t, g.GetRoots().IDs)
	assert.Empty(t, g.GetRoots().IDs)
}

func TestJSONCanParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{name: "valid JSON object", content: `{"objects": [], "roots": []}`, want: true},
		{name: "JSON with objects key", content: `{"objects": [{"id": 1}]}`, want: true},
		{name: "objects after roots", content: `{"roots": [1, 2], "objects": []}`, want: true},
		{name: "truncated after objects key", content: `{"objects": [{"id": 1}, {"id"`, want: true},
		{name: "non-JSON", content: `not json at all`, want: false},
		{name: "JSON without objects key", content: `{"data": []}`, want: false},
		{name: "JSON array", content: `[1, 2, 3]`, want: false},
		{name: "empty", content: ``, want: false},
	}

	parser := &JSONParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.CanParse(strings.NewReader(tt.content)))
		})
	}
}

func TestMalformedJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid JSON syntax", content: `{"objects": [}`},
		{name: "missing id", content: `{"objects": [{"type": "test"}]}`},
		{name: "wrong type for objects", content: `{"objects": "not an array", "roots": []}`},
		{name: "missing objects", content: `{"roots": [1]}`},
	}

	parser := &JSONParser{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse(strings.NewReader(tt.content))
			assert.Error(t, err)
		})
	}
}

func TestJSONWithComplexGraph(t *testing.T) {
	// cycles and multiple roots
	jsonData := `{
		"objects": [
			{"id": 1, "type": "root1", "size": 10, "ptrs": [2, 3]},
			{"id": 2, "type": "node", "size": 20, "ptrs": [3]},
			{"id": 3, "type": "node", "size": 30, "ptrs": [1]},
			{"id": 4, "type": "root2", "size": 40, "ptrs": [2]}
		],
		"roots": [1, 4]
	}`

	g, err := (&JSONParser{}).Parse(strings.NewReader(jsonData))
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumObjects())
	assert.Len(t, g.GetRoots().IDs, 2)
	assert.Empty(t, graph.Unreachable(g))
}

func TestWriteJSON(t *testing.T) {
	g := graph.NewMemGraph()
	g.AddObject(&graph.Object{ID: 3, Type: "c", Size: 3})
	g.AddObject(&graph.Object{ID: 1, Type: "a", Size: 1, Ptrs: []graph.ObjID{3}})

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, g))
	assert.JSONEq(t, `{
		"objects": [
			{"id": 1, "type": "a", "size": 1, "ptrs": [3]},
			{"id": 3, "type": "c", "size": 3, "ptrs": []}
		],
		"roots": []
	}`, buf.String())
}
