// ABOUTME: JSON snapshot format: objects with id, type, size and ptrs, plus roots
// ABOUTME: Provides the reader used directly and by the compressed formats

package heapdump

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/prateek/gcarena/graph"
)

// JSONParser reads plain JSON snapshots.
type JSONParser struct{}

type jsonDump struct {
	Objects []jsonObject  `json:"objects"`
	Roots   []graph.ObjID `json:"roots"`
}

type jsonObject struct {
	ID   graph.ObjID   `json:"id"`
	Type string        `json:"type"`
	Size uint64        `json:"size"`
	Ptrs []graph.ObjID `json:"ptrs"`
}

func (p *JSONParser) Name() string { return "json" }

// CanParse walks the top-level keys of the preview looking for "objects".
// A preview truncated inside a value before that key is rejected.
func (p *JSONParser) CanParse(r io.Reader) bool {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return false
	}
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return false
		}
		if key == "objects" {
			return true
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return false
		}
	}
	return false
}

func (p *JSONParser) Parse(r io.Reader) (graph.Graph, error) {
	var dump jsonDump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	if dump.Objects == nil {
		return nil, errors.New("missing objects")
	}

	g := graph.NewMemGraph()
	for i, obj := range dump.Objects {
		if obj.ID == graph.SuperRoot {
			return nil, fmt.Errorf("object at index %d missing ID", i)
		}
		ptrs := obj.Ptrs
		if ptrs == nil {
			ptrs = []graph.ObjID{}
		}
		g.AddObject(&graph.Object{ID: obj.ID, Type: obj.Type, Size: obj.Size, Ptrs: ptrs})
	}

	roots := dump.Roots
	if roots == nil {
		roots = []graph.ObjID{}
	}
	g.SetRoots(graph.Roots{IDs: roots})
	return g, nil
}

// WriteJSON encodes g as a JSON snapshot, objects in ascending ID order.
func WriteJSON(w io.Writer, g graph.Graph) error {
	dump := jsonDump{
		Objects: make([]jsonObject, 0, g.NumObjects()),
		Roots:   g.GetRoots().IDs,
	}
	if dump.Roots == nil {
		dump.Roots = []graph.ObjID{}
	}
	g.ForEachObject(func(obj *graph.Object) {
		ptrs := obj.Ptrs
		if ptrs == nil {
			ptrs = []graph.ObjID{}
		}
		dump.Objects = append(dump.Objects, jsonObject{ID: obj.ID, Type: obj.Type, Size: obj.Size, Ptrs: ptrs})
	})
	if err := json.NewEncoder(w).Encode(&dump); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
