// ABOUTME: Core data types for arena object graphs
// ABOUTME: Defines Object, ObjID and Roots as captured by a snapshot

package graph

// ObjID identifies an object in a graph. Arena snapshots use allocation ids,
// which start at 1; 0 is reserved for the synthetic super-root that points
// at every root.
type ObjID uint64

// SuperRoot is the synthetic vertex above all roots.
const SuperRoot ObjID = 0

// Object is one node of the graph.
type Object struct {
	ID   ObjID   // allocation id
	Type string  // dynamic type of the stored value, e.g. "*main.Node"
	Size uint64  // logical size in bytes
	Ptrs []ObjID // children reported by the value's Trace, in order
}

// Roots is the set of objects treated as always reachable.
type Roots struct {
	IDs []ObjID
}
