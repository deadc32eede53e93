// ABOUTME: Parser interface for arena snapshot formats
// ABOUTME: Defines the contract for pluggable snapshot decoders

package heapdump

import (
	"io"

	"github.com/prateek/gcarena/graph"
)

// Parser decodes one snapshot format into a graph.
type Parser interface {
	// Name identifies the format, e.g. "json" or "zstd".
	Name() string

	// CanParse inspects a preview of the stream. It must not assume the
	// preview holds the whole snapshot.
	CanParse(r io.Reader) bool

	// Parse decodes the full snapshot from the start of r.
	Parse(r io.Reader) (graph.Graph, error)
}
