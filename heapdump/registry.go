// ABOUTME: Registry of snapshot parsers
// ABOUTME: Sniffs the leading bytes of a stream and dispatches to the first matching parser

package heapdump

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/prateek/gcarena/graph"
)

// sniffSize is how much of a stream parsers get to inspect.
const sniffSize = 4096

var (
	// ErrNoParser is returned when no registered parser accepts the stream.
	ErrNoParser = errors.New("no parser found for snapshot format")
)

type parserRegistry struct {
	mu      sync.RWMutex
	parsers []Parser
}

var registry = &parserRegistry{}

func init() {
	Register(&JSONParser{})
	Register(&ZSTDParser{})
	Register(&LZ4Parser{})
}

// Register adds a parser. Parsers are tried in registration order.
func Register(p Parser) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.parsers = append(registry.parsers, p)
}

// Formats returns the names of the registered parsers in order.
func Formats() []string {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	names := make([]string, 0, len(registry.parsers))
	for _, p := range registry.parsers {
		names = append(names, p.Name())
	}
	return names
}

// Open decodes a snapshot in any registered format.
func Open(r io.Reader) (graph.Graph, error) {
	br := bufio.NewReaderSize(r, sniffSize)
	head, err := br.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}

	registry.mu.RLock()
	defer registry.mu.RUnlock()
	for _, p := range registry.parsers {
		if !p.CanParse(bytes.NewReader(head)) {
			continue
		}
		g, err := p.Parse(br)
		if err != nil {
			return nil, fmt.Errorf("%s snapshot: %w", p.Name(), err)
		}
		return g, nil
	}
	return nil, ErrNoParser
}

// OpenFile decodes the snapshot stored at path.
func OpenFile(path string) (graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	g, err := Open(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}
