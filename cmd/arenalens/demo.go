// ABOUTME: demo command building and collecting a sample arena
// ABOUTME: Writes a snapshot of the survivors in any supported compression

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/prateek/gcarena/arena"
	"github.com/prateek/gcarena/heapdump"
)

var (
	demoOut      string
	demoCompress string
	demoNodes    int
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build a sample arena, collect it and write a snapshot",
		Long: `The demo command fills an arena with a rooted tree whose children point
back at their parents, plus an unrooted ring of garbage. It runs one
collection and writes a snapshot of the survivors.

Example:
  arenalens demo --out arena.json
  arenalens demo --nodes 10000 --compress zstd --out arena.json.zst`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&demoOut, "out", "o", "arena.json", "Snapshot output file")
	cmd.Flags().StringVar(&demoCompress, "compress", "none", "Snapshot compression: none, zstd or lz4")
	cmd.Flags().IntVar(&demoNodes, "nodes", 1000, "Number of tree nodes")
	return cmd
}

// demoNode is a tree node with a payload and an optional parent link.
type demoNode struct {
	payload  []byte
	parent   arena.Handle[*demoNode]
	children []arena.Handle[*demoNode]
}

func (n *demoNode) Trace(v *arena.Visitor) {
	v.Visit(n.parent)
	for _, c := range n.children {
		v.Visit(c)
	}
}

func (n *demoNode) Size() uint64 {
	return uint64(len(n.payload)) + 48
}

type demoResult struct {
	File       string           `json:"file" yaml:"file"`
	Collection arena.Collection `json:"collection" yaml:"collection"`
	Live       int              `json:"live" yaml:"live"`
	Roots      int              `json:"roots" yaml:"roots"`
	Format     string           `json:"format" yaml:"format"`
}

// buildDemo fills a with a binary tree of n nodes rooted at the first one,
// and a ring of n/4 unreachable nodes.
func buildDemo(a *arena.Arena, n int) {
	if n <= 0 {
		return
	}
	nodes := make([]arena.Handle[*demoNode], n)
	nodes[0] = arena.AllocateRooted(a, &demoNode{payload: make([]byte, 64)})
	for i := 1; i < n; i++ {
		parent := nodes[(i-1)/2]
		nodes[i] = arena.Allocate(a, &demoNode{payload: make([]byte, 16*(i%8+1)), parent: parent})
		p := parent.Get()
		p.children = append(p.children, nodes[i])
	}

	ring := n / 4
	if ring == 0 {
		return
	}
	first := arena.Allocate(a, &demoNode{})
	prev := first
	for i := 1; i < ring; i++ {
		h := arena.Allocate(a, &demoNode{parent: prev})
		prev = h
	}
	first.Get().parent = prev
}

func runDemo(w io.Writer) error {
	comp, err := heapdump.ParseCompression(demoCompress)
	if err != nil {
		return err
	}

	a := arena.New(arena.WithLogger(logger), arena.WithInitialCapacity(demoNodes+demoNodes/4))
	buildDemo(a, demoNodes)
	col := a.Collect()

	if err := heapdump.WriteFile(demoOut, a.Snapshot(), comp); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	logger.Debug("wrote snapshot", "file", demoOut, "compression", comp)

	res := demoResult{
		File:       demoOut,
		Collection: col,
		Live:       a.Len(),
		Roots:      a.NumRoots(),
		Format:     comp.String(),
	}
	return render(w, res, func(w io.Writer) error {
		fmt.Fprintf(w, "collected %d of %d allocations\n", col.Collected, col.Total)
		fmt.Fprintf(w, "wrote %d live allocations (%d roots) to %s [%s]\n", res.Live, res.Roots, res.File, res.Format)
		return nil
	})
}
