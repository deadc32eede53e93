// ABOUTME: retained command ranking allocations by the memory they keep alive
// ABOUTME: Uses the dominator tree of a snapshot

package main

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/prateek/gcarena/graph"
	"github.com/prateek/gcarena/heapdump"
)

var topN int

func init() {
	rootCmd.AddCommand(newRetainedCmd())
}

func newRetainedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retained <snapshot>",
		Short: "Rank allocations by retained size",
		Long: `The retained command computes the dominator tree of a snapshot and lists
the allocations that keep the most memory alive. Unrooting one of them (and
dropping every other path to what it dominates) frees its retained size.

Example:
  arenalens retained arena.json --top 20`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRetained(cmd.OutOrStdout(), args[0])
		},
	}
	cmd.Flags().IntVar(&topN, "top", 10, "Number of allocations to list")
	return cmd
}

type retainedEntry struct {
	ID       graph.ObjID `json:"id" yaml:"id"`
	Type     string      `json:"type" yaml:"type"`
	Size     uint64      `json:"size" yaml:"size"`
	Retained uint64      `json:"retained" yaml:"retained"`
	Depth    int         `json:"depth" yaml:"depth"`
}

func runRetained(w io.Writer, path string) error {
	g, err := heapdump.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	idom := graph.Dominators(g)
	depth := graph.DominatorDepth(graph.DominatorTree(idom))
	retained := graph.RetainedSize(g)

	entries := make([]retainedEntry, 0, len(retained))
	for id, size := range retained {
		obj := g.GetObject(id)
		entries = append(entries, retainedEntry{
			ID:       id,
			Type:     obj.Type,
			Size:     obj.Size,
			Retained: size,
			Depth:    depth[id],
		})
	}
	slices.SortFunc(entries, func(a, b retainedEntry) int {
		if c := cmp.Compare(b.Retained, a.Retained); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if topN >= 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	logger.Debug("computed retained sizes", "file", path, "reachable", len(retained))

	return render(w, entries, func(w io.Writer) error {
		fmt.Fprintf(w, "%-10s %-12s %-12s %-6s %s\n", "ID", "SIZE", "RETAINED", "DEPTH", "TYPE")
		for _, e := range entries {
			fmt.Fprintf(w, "%-10d %-12d %-12d %-6d %s\n", e.ID, e.Size, e.Retained, e.Depth, e.Type)
		}
		return nil
	})
}
