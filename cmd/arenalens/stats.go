// ABOUTME: stats command summarizing snapshots
// ABOUTME: Loads several files concurrently and reports reachability and sizes

package main

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/prateek/gcarena/graph"
	"github.com/prateek/gcarena/heapdump"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <snapshot>...",
		Short: "Summarize one or more snapshots",
		Long: `The stats command loads each snapshot and reports its object and root
counts, how many objects the next collection would reclaim, and sizes.

Example:
  arenalens stats before.json after.json.zst
  arenalens stats arena.json --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.OutOrStdout(), args)
		},
	}
}

type snapshotStats struct {
	File        string `json:"file" yaml:"file"`
	Objects     int    `json:"objects" yaml:"objects"`
	Roots       int    `json:"roots" yaml:"roots"`
	Reachable   int    `json:"reachable" yaml:"reachable"`
	Unreachable int    `json:"unreachable" yaml:"unreachable"`
	TotalSize   uint64 `json:"total_size" yaml:"total_size"`
	LiveSize    uint64 `json:"live_size" yaml:"live_size"`
}

// loadSnapshots opens every path concurrently. Results keep the order of paths.
func loadSnapshots(paths []string) ([]graph.Graph, error) {
	graphs := make([]graph.Graph, len(paths))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			gr, err := heapdump.OpenFile(path)
			if err != nil {
				return err
			}
			logger.Debug("loaded snapshot", "file", path, "objects", gr.NumObjects())
			graphs[i] = gr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return graphs, nil
}

func summarize(file string, g graph.Graph) snapshotStats {
	reachable := graph.Reachable(g)
	s := snapshotStats{
		File:      file,
		Objects:   g.NumObjects(),
		Roots:     len(g.GetRoots().IDs),
		Reachable: len(reachable),
		TotalSize: graph.TotalSize(g),
	}
	s.Unreachable = s.Objects - s.Reachable
	g.ForEachObject(func(obj *graph.Object) {
		if reachable[obj.ID] {
			s.LiveSize += obj.Size
		}
	})
	return s
}

func runStats(w io.Writer, paths []string) error {
	graphs, err := loadSnapshots(paths)
	if err != nil {
		return fmt.Errorf("failed to load snapshots: %w", err)
	}

	results := make([]snapshotStats, len(graphs))
	for i, g := range graphs {
		results[i] = summarize(paths[i], g)
	}

	return render(w, results, func(w io.Writer) error {
		for _, s := range results {
			fmt.Fprintf(w, "%s\n", s.File)
			fmt.Fprintf(w, "  objects:     %d\n", s.Objects)
			fmt.Fprintf(w, "  roots:       %d\n", s.Roots)
			fmt.Fprintf(w, "  reachable:   %d\n", s.Reachable)
			fmt.Fprintf(w, "  unreachable: %d\n", s.Unreachable)
			fmt.Fprintf(w, "  total size:  %d bytes\n", s.TotalSize)
			fmt.Fprintf(w, "  live size:   %d bytes\n", s.LiveSize)
		}
		return nil
	})
}
