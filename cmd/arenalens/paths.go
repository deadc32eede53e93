// ABOUTME: paths command explaining why an allocation is retained
// ABOUTME: Prints the shortest reference chains back to a root

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prateek/gcarena/graph"
	"github.com/prateek/gcarena/heapdump"
)

var maxPaths int

func init() {
	rootCmd.AddCommand(newPathsCmd())
}

func newPathsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paths <snapshot> <id>",
		Short: "Show why an allocation is still reachable",
		Long: `The paths command lists the shortest reference chains from an allocation
back to a root. An allocation with no paths would be reclaimed by the next
collection.

Example:
  arenalens paths arena.json 42
  arenalens paths arena.json 42 --max 10`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPaths(cmd.OutOrStdout(), args)
		},
	}
	cmd.Flags().IntVar(&maxPaths, "max", 5, "Maximum number of paths to show")
	return cmd
}

type pathsResult struct {
	ID    graph.ObjID     `json:"id" yaml:"id"`
	Type  string          `json:"type" yaml:"type"`
	Paths [][]graph.ObjID `json:"paths" yaml:"paths"`
}

func runPaths(w io.Writer, args []string) error {
	id, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid allocation id %q: %w", args[1], err)
	}

	g, err := heapdump.OpenFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	obj := g.GetObject(graph.ObjID(id))
	if obj == nil {
		return fmt.Errorf("allocation %d not found in %s", id, args[0])
	}

	res := pathsResult{ID: obj.ID, Type: obj.Type, Paths: [][]graph.ObjID{}}
	for _, p := range graph.PathsToRoots(g, obj.ID, maxPaths) {
		res.Paths = append(res.Paths, p.IDs)
	}

	return render(w, res, func(w io.Writer) error {
		fmt.Fprintf(w, "%d (%s)\n", res.ID, res.Type)
		if len(res.Paths) == 0 {
			fmt.Fprintln(w, "  unreachable")
			return nil
		}
		for _, p := range res.Paths {
			ids := make([]string, len(p))
			for i, id := range p {
				ids[i] = strconv.FormatUint(uint64(id), 10)
			}
			fmt.Fprintf(w, "  %s (root)\n", strings.Join(ids, " <- "))
		}
		return nil
	})
}
