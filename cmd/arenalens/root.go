// ABOUTME: Root command, global flags and output helpers for arenalens
// ABOUTME: Every subcommand renders through the same text/json/yaml switch

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/prateek/gcarena"
)

var (
	// Global flags
	verbose bool
	format  string

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "arenalens",
	Short: "Inspect garbage-collected arena snapshots",
	Long: `arenalens analyzes snapshots taken from a gcarena arena. It reports
reachability, explains why an allocation is retained, and ranks allocations
by the memory they keep alive.`,
	Version:       gcarena.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch format {
		case "text", "json", "yaml":
		default:
			return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
		}
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// render writes v in the selected format, using text for the text format.
func render(w io.Writer, v any, text func(io.Writer) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}
