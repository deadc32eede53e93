// ABOUTME: version command
// ABOUTME: Prints the build version, commit and date

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prateek/gcarena"
)

var (
	commit = "none"
	date   = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "arenalens %s\n", gcarena.Version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built: %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
