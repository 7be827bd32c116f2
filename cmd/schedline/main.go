// Package main provides the entry point for the schedline CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/schedline/cmd/schedline/commands"
	"github.com/Sumatoshi-tech/schedline/pkg/version"
)

func main() {
	version.Init()

	err := newRootCommand().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schedline",
		Short: "Scheduler event log timeline reconstruction",
		Long: `schedline turns scheduler event logs into per-entity run timelines.

Commands:
  timeline  Reconstruct run intervals, summarize and chart them
  validate  Check a JSON report against the report schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewTimelineCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "schedline %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
