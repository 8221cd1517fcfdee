// Package cmd provides the command-line interface for elevsim.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// NewRootCmd creates the elevsim command with all its subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "elevsim",
		Short: "elevsim simulates an elevator serving the nearest floor first.",
		Long: `elevsim simulates a single elevator. Requested floors are ` +
			`kept in a set and the elevator always travels to the nearest ` +
			`one. Trips can be traced into a SQLite database and reported ` +
			`afterwards.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newReportCmd())

	return rootCmd
}

// Execute runs the elevsim command and exits the process. The exit handlers
// run before the process exits.
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
