// Package cli defines the dashboard command line.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd builds the dashboard command tree. Running it without a
// subcommand starts the server.
func NewRootCmd() *cobra.Command {
	serveCmd := newServeCmd()

	rootCmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Serve the AI-driven DevSecOps dashboard",
		Long:         "Serves the pre-built dashboard, exposes the AI analysis JSON and opens it in the default browser.",
		SilenceUsage: true,
		RunE:         serveCmd.RunE,
	}
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newCheckCmd())
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
