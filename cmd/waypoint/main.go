// Command waypoint serves the entries API from a routes manifest.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "waypoint",
		Short: "Serve a reflective route table over HTTP",
		Long: `Waypoint dispatches HTTP requests to Go handlers through a pattern
route table. Routes are read from a YAML manifest and bound to the
registered entries handlers.

Configuration is read from the environment (WAYPOINT_*, DATABASE_*, SENTRY_*).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		migrateCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "waypoint %s (%s)\n", version, commit)
		},
	}
}
