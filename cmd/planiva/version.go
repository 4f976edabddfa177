package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information set via -ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "planiva %s (commit: %s, built: %s)\n", Version, Commit, Date)
		},
	}
}
