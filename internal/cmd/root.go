// Package cmd wires the specmonkey CLI together.
package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for specmonkey
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "specmonkey",
		Short: "Index spec references in repositories",
		Long: `Specmonkey scans a repository for URLs pointing at specification
documents, filters them against a whitelist of domains, and writes a
per-domain, per-fragment JSON index for cross-reference tooling.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewIndexCommand())
	cmd.AddCommand(NewListCommand())
	cmd.AddCommand(NewCreateConfigCommand())
	cmd.AddCommand(NewReportCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
