package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/harrison/specmonkey/internal/index"
)

// NewReportCommand creates the report subcommand
func NewReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report <index-dir> <output.html>",
		Short: "Render an HTML summary of a written index",
		Long: `Load the per-domain JSON files from INDEX-DIR and render a standalone
HTML report listing every domain, fragment bucket, and link location.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := index.ReadJSON(args[0])
			if err != nil {
				return err
			}
			html, err := index.RenderHTML(idx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[1], html, 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote report to %s\n", args[1])
			return nil
		},
		SilenceUsage: true,
	}
}
