package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/specmonkey/internal/history"
)

// NewHistoryCommand creates the history subcommand group
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the crawl-run journal",
	}

	cmd.PersistentFlags().String("db", ".specmonkey/history.db", "Path to the journal database")

	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show recent index runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			limit, _ := cmd.Flags().GetInt("limit")

			store, err := history.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
				return nil
			}

			for _, run := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  files=%d links=%d domains=%d duration=%s\n",
					run.StartedAt.Format(time.RFC3339), run.Root,
					run.FilesScanned, run.LinksFound, run.Domains,
					run.Duration.Round(time.Millisecond))
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 10, "Maximum number of runs to show (0 = all)")
	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")

			store, err := history.NewStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.Clear()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run(s).\n", removed)
			return nil
		},
		SilenceUsage: true,
	}
}
