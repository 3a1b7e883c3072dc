package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/specmonkey/internal/config"
)

// NewCreateConfigCommand creates the create-config subcommand
func NewCreateConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create-config <file>",
		Short: "Write a default configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteDefault(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", args[0])
			return nil
		},
		SilenceUsage: true,
	}
}
