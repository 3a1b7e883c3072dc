package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/specmonkey/internal/crawler"
	"github.com/harrison/specmonkey/internal/export"
	"github.com/harrison/specmonkey/internal/fileutil"
	"github.com/harrison/specmonkey/internal/logger"
)

// defaultListExtensions mirrors the extensions the quick-scan workflow has
// always defaulted to.
var defaultListExtensions = []string{".cpp", ".h", ".rs", ".js", ".html"}

// NewListCommand creates the list subcommand
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <directory> [output-file]",
		Short: "Scan a directory and write a flat listing of every URL found",
		Long: `Scan DIRECTORY for source files, extract every URL, and write the flat
file:line:url listing to OUTPUT-FILE (default: output.txt).

No domain whitelist is applied; every URL with a resolvable host is listed.

Examples:
  specmonkey list ./src
  specmonkey list ./src links.csv --format csv
  specmonkey list ./src links.xlsx --format xlsx -e .ts -e .tsx`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := "output.txt"
			if len(args) == 2 {
				output = args[1]
			}
			format, _ := cmd.Flags().GetString("format")
			extensions, _ := cmd.Flags().GetStringSlice("extensions")
			verbose, _ := cmd.Flags().GetBool("verbose")
			return runList(args[0], output, format, extensions, verbose)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("format", "f", export.FormatTxt,
		fmt.Sprintf("Output format (%s)", strings.Join(export.Formats(), ", ")))
	cmd.Flags().StringSliceP("extensions", "e", defaultListExtensions,
		"File extensions to include")
	cmd.Flags().Bool("verbose", false, "Enables verbose mode")

	return cmd
}

func runList(directory, output, format string, extensions []string, verbose bool) error {
	level := "info"
	if verbose {
		level = "debug"
	}
	log := logger.NewConsoleLogger(os.Stdout, level)

	log.LogInfo("scanning directory: %s", directory)
	start := time.Now()

	scan, err := fileutil.ScanDirectory(directory, fileutil.ScanOptions{
		Extensions: extensions,
	})
	if err != nil {
		return err
	}
	if len(scan.Files) == 0 {
		log.LogInfo("no files found with the configured extensions")
		return nil
	}
	log.LogInfo("found %d file(s) to process", len(scan.Files))
	if verbose {
		for _, file := range scan.Files {
			log.LogDebug("found file: %s", file)
		}
	}

	links := crawler.FindURLs(scan.Files, directory, nil, crawler.Options{})
	if len(links) == 0 {
		log.LogInfo("no links found in the scanned files")
		return nil
	}
	log.LogInfo("extracted %d link(s)", len(links))

	if err := export.WriteLinks(links, output, format); err != nil {
		return err
	}
	log.LogInfo("links written to %s (total elapsed time: %s)", output, time.Since(start).Round(time.Millisecond))

	return nil
}
