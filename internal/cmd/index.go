package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/specmonkey/internal/config"
	"github.com/harrison/specmonkey/internal/crawler"
	"github.com/harrison/specmonkey/internal/fileutil"
	"github.com/harrison/specmonkey/internal/gitutil"
	"github.com/harrison/specmonkey/internal/history"
	"github.com/harrison/specmonkey/internal/index"
	"github.com/harrison/specmonkey/internal/logger"
)

// NewIndexCommand creates the index subcommand
func NewIndexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index --config <file> <source-repo> <index-repo>",
		Short: "Index spec references from the source repository into the index repository",
		Long: `Scan the source repository for URLs, filter them against the configured
domain whitelist, and write one <domain>.json file per domain into the
index repository.

Examples:
  specmonkey index --config specmonkey.yaml ./gecko ./spec-index
  specmonkey index --config specmonkey.yaml --pull --commit --push ./gecko ./spec-index`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			pull, _ := cmd.Flags().GetBool("pull")
			commit, _ := cmd.Flags().GetBool("commit")
			push, _ := cmd.Flags().GetBool("push")
			return runIndex(cmd, args[0], args[1], configPath, pull, commit, push)
		},
		SilenceUsage: true,
	}

	cmd.Flags().String("config", "", "Path to the configuration YAML file (required)")
	cmd.Flags().Bool("pull", false, "Pull the source repository before scanning")
	cmd.Flags().Bool("commit", false, "Commit the refreshed index repository")
	cmd.Flags().Bool("push", false, "Push the index repository after committing (implies --commit)")
	cmd.MarkFlagRequired("config")

	return cmd
}

func runIndex(cmd *cobra.Command, sourceDir, indexDir, configPath string, pull, commit, push bool) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	log := logger.NewConsoleLogger(os.Stdout, cfg.LogLevel)
	runID := uuid.NewString()
	log.LogDebug("starting index run %s", runID)

	if pull {
		log.LogInfo("pulling source repository %s", sourceDir)
		if err := gitutil.NewRepo(sourceDir).Pull(ctx, cfg.SourceRepository.Branch); err != nil {
			return err
		}
	}

	start := time.Now()

	scan, err := fileutil.ScanDirectory(sourceDir, fileutil.ScanOptions{
		Extensions:      cfg.Extensions,
		ExcludeSubpaths: cfg.ExcludePaths,
	})
	if err != nil {
		return err
	}
	log.LogInfo("found %d file(s) to process in %s", len(scan.Files), sourceDir)
	for _, scanErr := range scan.Errors {
		log.LogDebug("scan: %v", scanErr)
	}

	links := crawler.FindURLs(scan.Files, sourceDir, cfg.Domains, crawler.Options{
		MaxConcurrency: cfg.MaxConcurrency,
		RelativePaths:  true,
	})
	log.LogInfo("extracted %d link(s) matching %d whitelisted domain(s)", len(links), len(cfg.Domains))

	idx := index.Build(links)
	if err := idx.WriteJSON(indexDir); err != nil {
		return err
	}
	elapsed := time.Since(start)
	log.LogInfo("wrote index for %d domain(s) to %s in %s", len(idx.Domains()), indexDir, elapsed.Round(time.Millisecond))

	if cfg.History.Enabled {
		recordRun(log, cfg, history.Run{
			ID:           runID,
			StartedAt:    start.UTC(),
			Root:         sourceDir,
			FilesScanned: len(scan.Files),
			LinksFound:   len(links),
			Domains:      len(idx.Domains()),
			Duration:     elapsed,
		})
	}

	if commit || push {
		repo := gitutil.NewRepo(indexDir)
		message := fmt.Sprintf("Refresh spec index (%d links, %d domains)", len(links), len(idx.Domains()))
		if err := repo.CommitAll(ctx, message); err != nil {
			return err
		}
		log.LogInfo("committed index repository")
		if push {
			if err := repo.Push(ctx, cfg.IndexRepository.Branch); err != nil {
				return err
			}
			log.LogInfo("pushed index repository")
		}
	}

	return nil
}

// recordRun journals a completed run. Journal failures are reported but
// never fail the run that produced a perfectly good index.
func recordRun(log *logger.ConsoleLogger, cfg *config.Config, run history.Run) {
	store, err := history.NewStore(cfg.History.DBPath)
	if err != nil {
		log.LogWarn("could not open history journal: %v", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(run); err != nil {
		log.LogWarn("could not record run: %v", err)
	}
}
