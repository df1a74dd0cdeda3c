package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"flotsam/internal/config"
	"flotsam/internal/history"
	"flotsam/internal/logging"
	"flotsam/internal/qbittorrent"
	"flotsam/internal/reconcile"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Reconcile category folders against qBittorrent and report orphaned files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				Output: cmd.ErrOrStderr(),
			})
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			logger = logging.WithRunID(logger, runID)

			// One scan at a time: overlapping cron invocations would race on
			// the history database and double-report.
			lock := flock.New(filepath.Join(cfg.Logging.Dir, "flotsam.lock"))
			held, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire scan lock: %w", err)
			}
			if !held {
				return errors.New("another flotsam scan is already running")
			}
			defer func() { _ = lock.Unlock() }()

			source := qbittorrent.New(cfg.Qbittorrent)
			pipeline := reconcile.NewPipeline(source, reconcile.Options{
				Mapping:         reconcile.Mapping(cfg.Scan.CategoryFolders),
				IgnoreSuffixes:  cfg.Scan.IgnoreSuffixes,
				ExcludePatterns: cfg.Scan.ExcludePatterns,
			}, logger)

			started := time.Now().UTC()
			report, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}
			finished := time.Now().UTC()

			recordHistory(cmd, cfg, logger, history.Run{
				ID:           runID,
				StartedAt:    started,
				FinishedAt:   finished,
				TorrentCount: report.TorrentCount,
				ScannedCount: report.ScannedCount,
				OrphanCount:  report.OrphanCount(),
				OrphanBytes:  report.OrphanBytes(),
				Diagnostics:  len(report.Diagnostics),
			})

			if jsonOut {
				return writeJSON(cmd, buildReportPayload(report, runID, finished))
			}
			renderReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the report as JSON")
	return cmd
}

// recordHistory persists the run summary when enabled. A history failure
// never suppresses the report; it only logs.
func recordHistory(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, run history.Run) {
	if !cfg.History.Enabled || cfg.History.Path == "" {
		return
	}
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		logger.Warn("open history store", logging.Error(err))
		return
	}
	defer store.Close()
	if err := store.RecordRun(cmd.Context(), run); err != nil {
		logger.Warn("record scan run", logging.Error(err))
	}
}
