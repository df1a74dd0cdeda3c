package reconcile

import (
	"context"
	"log/slog"

	"flotsam/internal/logging"
)

// TorrentSource supplies the torrents the download client currently manages.
// Implementations own session and authentication concerns; any failure here
// is treated as the client being unavailable.
type TorrentSource interface {
	Torrents(ctx context.Context) ([]TorrentRecord, error)
}

// Options configure a reconciliation pass. Mapping and the rule lists come
// from configuration and are not mutated by the pipeline.
type Options struct {
	Mapping         Mapping
	IgnoreSuffixes  []string
	ExcludePatterns []string
}

// Pipeline runs the sequential reconciliation pass: fetch torrents, build
// the tracked index, scan category roots, classify, aggregate.
type Pipeline struct {
	source TorrentSource
	opts   Options
	logger *slog.Logger
}

// NewPipeline wires a pipeline from a torrent source and pass options.
func NewPipeline(source TorrentSource, opts Options, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		source: source,
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "reconcile"),
	}
}

// Run executes one full pass. A download-client failure aborts before any
// classification and carries ErrClientUnavailable; per-torrent and
// per-category problems are collected as diagnostics on the report instead.
// All state is rebuilt from scratch; nothing persists between runs.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	torrents, err := p.source.Torrents(ctx)
	if err != nil {
		return nil, Wrap(ErrClientUnavailable, "enumerate torrents", err)
	}
	p.logger.InfoContext(ctx, "fetched torrents", logging.Int("torrents", len(torrents)))

	idx, diags := BuildIndex(torrents)
	p.logger.DebugContext(ctx, "built tracked index",
		logging.Int("tracked_keys", idx.Len()),
		logging.Int("resolution_errors", len(diags)),
	)

	files, scanDiags := ScanDisk(p.opts.Mapping)
	diags = append(diags, scanDiags...)
	p.logger.DebugContext(ctx, "scanned category roots",
		logging.Int("disk_files", len(files)),
		logging.Int("scan_errors", len(scanDiags)),
	)

	policy := NewPolicy(p.opts.IgnoreSuffixes, p.opts.ExcludePatterns)
	outcomes := make([]Classification, 0, len(files))
	for _, f := range files {
		outcomes = append(outcomes, Classify(f, idx, policy))
	}

	report := &Report{
		Categories:   Aggregate(outcomes),
		Diagnostics:  diags,
		TorrentCount: len(torrents),
		TrackedCount: idx.Len(),
		ScannedCount: len(files),
	}

	for _, d := range diags {
		p.logger.WarnContext(ctx, "reconciliation diagnostic",
			logging.String("subject", d.Subject),
			logging.Error(d.Err),
		)
	}
	p.logger.InfoContext(ctx, "reconciliation complete",
		logging.Int("orphans", report.OrphanCount()),
		logging.Int64("orphan_bytes", report.OrphanBytes()),
		logging.Int("categories", len(report.Categories)),
	)

	return report, nil
}
