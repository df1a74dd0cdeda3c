// Package history persists per-run scan summaries in a local SQLite
// database so successive cron runs can be compared after the fact.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store manages scan run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is the summary of one completed reconciliation pass.
type Run struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	TorrentCount int
	ScannedCount int
	OrphanCount  int
	OrphanBytes  int64
	Diagnostics  int
}

// Duration returns the wall time the pass took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Open initializes or connects to the history database and applies
// migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) applyMigrations(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS scan_runs (
    id               TEXT PRIMARY KEY,
    started_at       TEXT NOT NULL,
    finished_at      TEXT NOT NULL,
    torrent_count    INTEGER NOT NULL,
    scanned_count    INTEGER NOT NULL,
    orphan_count     INTEGER NOT NULL,
    orphan_bytes     INTEGER NOT NULL,
    diagnostic_count INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_runs_started_at ON scan_runs(started_at);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// RecordRun inserts the summary of a completed pass.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scan_runs (
            id, started_at, finished_at, torrent_count,
            scanned_count, orphan_count, orphan_bytes, diagnostic_count
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.TorrentCount,
		run.ScannedCount,
		run.OrphanCount,
		run.OrphanBytes,
		run.Diagnostics,
	)
	if err != nil {
		return fmt.Errorf("insert scan run: %w", err)
	}
	return nil
}

// RecentRuns returns the newest runs first, capped at limit.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, started_at, finished_at, torrent_count,
                scanned_count, orphan_count, orphan_bytes, diagnostic_count
           FROM scan_runs
          ORDER BY started_at DESC
          LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query scan runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(
			&run.ID, &started, &finished, &run.TorrentCount,
			&run.ScannedCount, &run.OrphanCount, &run.OrphanBytes, &run.Diagnostics,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scan runs: %w", err)
	}
	return runs, nil
}
