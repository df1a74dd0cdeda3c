package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClientUnavailable marks a failure talking to the download client.
	// It is fatal: no report is produced.
	ErrClientUnavailable = errors.New("download client unavailable")
	// ErrResolution marks a torrent whose files could not be resolved to
	// absolute paths. The torrent is skipped; the pass continues.
	ErrResolution = errors.New("save path resolution failed")
	// ErrScan marks a category root that could not be traversed. The
	// category contributes no disk files; other categories still scan.
	ErrScan = errors.New("category scan failed")
)

// Wrap tags err with a sentinel marker and contextual detail so callers can
// classify failures with errors.Is while keeping the original cause chained.
func Wrap(marker error, detail string, err error) error {
	detail = strings.TrimSpace(detail)
	if detail == "" {
		detail = "reconciliation failure"
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Diagnostic is a non-fatal problem surfaced alongside the final report
// instead of being dropped. Subject names the torrent or category the
// problem belongs to.
type Diagnostic struct {
	Subject string
	Err     error
}

func (d Diagnostic) String() string {
	if d.Subject == "" {
		return d.Err.Error()
	}
	return fmt.Sprintf("%s: %v", d.Subject, d.Err)
}
