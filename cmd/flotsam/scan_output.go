package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"flotsam/internal/reconcile"
)

type orphanPayload struct {
	Path  string `json:"path"`
	Bytes int64  `json:"bytes"`
}

type categoryPayload struct {
	Category   string          `json:"category"`
	Orphans    []orphanPayload `json:"orphans"`
	TotalBytes int64           `json:"total_bytes"`
}

type reportPayload struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Torrents    int               `json:"torrents"`
	Scanned     int               `json:"scanned_files"`
	Categories  []categoryPayload `json:"categories"`
	Diagnostics []string          `json:"diagnostics,omitempty"`
}

// buildReportPayload flattens a report into a JSON-friendly shape with
// deterministic ordering: categories sorted by name, orphans by path.
func buildReportPayload(report *reconcile.Report, runID string, generatedAt time.Time) reportPayload {
	payload := reportPayload{
		RunID:       runID,
		GeneratedAt: generatedAt,
		Torrents:    report.TorrentCount,
		Scanned:     report.ScannedCount,
		Categories:  []categoryPayload{},
	}

	for _, name := range sortedCategories(report) {
		cr := report.Categories[name]
		entry := categoryPayload{Category: name, TotalBytes: cr.TotalBytes}
		for _, orphan := range sortedOrphans(cr) {
			entry.Orphans = append(entry.Orphans, orphanPayload{Path: orphan.Path, Bytes: orphan.Size})
		}
		payload.Categories = append(payload.Categories, entry)
	}

	for _, d := range report.Diagnostics {
		payload.Diagnostics = append(payload.Diagnostics, d.String())
	}

	return payload
}

// renderReport writes the human-readable report. Terminals get rounded
// tables; pipes get tab-separated lines for scripting.
func renderReport(w io.Writer, report *reconcile.Report) {
	plain := !writerIsTerminal(w)

	if len(report.Categories) == 0 {
		fmt.Fprintln(w, "No orphaned files found.")
	}

	for _, name := range sortedCategories(report) {
		cr := report.Categories[name]
		orphans := sortedOrphans(cr)

		fmt.Fprintf(w, "%s: %d orphaned file(s), %s\n", name, len(orphans), humanize.IBytes(uint64(cr.TotalBytes)))
		if plain {
			for _, orphan := range orphans {
				fmt.Fprintf(w, "%s\t%d\n", orphan.Path, orphan.Size)
			}
			continue
		}

		rows := make([][]string, 0, len(orphans))
		for _, orphan := range orphans {
			rows = append(rows, []string{orphan.Path, humanize.IBytes(uint64(orphan.Size))})
		}
		fmt.Fprintln(w, renderTable([]string{"Path", "Size"}, rows, []columnAlignment{alignLeft, alignRight}))
	}

	if len(report.Diagnostics) > 0 {
		fmt.Fprintf(w, "\n%d problem(s) during the pass:\n", len(report.Diagnostics))
		for _, d := range report.Diagnostics {
			fmt.Fprintf(w, "  - %s\n", d.String())
		}
	}
}

func sortedCategories(report *reconcile.Report) []string {
	names := make([]string, 0, len(report.Categories))
	for name := range report.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedOrphans(cr reconcile.CategoryReport) []reconcile.DiskFile {
	orphans := append([]reconcile.DiskFile(nil), cr.Orphans...)
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].Path < orphans[j].Path })
	return orphans
}

func writerIsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
