package reconcile

// Aggregate folds classification outcomes into per-category reports. Only
// orphaned outcomes contribute; files keep their emission order within a
// category. Categories with no orphaned files are omitted entirely, so an
// empty map means a clean disk.
func Aggregate(outcomes []Classification) map[string]CategoryReport {
	reports := make(map[string]CategoryReport)

	for _, c := range outcomes {
		if c.Outcome != OutcomeOrphaned {
			continue
		}
		report := reports[c.File.Category]
		report.Category = c.File.Category
		report.Orphans = append(report.Orphans, c.File)
		report.TotalBytes += c.File.Size
		reports[c.File.Category] = report
	}

	return reports
}
