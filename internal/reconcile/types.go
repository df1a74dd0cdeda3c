package reconcile

// UncategorizedLabel is the boundary representation for torrents without a
// category. It is distinct from any user-configured category name.
const UncategorizedLabel = "__UNCATEGORIZED__"

// Category identifies the download-client category a torrent belongs to. The
// zero value means "no category assigned"; the sentinel label only
// materializes when a report or log line needs a printable name.
type Category struct {
	name  string
	valid bool
}

// NewCategory wraps a client-reported category name. Empty names map to the
// uncategorized value.
func NewCategory(name string) Category {
	if name == "" {
		return Category{}
	}
	return Category{name: name, valid: true}
}

// Uncategorized returns the "no category" value.
func Uncategorized() Category {
	return Category{}
}

// Valid reports whether the torrent carried an actual category name.
func (c Category) Valid() bool {
	return c.valid
}

// Label returns the configured name, or the sentinel for uncategorized
// torrents.
func (c Category) Label() string {
	if !c.valid {
		return UncategorizedLabel
	}
	return c.name
}

// TorrentFile is one content file inside a torrent, relative to the
// torrent's save location.
type TorrentFile struct {
	RelPath string
	Size    int64
}

// TorrentRecord is one torrent as enumerated by the download client. Records
// only live for the duration of a single pass.
type TorrentRecord struct {
	Hash     string
	Name     string
	Category Category
	SavePath string
	Files    []TorrentFile
}

// DiskFile is one regular file found under a configured category root.
type DiskFile struct {
	Category string `json:"category"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
}

// Outcome is the classification of a single disk file.
type Outcome int

const (
	OutcomeTracked Outcome = iota
	OutcomeOrphaned
	OutcomeIgnored
	OutcomeExcluded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTracked:
		return "tracked"
	case OutcomeOrphaned:
		return "orphaned"
	case OutcomeIgnored:
		return "ignored"
	case OutcomeExcluded:
		return "excluded"
	default:
		return "unknown"
	}
}

// Classification pairs a disk file with its outcome.
type Classification struct {
	File    DiskFile
	Outcome Outcome
}

// CategoryReport collects the orphaned files found under one category root.
type CategoryReport struct {
	Category   string
	Orphans    []DiskFile
	TotalBytes int64
}

// Report is the result of one full reconciliation pass. Categories without
// orphaned files are omitted from the map; Diagnostics lists the non-fatal
// problems encountered, in occurrence order.
type Report struct {
	Categories   map[string]CategoryReport
	Diagnostics  []Diagnostic
	TorrentCount int
	TrackedCount int
	ScannedCount int
}

// OrphanCount returns the number of orphaned files across all categories.
func (r *Report) OrphanCount() int {
	total := 0
	for _, cr := range r.Categories {
		total += len(cr.Orphans)
	}
	return total
}

// OrphanBytes returns the byte total of orphaned files across all categories.
func (r *Report) OrphanBytes() int64 {
	var total int64
	for _, cr := range r.Categories {
		total += cr.TotalBytes
	}
	return total
}
