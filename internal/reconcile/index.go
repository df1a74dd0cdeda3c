package reconcile

import (
	"path/filepath"
	"strings"

	"flotsam/internal/pathnorm"
)

// Index is the set of normalized absolute file paths the download client
// currently references. It supports membership tests only; iteration order
// is undefined.
type Index struct {
	keys map[string]struct{}
}

// NewIndex returns an empty tracked-file index.
func NewIndex() *Index {
	return &Index{keys: make(map[string]struct{})}
}

// Add inserts the normalized key for an absolute path. Duplicate paths
// collapse to a single key; two torrents sharing a file is expected.
func (i *Index) Add(path string) {
	i.keys[pathnorm.Key(path)] = struct{}{}
}

// Contains reports whether the normalized key for path is tracked.
func (i *Index) Contains(path string) bool {
	_, ok := i.keys[pathnorm.Key(path)]
	return ok
}

// Len returns the number of distinct tracked keys.
func (i *Index) Len() int {
	return len(i.keys)
}

// BuildIndex resolves every torrent content file to an absolute path and
// folds it into the index. Torrents with no files are skipped. A torrent
// whose save path is unavailable yields a resolution diagnostic and is
// skipped; the remaining torrents still contribute.
func BuildIndex(torrents []TorrentRecord) (*Index, []Diagnostic) {
	idx := NewIndex()
	var diags []Diagnostic

	for _, t := range torrents {
		if len(t.Files) == 0 {
			continue
		}
		save := strings.TrimSpace(t.SavePath)
		if save == "" {
			diags = append(diags, Diagnostic{
				Subject: torrentSubject(t),
				Err:     Wrap(ErrResolution, "torrent reported no save path", nil),
			})
			continue
		}
		for _, f := range t.Files {
			idx.Add(filepath.Join(save, filepath.FromSlash(f.RelPath)))
		}
	}

	return idx, diags
}

func torrentSubject(t TorrentRecord) string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	return t.Hash
}
