package reconcile

import (
	"path/filepath"
	"strings"
)

// DefaultIgnoreSuffixes are the sidecar extensions (metadata, artwork,
// subtitles) that are never reported, regardless of tracking state.
var DefaultIgnoreSuffixes = []string{".nfo", ".jpg", ".png", ".txt", ".srt"}

// Policy holds the matching rules applied to every disk file: the ignore
// suffix set and the literal exclude substrings. Build one per pass with
// NewPolicy; the zero value ignores nothing and excludes nothing.
type Policy struct {
	ignore  map[string]struct{}
	exclude []string
}

// NewPolicy combines the default ignore suffixes with any additionally
// configured ones (leading dot optional, compared case-insensitively) and
// the configured exclude patterns. Patterns are literal substrings, not
// globs; empty entries are dropped.
func NewPolicy(extraSuffixes, excludePatterns []string) Policy {
	ignore := make(map[string]struct{}, len(DefaultIgnoreSuffixes)+len(extraSuffixes))
	for _, s := range DefaultIgnoreSuffixes {
		ignore[s] = struct{}{}
	}
	for _, s := range extraSuffixes {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if !strings.HasPrefix(s, ".") {
			s = "." + s
		}
		ignore[s] = struct{}{}
	}

	exclude := make([]string, 0, len(excludePatterns))
	for _, p := range excludePatterns {
		if p == "" {
			continue
		}
		exclude = append(exclude, p)
	}

	return Policy{ignore: ignore, exclude: exclude}
}

// Classify decides the outcome for a single disk file. The rule order is
// fixed policy, first match wins:
//
//  1. ignore suffix (case-insensitive extension match)
//  2. exclude pattern (case-sensitive literal substring of the full path)
//  3. tracked-index membership (normalized key)
//  4. orphaned
//
// File size plays no role here; it only matters during aggregation.
func Classify(file DiskFile, idx *Index, policy Policy) Classification {
	if _, ok := policy.ignore[strings.ToLower(filepath.Ext(file.Path))]; ok {
		return Classification{File: file, Outcome: OutcomeIgnored}
	}
	for _, pattern := range policy.exclude {
		if strings.Contains(file.Path, pattern) {
			return Classification{File: file, Outcome: OutcomeExcluded}
		}
	}
	if idx != nil && idx.Contains(file.Path) {
		return Classification{File: file, Outcome: OutcomeTracked}
	}
	return Classification{File: file, Outcome: OutcomeOrphaned}
}
