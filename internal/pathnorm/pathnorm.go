// Package pathnorm produces canonical comparison keys for file paths so
// membership tests are case-insensitive and separator-agnostic.
package pathnorm

import (
	"strings"

	"golang.org/x/text/cases"
)

// Key converts a path into its canonical comparison form: Unicode case
// folding, backslashes rewritten to forward slashes, and runs of slashes
// collapsed to one. The path structure is otherwise preserved; no dot-segment
// or symlink resolution happens here.
func Key(path string) string {
	if path == "" {
		return ""
	}
	s := strings.ReplaceAll(path, "\\", "/")
	for strings.Contains(s, "//") {
		s = strings.ReplaceAll(s, "//", "/")
	}
	return cases.Fold().String(s)
}
