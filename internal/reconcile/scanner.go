package reconcile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Mapping associates configured category names with their on-disk root
// directories. It is immutable once loaded from configuration.
type Mapping map[string]string

// CategoryNames returns the configured category names in sorted order so
// traversal output is deterministic.
func (m Mapping) CategoryNames() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScanDisk enumerates every regular file under each category root. Each call
// performs a fresh traversal. Categories whose root is missing or unreadable
// produce a scan diagnostic and contribute no files; the remaining
// categories still scan. Emission order is deterministic: categories sorted
// by name, directory entries in lexical order, depth first.
func ScanDisk(mapping Mapping) ([]DiskFile, []Diagnostic) {
	var files []DiskFile
	var diags []Diagnostic

	for _, category := range mapping.CategoryNames() {
		root := mapping[category]
		found, err := scanCategory(category, root)
		if err != nil {
			diags = append(diags, Diagnostic{
				Subject: category,
				Err:     Wrap(ErrScan, fmt.Sprintf("root %q", root), err),
			})
			continue
		}
		files = append(files, found...)
	}

	return files, diags
}

// scanCategory walks one category root with an explicit directory stack.
// Symlinked directories are followed at most once: a visited set of resolved
// directory paths guards against cycles without bounding recursion on the
// call stack.
func scanCategory(category, root string) ([]DiskFile, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	visited := make(map[string]struct{})
	markVisited(visited, root)

	var files []DiskFile
	stack := []string{root}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			if dir == root {
				return nil, err
			}
			// Unreadable subdirectory: skip its subtree, keep scanning.
			continue
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name := entry.Name()
			full := filepath.Join(dir, name)
			// AppleDouble resource forks are noise, never orphans.
			if strings.HasPrefix(name, "._") {
				continue
			}
			if entry.Type()&fs.ModeSymlink != 0 {
				// Symlinks resolve through Stat; directory targets are
				// handled in the descent pass below.
				target, err := os.Stat(full)
				if err != nil || !target.Mode().IsRegular() {
					continue
				}
				files = append(files, DiskFile{Category: category, Path: full, Size: target.Size()})
				continue
			}
			if !entry.Type().IsRegular() {
				continue
			}
			fi, err := entry.Info()
			if err != nil {
				continue
			}
			files = append(files, DiskFile{Category: category, Path: full, Size: fi.Size()})
		}

		// Push subdirectories in reverse so the stack pops them in lexical
		// order. Symlinked directories are only descended when their real
		// path has not been seen in this category's traversal.
		for i := len(entries) - 1; i >= 0; i-- {
			entry := entries[i]
			full := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				if markVisited(visited, full) {
					stack = append(stack, full)
				}
				continue
			}
			if entry.Type()&fs.ModeSymlink != 0 {
				if target, err := os.Stat(full); err == nil && target.IsDir() {
					if markVisited(visited, full) {
						stack = append(stack, full)
					}
				}
			}
		}
	}

	return files, nil
}

// markVisited records the resolved identity of dir and reports whether it
// was new. Resolution failures fall back to the literal path so traversal
// still terminates.
func markVisited(visited map[string]struct{}, dir string) bool {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		real = dir
	}
	if _, ok := visited[real]; ok {
		return false
	}
	visited[real] = struct{}{}
	return true
}
