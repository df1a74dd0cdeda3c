// Package reconcile implements the orphan detection pass: it builds a
// normalized index of every file the download client still references,
// walks the configured category folders, classifies each disk file, and
// aggregates orphaned files per category.
package reconcile
