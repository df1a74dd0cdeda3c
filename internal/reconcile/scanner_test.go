package reconcile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanDiskListsRegularFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Movie", "Movie.mkv"), 5000)
	writeFile(t, filepath.Join(root, "Movie", "movie.nfo"), 10)
	writeFile(t, filepath.Join(root, "loose.mkv"), 7)

	files, diags := ScanDisk(Mapping{"Films": root})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(files) != 3 {
		t.Fatalf("files = %d, want 3", len(files))
	}
	for _, f := range files {
		if f.Category != "Films" {
			t.Fatalf("category = %q", f.Category)
		}
		if !filepath.IsAbs(f.Path) {
			t.Fatalf("path must be absolute: %q", f.Path)
		}
	}
}

func TestScanDiskSkipsAppleDoubleFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "._Movie.mkv"), 100)
	writeFile(t, filepath.Join(root, "Movie.mkv"), 100)

	files, _ := ScanDisk(Mapping{"Films": root})
	if len(files) != 1 || filepath.Base(files[0].Path) != "Movie.mkv" {
		t.Fatalf("resource fork should be skipped, got %v", files)
	}
}

func TestScanDiskMissingRootIsNonFatal(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "show.mkv"), 1)

	files, diags := ScanDisk(Mapping{
		"Films": filepath.Join(root, "does-not-exist"),
		"Shows": root,
	})
	if len(files) != 1 {
		t.Fatalf("healthy category must still scan, got %d files", len(files))
	}
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	if !errors.Is(diags[0].Err, ErrScan) {
		t.Fatalf("diagnostic should carry ErrScan, got %v", diags[0].Err)
	}
	if diags[0].Subject != "Films" {
		t.Fatalf("subject = %q, want category name", diags[0].Subject)
	}
}

func TestScanDiskFileRootIsScanError(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "not-a-dir")
	writeFile(t, file, 1)

	_, diags := ScanDisk(Mapping{"Films": file})
	if len(diags) != 1 || !errors.Is(diags[0].Err, ErrScan) {
		t.Fatalf("file used as root must produce a scan diagnostic, got %v", diags)
	}
}

func TestScanDiskFollowsSymlinkedDirOnce(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "inner", "episode.mkv"), 10)
	if err := os.Symlink(filepath.Join(root, "inner"), filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, diags := ScanDisk(Mapping{"Shows": root})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	// inner/ and linked/ resolve to the same directory identity; the file is
	// listed exactly once.
	if len(files) != 1 {
		t.Fatalf("files = %d, want 1 (symlink target already visited)", len(files))
	}
}

func TestScanDiskSymlinkCycleTerminates(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "season")
	writeFile(t, filepath.Join(sub, "e01.mkv"), 10)
	if err := os.Symlink(root, filepath.Join(sub, "loop")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, diags := ScanDisk(Mapping{"Shows": root})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(files) != 1 {
		t.Fatalf("cycle must not duplicate files, got %d", len(files))
	}
}

func TestScanDiskSymlinkedFile(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real.mkv")
	writeFile(t, target, 123)
	if err := os.Symlink(target, filepath.Join(root, "alias.mkv")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, _ := ScanDisk(Mapping{"Films": root})
	if len(files) != 2 {
		t.Fatalf("symlinked regular file should be listed, got %d", len(files))
	}
}

func TestScanDiskDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b", "2.mkv"), 1)
	writeFile(t, filepath.Join(root, "a", "1.mkv"), 1)
	writeFile(t, filepath.Join(root, "0.mkv"), 1)

	first, _ := ScanDisk(Mapping{"Films": root})
	second, _ := ScanDisk(Mapping{"Films": root})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated traversal must emit the same order:\n%v\n%v", first, second)
	}
	if filepath.Base(first[0].Path) != "0.mkv" {
		t.Fatalf("root files come first in lexical order, got %v", first)
	}
}

func TestScanDiskCategoriesSorted(t *testing.T) {
	filmRoot := t.TempDir()
	showRoot := t.TempDir()
	writeFile(t, filepath.Join(filmRoot, "f.mkv"), 1)
	writeFile(t, filepath.Join(showRoot, "s.mkv"), 1)

	files, _ := ScanDisk(Mapping{"Shows": showRoot, "Films": filmRoot})
	if len(files) != 2 {
		t.Fatalf("files = %d, want 2", len(files))
	}
	if files[0].Category != "Films" || files[1].Category != "Shows" {
		t.Fatalf("categories must be visited in sorted order, got %v", files)
	}
}
