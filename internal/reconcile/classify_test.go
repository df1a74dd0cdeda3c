package reconcile

import "testing"

func TestClassifyPrecedence(t *testing.T) {
	idx := NewIndex()
	idx.Add("/mnt/films/movie.mkv")
	idx.Add("/mnt/films/movie.nfo")

	policy := NewPolicy(nil, []string{" - 720p.mkv", "movie.nfo"})

	tests := []struct {
		name string
		file DiskFile
		want Outcome
	}{
		{
			name: "ignore wins over exclude",
			file: DiskFile{Category: "Films", Path: "/mnt/films/movie.nfo", Size: 10},
			want: OutcomeIgnored,
		},
		{
			name: "exclude wins over tracked",
			file: DiskFile{Category: "Films", Path: "/mnt/films/Movie - 720p.mkv", Size: 3000},
			want: OutcomeExcluded,
		},
		{
			name: "tracked via case fold",
			file: DiskFile{Category: "Films", Path: "/mnt/films/Movie.mkv", Size: 5000},
			want: OutcomeTracked,
		},
		{
			name: "orphaned fallthrough",
			file: DiskFile{Category: "Films", Path: "/mnt/films/leftover.avi", Size: 42},
			want: OutcomeOrphaned,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.file, idx, policy)
			if got.Outcome != tc.want {
				t.Fatalf("Classify(%q) = %v, want %v", tc.file.Path, got.Outcome, tc.want)
			}
			if got.File != tc.file {
				t.Fatalf("classification must carry the originating file")
			}
		})
	}
}

func TestClassifyIgnoreSuffixCaseInsensitive(t *testing.T) {
	policy := NewPolicy(nil, nil)
	file := DiskFile{Category: "Films", Path: "/mnt/films/cover.JPG"}
	if got := Classify(file, NewIndex(), policy); got.Outcome != OutcomeIgnored {
		t.Fatalf("uppercase suffix should still be ignored, got %v", got.Outcome)
	}
}

func TestClassifyExtraSuffixesNormalized(t *testing.T) {
	// Leading dot is optional in configuration; comparison is lowercase.
	policy := NewPolicy([]string{"sub", ".IDX", "  "}, nil)
	for _, path := range []string{"/mnt/films/movie.sub", "/mnt/films/movie.idx"} {
		got := Classify(DiskFile{Category: "Films", Path: path}, NewIndex(), policy)
		if got.Outcome != OutcomeIgnored {
			t.Fatalf("%s should be ignored, got %v", path, got.Outcome)
		}
	}
}

func TestClassifyExcludeIsCaseSensitive(t *testing.T) {
	policy := NewPolicy(nil, []string{"Sample"})
	got := Classify(DiskFile{Category: "Films", Path: "/mnt/films/sample.mkv"}, NewIndex(), policy)
	if got.Outcome != OutcomeOrphaned {
		t.Fatalf("exclude patterns match case-sensitively, got %v", got.Outcome)
	}
	got = Classify(DiskFile{Category: "Films", Path: "/mnt/films/Sample.mkv"}, NewIndex(), policy)
	if got.Outcome != OutcomeExcluded {
		t.Fatalf("exact substring should be excluded, got %v", got.Outcome)
	}
}

func TestClassifyZeroByteFile(t *testing.T) {
	got := Classify(DiskFile{Category: "Films", Path: "/mnt/films/empty.mkv", Size: 0}, NewIndex(), NewPolicy(nil, nil))
	if got.Outcome != OutcomeOrphaned {
		t.Fatalf("size must not influence classification, got %v", got.Outcome)
	}
}

// The worked example from the reconciliation contract: one tracked file, one
// excluded transcode, one ignored sidecar.
func TestClassifyExampleScenario(t *testing.T) {
	idx := NewIndex()
	idx.Add("films/movie.mkv")
	policy := NewPolicy(nil, []string{" - 720p.mkv"})

	files := []struct {
		file DiskFile
		want Outcome
	}{
		{DiskFile{Category: "Films", Path: "films/Movie.mkv", Size: 5000}, OutcomeTracked},
		{DiskFile{Category: "Films", Path: "films/Movie - 720p.mkv", Size: 3000}, OutcomeExcluded},
		{DiskFile{Category: "Films", Path: "films/movie.nfo", Size: 10}, OutcomeIgnored},
	}

	var outcomes []Classification
	for _, f := range files {
		got := Classify(f.file, idx, policy)
		if got.Outcome != f.want {
			t.Fatalf("Classify(%q) = %v, want %v", f.file.Path, got.Outcome, f.want)
		}
		outcomes = append(outcomes, got)
	}

	if reports := Aggregate(outcomes); len(reports) != 0 {
		t.Fatalf("no orphans expected, got %v", reports)
	}
}

// Same disk contents, but nothing tracked and nothing excluded: the two
// media files become orphans, the sidecar stays ignored.
func TestClassifyExampleScenarioAllOrphaned(t *testing.T) {
	policy := NewPolicy(nil, nil)
	files := []DiskFile{
		{Category: "Films", Path: "films/Movie.mkv", Size: 5000},
		{Category: "Films", Path: "films/Movie - 720p.mkv", Size: 3000},
		{Category: "Films", Path: "films/movie.nfo", Size: 10},
	}

	outcomes := make([]Classification, 0, len(files))
	for _, f := range files {
		outcomes = append(outcomes, Classify(f, NewIndex(), policy))
	}

	reports := Aggregate(outcomes)
	report, ok := reports["Films"]
	if !ok {
		t.Fatal("expected a Films report")
	}
	if len(report.Orphans) != 2 {
		t.Fatalf("orphans = %d, want 2", len(report.Orphans))
	}
	if report.TotalBytes != 8000 {
		t.Fatalf("total = %d, want 8000", report.TotalBytes)
	}
	if report.Orphans[0].Path != "films/Movie.mkv" || report.Orphans[1].Path != "films/Movie - 720p.mkv" {
		t.Fatalf("orphans out of order: %v", report.Orphans)
	}
}
