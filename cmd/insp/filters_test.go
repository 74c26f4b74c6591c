package main

import (
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/matsen/insp/internal/config"
)

func parseFilter(t *testing.T, args ...string) (filterFlags, *cobra.Command) {
	t.Helper()
	var ff filterFlags
	cmd := &cobra.Command{Use: "test"}
	addFilterFlags(cmd, &ff)
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return ff, cmd
}

func TestFilterFlags_Build(t *testing.T) {
	ff, cmd := parseFilter(t,
		"--citeable", "--min-citations", "5", "--max-authors", "10",
		"--after", "2001-06", "--before", "2010", "--exclusive",
		"--exclude-keys", "A:2001a, B:2002b,",
		"--coauthor", "A.Salam.1", "--coauthor", "Glashow, Sheldon",
	)

	f, err := ff.build(cmd)
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if !f.OnlyCiteable || f.OnlyPublished || f.MinCitations != 5 || f.MaxAuthors != 10 || !f.Exclusive {
		t.Errorf("filter = %+v", f)
	}
	if !f.After.Equal(time.Date(2001, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("After = %v, want 2001-06-01", f.After)
	}
	if !f.Before.Equal(time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Before = %v, want 2010-01-01", f.Before)
	}
	if len(f.ExcludeKeys) != 2 || f.ExcludeKeys[1] != "B:2002b" {
		t.Errorf("ExcludeKeys = %q", f.ExcludeKeys)
	}
	if f.Keys != nil {
		t.Errorf("Keys = %q, want nil when --keys is not given", f.Keys)
	}
	if len(f.Coauthors) != 2 || f.Coauthors[0].BAI != "A.Salam.1" || f.Coauthors[1].Last != "Glashow" {
		t.Errorf("Coauthors = %+v", f.Coauthors)
	}
}

func TestFilterFlags_EmptyKeysMatchNothing(t *testing.T) {
	ff, cmd := parseFilter(t, "--keys", "")
	f, err := ff.build(cmd)
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if f.Keys == nil || len(f.Keys) != 0 {
		t.Errorf("Keys = %#v, want an empty non-nil list", f.Keys)
	}
}

func TestFilterFlags_Errors(t *testing.T) {
	tests := [][]string{
		{"--after", "last-year"},
		{"--before", "2020-1-2-3"},
		{"--coauthor", "  "},
	}
	for _, args := range tests {
		ff, cmd := parseFilter(t, args...)
		if _, err := ff.build(cmd); err == nil {
			t.Errorf("build() with %v should fail", args)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{",", 0},
		{"a", 1},
		{" a , b ,, c ", 3},
	}
	for _, tt := range tests {
		if got := splitList(tt.input); len(got) != tt.want {
			t.Errorf("splitList(%q) = %q, want %d items", tt.input, got, tt.want)
		}
	}
}

func TestSnapshotPath(t *testing.T) {
	orig, origFile := cfg, snapshotFile
	defer func() { cfg, snapshotFile = orig, origFile }()

	dir := t.TempDir()
	cfg = &config.Config{OutputDir: dir}
	snapshotFile = ""

	if got, want := snapshotPath("S.Weinberg.1"), filepath.Join(dir, "S.Weinberg.1.snapshot.jsonl"); got != want {
		t.Errorf("snapshotPath() = %q, want %q", got, want)
	}

	snapshotFile = "custom.jsonl"
	if got := snapshotPath("S.Weinberg.1"); got != "custom.jsonl" {
		t.Errorf("snapshotPath() = %q, want --file value", got)
	}
}

func TestFirstPositive(t *testing.T) {
	if got := firstPositive(0, 7, 3); got != 7 {
		t.Errorf("firstPositive(0, 7, 3) = %d, want 7", got)
	}
	if got := firstPositive(0, -1); got != 0 {
		t.Errorf("firstPositive(0, -1) = %d, want 0", got)
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("truncateString() = %q", got)
	}
	if got := truncateString("A Model of Leptons", 10); got != "A Model..." {
		t.Errorf("truncateString() = %q, want %q", got, "A Model...")
	}
}

func TestTruncateString_MultiByte(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"Über die Quantenmechanik", 10, "Über di..."},
		{"Ökonomie", 8, "Ökonomie"},
		{"ŁŁŁŁŁŁ", 5, "ŁŁ..."},
		{"Ωmega", 2, "Ωm"},
	}
	for _, tt := range tests {
		got := truncateString(tt.in, tt.maxLen)
		if got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("truncateString(%q, %d) = %q is not valid UTF-8", tt.in, tt.maxLen, got)
		}
	}
}
