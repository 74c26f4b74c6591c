package format

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matsen/insp/internal/record"
)

const sampleBib = `@article{Weinberg:1967tq,
    author = "Weinberg, Steven",
    title = "{A Model of Leptons}",
    doi = "10.1103/PhysRevLett.19.1264",
}

@misc{Doe:2021abc,
  DOI = {https://doi.org/10.5555/ABC},
  eprint = {2101.01234},
}
`

func TestReadBibIndex(t *testing.T) {
	idx, err := ReadBibIndex(strings.NewReader(sampleBib))
	if err != nil {
		t.Fatalf("ReadBibIndex() error = %v", err)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}

	tests := []struct {
		name string
		rec  record.Record
		want bool
	}{
		{"key match", record.Record{Key: "Weinberg:1967tq"}, true},
		{"doi match different key", record.Record{Key: "Other:1999",
			Identifiers: record.Identifiers{DOI: "10.1103/physrevlett.19.1264"}}, true},
		{"doi prefix match", record.Record{Key: "X",
			Identifiers: record.Identifiers{DOI: "doi:10.5555/abc"}}, true},
		{"eprint match different key", record.Record{Key: "Y",
			Identifiers: record.Identifiers{ArxivNumber: "2101.01234"}}, true},
		{"no match", record.Record{Key: "Salam:1968",
			Identifiers: record.Identifiers{DOI: "10.1/none", ArxivNumber: "9901.00001"}}, false},
		{"no match no identifiers", record.Record{Key: "Salam:1968"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.HasRecord(tt.rec); got != tt.want {
				t.Errorf("HasRecord(%s) = %v, want %v", tt.rec.Key, got, tt.want)
			}
		})
	}
}

func TestReadBibIndex_FieldsBeforeHeaderIgnored(t *testing.T) {
	idx, err := ReadBibIndex(strings.NewReader("doi = {10.1/stray}\n@misc{A:2020,\n}\n"))
	if err != nil {
		t.Fatalf("ReadBibIndex() error = %v", err)
	}
	rec := record.Record{Key: "B:2020", Identifiers: record.Identifiers{DOI: "10.1/stray"}}
	if idx.HasRecord(rec) {
		t.Errorf("DOI outside any entry should not be indexed")
	}
}

func TestParseBibFile_Missing(t *testing.T) {
	idx, err := ParseBibFile(filepath.Join(t.TempDir(), "missing.bib"))
	if err != nil {
		t.Fatalf("ParseBibFile() error = %v", err)
	}
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
}

func TestAppendToBibFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")

	if err := AppendToBibFile(path, ""); err != nil {
		t.Fatalf("AppendToBibFile() empty error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("empty content should not create the file")
	}

	if err := AppendToBibFile(path, ToBibTeX(weinberg())); err != nil {
		t.Fatalf("AppendToBibFile() error = %v", err)
	}
	if err := AppendToBibFile(path, ToBibTeX(preprint())); err != nil {
		t.Fatalf("AppendToBibFile() error = %v", err)
	}

	idx, err := ParseBibFile(path)
	if err != nil {
		t.Fatalf("ParseBibFile() error = %v", err)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
	if !idx.HasRecord(preprint()) {
		t.Errorf("appended entry not indexed")
	}
}
