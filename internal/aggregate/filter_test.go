package aggregate

import (
	"testing"

	"github.com/matsen/insp/internal/author"
	"github.com/matsen/insp/internal/record"
)

func sampleRecord() record.Record {
	return record.Record{
		Key:           "Weinberg:1967tq",
		DocumentType:  record.Article,
		Date:          day(1967, 11, 20),
		Authors:       []record.Person{owner()},
		AuthorCount:   1,
		Venue:         record.Venue{JournalTitle: "Phys.Rev.Lett."},
		CitationCount: 100,
		Citeable:      true,
	}
}

func TestFilter_Valid(t *testing.T) {
	rec := sampleRecord()
	preprint := rec
	preprint.Venue = record.Venue{}
	preprint.Citeable = false
	collab := rec
	collab.AuthorCount = 3000

	tests := []struct {
		name   string
		filter Filter
		rec    record.Record
		want   bool
	}{
		{"zero filter", Filter{}, rec, true},
		{"citeable only passes", Filter{OnlyCiteable: true}, rec, true},
		{"citeable only rejects", Filter{OnlyCiteable: true}, preprint, false},
		{"published only rejects", Filter{OnlyPublished: true}, preprint, false},
		{"min citations met", Filter{MinCitations: 100}, rec, true},
		{"min citations missed", Filter{MinCitations: 101}, rec, false},
		{"max authors uses declared count", Filter{MaxAuthors: 10}, collab, false},
		{"max authors at bound", Filter{MaxAuthors: 1}, rec, true},
		{"after inclusive", Filter{After: day(1967, 11, 20)}, rec, true},
		{"after exclusive", Filter{After: day(1967, 11, 20), Exclusive: true}, rec, false},
		{"before inclusive", Filter{Before: day(1967, 11, 20)}, rec, true},
		{"before exclusive", Filter{Before: day(1967, 11, 20), Exclusive: true}, rec, false},
		{"outside range", Filter{After: day(1970, 1, 1)}, rec, false},
		{"inside range", Filter{After: day(1960, 1, 1), Before: day(1970, 1, 1)}, rec, true},
		{"year match", Filter{Year: 1967}, rec, true},
		{"year mismatch", Filter{Year: 1968}, rec, false},
		{"key included", Filter{Keys: []string{"Weinberg:1967tq"}}, rec, true},
		{"key not included", Filter{Keys: []string{"Other:2000a"}}, rec, false},
		{"empty inclusion list", Filter{Keys: []string{}}, rec, false},
		{"key excluded", Filter{ExcludeKeys: []string{"Weinberg:1967tq"}}, rec, false},
		{"coauthor query", Filter{Coauthors: []author.Query{author.ParseQuery("Weinberg")}}, rec, true},
		{"coauthor query misses", Filter{Coauthors: []author.Query{author.ParseQuery("Salam")}}, rec, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Valid(tt.rec)
			if got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
			if again := tt.filter.Valid(tt.rec); again != got {
				t.Errorf("Valid() not idempotent: %v then %v", got, again)
			}
		})
	}
}

// TestFilter_Monotone checks that tightening one bound never admits a record
// that the looser filter rejected.
func TestFilter_Monotone(t *testing.T) {
	var recs []record.Record
	for i, n := range []int{0, 1, 5, 10, 50, 200} {
		rec := sampleRecord()
		rec.Key = string(rune('A'+i)) + ":2000a"
		rec.CitationCount = n
		rec.AuthorCount = n + 1
		rec.Date = day(1990+i*5, 1, 1)
		recs = append(recs, rec)
	}

	tighten := []struct {
		name         string
		loose, tight Filter
	}{
		{"min citations", Filter{MinCitations: 1}, Filter{MinCitations: 10}},
		{"max authors", Filter{MaxAuthors: 100}, Filter{MaxAuthors: 6}},
		{"set max authors", Filter{}, Filter{MaxAuthors: 11}},
		{"after", Filter{After: day(1995, 1, 1)}, Filter{After: day(2005, 1, 1)}},
		{"before", Filter{Before: day(2010, 1, 1)}, Filter{Before: day(2000, 1, 1)}},
		{"exclusive bounds", Filter{After: day(1995, 1, 1)}, Filter{After: day(1995, 1, 1), Exclusive: true}},
		{"citeable", Filter{}, Filter{OnlyCiteable: true}},
	}

	for _, tt := range tighten {
		t.Run(tt.name, func(t *testing.T) {
			for _, rec := range recs {
				if tt.tight.Valid(rec) && !tt.loose.Valid(rec) {
					t.Errorf("%s: tighter filter admits %s rejected by looser one", tt.name, rec.Key)
				}
			}
		})
	}
}
