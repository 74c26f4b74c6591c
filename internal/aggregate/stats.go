package aggregate

import (
	"cmp"
	"slices"

	"github.com/matsen/insp/internal/record"
)

// citations returns the citation count of rec, with or without self citations.
func citations(rec record.Record, selfCite bool) int {
	if selfCite {
		return rec.CitationCount
	}
	return rec.CitationCountNoSelf
}

// Count returns the number of records passing f.
func (a *Author) Count(f Filter) int {
	n := 0
	for _, rec := range a.records {
		if f.Valid(rec) {
			n++
		}
	}
	return n
}

// TotalCitations sums the citations of the records passing f. With selfCite
// false the counts exclude self citations.
func (a *Author) TotalCitations(selfCite bool, f Filter) int {
	total := 0
	for _, rec := range a.records {
		if f.Valid(rec) {
			total += citations(rec, selfCite)
		}
	}
	return total
}

// Coauthors returns the coauthors appearing in the records passing f, keyed by
// BAI (full name when the BAI is unknown). The owner is never included.
//
// When a coauthor appears more than once, the stored entry is replaced if the
// new record is strictly more recent than the stored entry's LastUpdate, or if
// the new full name sorts after the stored one. Records are visited oldest
// first, so the entry from the most recent record always wins.
func (a *Author) Coauthors(f Filter) map[string]record.Person {
	roster := make(map[string]record.Person)
	for _, rec := range a.chronological(f) {
		for _, p := range rec.Authors {
			if a.IsOwner(p) {
				continue
			}
			key := p.Key()
			if key == "" {
				continue
			}
			p.LastUpdate = rec.Date

			stored, seen := roster[key]
			if !seen || p.LastUpdate.After(stored.LastUpdate) || p.FullName > stored.FullName {
				roster[key] = p
			}
		}
	}
	return roster
}

// CoauthorList returns Coauthors sorted by last name, first name and key.
func (a *Author) CoauthorList(f Filter) []record.Person {
	roster := a.Coauthors(f)
	out := make([]record.Person, 0, len(roster))
	for _, p := range roster {
		out = append(out, p)
	}
	slices.SortFunc(out, func(x, y record.Person) int {
		return cmp.Or(
			cmp.Compare(record.FoldName(x.LastName), record.FoldName(y.LastName)),
			cmp.Compare(record.FoldName(x.FirstName), record.FoldName(y.FirstName)),
			cmp.Compare(x.Key(), y.Key()),
		)
	})
	return out
}

// PublicationsPerYear counts the records passing f in each year of
// [start, end]. The result has one entry per year; with cumulative set each
// entry is the running total. An inverted range yields an empty series.
func (a *Author) PublicationsPerYear(start, end int, cumulative bool, f Filter) []int {
	return a.series(start, end, cumulative, f, func(record.Record) int { return 1 })
}

// CitationsPerYear sums the citations of the records passing f in each year of
// [start, end], attributed to the record's publication year.
func (a *Author) CitationsPerYear(start, end int, cumulative, selfCite bool, f Filter) []int {
	return a.series(start, end, cumulative, f, func(rec record.Record) int {
		return citations(rec, selfCite)
	})
}

func (a *Author) series(start, end int, cumulative bool, f Filter, value func(record.Record) int) []int {
	if end < start {
		return []int{}
	}
	out := make([]int, end-start+1)
	for _, rec := range a.records {
		y := rec.Year()
		if y < start || y > end || !f.Valid(rec) {
			continue
		}
		out[y-start] += value(rec)
	}
	if cumulative {
		for i := 1; i < len(out); i++ {
			out[i] += out[i-1]
		}
	}
	return out
}

// YearRange returns the first and last publication years among the records
// passing f. Records without a resolved date (year 1) are ignored.
func (a *Author) YearRange(f Filter) (first, last int, ok bool) {
	for _, rec := range a.records {
		y := rec.Year()
		if y <= 1 || !f.Valid(rec) {
			continue
		}
		if !ok || y < first {
			first = y
		}
		if !ok || y > last {
			last = y
		}
		ok = true
	}
	return first, last, ok
}

// CitedRecord identifies one record in a Summary.
type CitedRecord struct {
	Key       string `json:"key"`
	Title     string `json:"title"`
	Citations int    `json:"citations"`
}

// Summary is an overview of an author's filtered record set.
type Summary struct {
	Identifier      string       `json:"identifier"`
	BAI             string       `json:"bai,omitempty"`
	Name            string       `json:"name,omitempty"`
	Affiliation     string       `json:"affiliation,omitempty"`
	Papers          int          `json:"papers"`
	Citations       int          `json:"citations"`
	CitationsNoSelf int          `json:"citations_without_self_citations"`
	MostCited       *CitedRecord `json:"most_cited,omitempty"`
}

// Summary computes the overview of the records passing f. Ties for most cited
// go to the most recent record.
func (a *Author) Summary(f Filter) Summary {
	s := Summary{
		Identifier:  a.ID.Value,
		BAI:         a.Owner.BAI,
		Name:        a.Owner.FullName,
		Affiliation: a.Owner.Affiliation,
	}
	for _, rec := range a.Records(f) {
		s.Papers++
		s.Citations += rec.CitationCount
		s.CitationsNoSelf += rec.CitationCountNoSelf
		if s.MostCited == nil || rec.CitationCount > s.MostCited.Citations {
			s.MostCited = &CitedRecord{Key: rec.Key, Title: rec.Title, Citations: rec.CitationCount}
		}
	}
	return s
}
