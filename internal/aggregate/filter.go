package aggregate

import (
	"slices"
	"time"

	"github.com/matsen/insp/internal/author"
	"github.com/matsen/insp/internal/record"
)

// Filter is a conjunction of record predicates. The zero value accepts every
// record; each field left at its zero value imposes no constraint.
type Filter struct {
	OnlyCiteable  bool
	OnlyPublished bool

	// MinCitations rejects records with fewer citations. Zero is unset.
	MinCitations int

	// MaxAuthors rejects records whose declared author count exceeds it.
	// Zero is unset.
	MaxAuthors int

	// After and Before bound the record date. Bounds are inclusive unless
	// Exclusive is set. Zero times are open bounds.
	After     time.Time
	Before    time.Time
	Exclusive bool

	// Year restricts records to one calendar year. Zero is unset.
	Year int

	// Keys, when non-nil, is the set of citation keys allowed through. An empty
	// non-nil slice lets nothing through.
	Keys []string

	// ExcludeKeys are citation keys always rejected.
	ExcludeKeys []string

	// Coauthors must each match at least one materialized author.
	Coauthors []author.Query
}

// Valid reports whether rec satisfies every predicate of f.
func (f Filter) Valid(rec record.Record) bool {
	if f.OnlyCiteable && !rec.Citeable {
		return false
	}
	if f.OnlyPublished && !rec.Published() {
		return false
	}
	if f.MinCitations > 0 && rec.CitationCount < f.MinCitations {
		return false
	}
	if f.MaxAuthors > 0 && rec.AuthorCount > f.MaxAuthors {
		return false
	}
	if !f.inDateRange(rec.Date) {
		return false
	}
	if f.Year != 0 && rec.Year() != f.Year {
		return false
	}
	if f.Keys != nil && !slices.Contains(f.Keys, rec.Key) {
		return false
	}
	if slices.Contains(f.ExcludeKeys, rec.Key) {
		return false
	}
	if !author.AllMatch(f.Coauthors, rec.Authors) {
		return false
	}
	return true
}

func (f Filter) inDateRange(d time.Time) bool {
	if !f.After.IsZero() {
		if f.Exclusive && !d.After(f.After) {
			return false
		}
		if !f.Exclusive && d.Before(f.After) {
			return false
		}
	}
	if !f.Before.IsZero() {
		if f.Exclusive && !d.Before(f.Before) {
			return false
		}
		if !f.Exclusive && d.After(f.Before) {
			return false
		}
	}
	return true
}
