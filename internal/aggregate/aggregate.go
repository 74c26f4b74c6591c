// Package aggregate holds the literature records of one author and derives
// citation totals, coauthor rosters and per-year series from them.
//
// Every query recomputes from the current record set; nothing derived is
// cached. An Author is not safe for concurrent use.
package aggregate

import (
	"cmp"
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/matsen/insp/internal/inspire"
	"github.com/matsen/insp/internal/metrics"
	"github.com/matsen/insp/internal/record"
)

// Author is the record collection of one author, keyed by citation key.
type Author struct {
	ID    inspire.Identifier
	Owner record.Person

	records    map[string]record.Record
	normalizer *record.Normalizer
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// Option configures an Author.
type Option func(*Author)

// WithLogger sets the logger used for skipped-record warnings.
func WithLogger(l *slog.Logger) Option {
	return func(a *Author) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithMetrics counts parsed and skipped documents in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Author) {
		a.metrics = m
	}
}

// WithOwner sets the owner's identity, normally the fetched author profile.
func WithOwner(p record.Person) Option {
	return func(a *Author) {
		a.setOwner(p)
	}
}

// New creates an empty Author for id. Until a profile is set the owner is known
// only by the identifier itself.
func New(id inspire.Identifier, opts ...Option) *Author {
	a := &Author{
		ID:      id,
		records: make(map[string]record.Record),
		logger:  slog.Default(),
	}
	switch id.Kind {
	case inspire.KindBAI:
		a.Owner.BAI = id.Value
	case inspire.KindRecID:
		a.Owner.RecID = id.Value
	case inspire.KindORCID:
		a.Owner.ORCID = id.Value
	}

	for _, opt := range opts {
		opt(a)
	}
	a.normalizer = record.NewNormalizer(a.logger)
	return a
}

// setOwner replaces the owner, keeping identifiers the new value lacks.
func (a *Author) setOwner(p record.Person) {
	if p.BAI == "" {
		p.BAI = a.Owner.BAI
	}
	if p.RecID == "" {
		p.RecID = a.Owner.RecID
	}
	if p.ORCID == "" {
		p.ORCID = a.Owner.ORCID
	}
	a.Owner = p
}

// Add inserts rec. A record whose key is already present is merged with the
// stored copy, rec being the newer one.
func (a *Author) Add(rec record.Record) {
	if existing, ok := a.records[rec.Key]; ok {
		a.logger.Debug("merging duplicate record", "key", rec.Key)
		rec = existing.Merge(rec)
	}
	a.records[rec.Key] = rec
}

// AddDocuments normalizes raw metadata documents and adds the resulting
// records. Documents that yield no citation key are skipped with a warning.
func (a *Author) AddDocuments(docs []json.RawMessage) (added, skipped int) {
	for i, data := range docs {
		rec, err := a.normalizer.ParseJSON(data)
		if err != nil {
			a.logger.Warn("skipping record", "index", i, "reason", err)
			a.metrics.RecordSkipped()
			skipped++
			continue
		}
		a.metrics.RecordParsed()
		a.Add(rec)
		added++
	}
	return added, skipped
}

// Len returns the number of records held.
func (a *Author) Len() int {
	return len(a.records)
}

// Record returns the record with the given citation key.
func (a *Author) Record(key string) (record.Record, bool) {
	rec, ok := a.records[key]
	return rec, ok
}

// Records returns the records passing f, most recent first. Records with the
// same date are ordered by key.
func (a *Author) Records(f Filter) []record.Record {
	out := a.filtered(f)
	slices.SortFunc(out, func(x, y record.Record) int {
		if c := y.Date.Compare(x.Date); c != 0 {
			return c
		}
		return cmp.Compare(x.Key, y.Key)
	})
	return out
}

// chronological returns the records passing f, oldest first.
func (a *Author) chronological(f Filter) []record.Record {
	out := a.filtered(f)
	slices.SortFunc(out, func(x, y record.Record) int {
		if c := x.Date.Compare(y.Date); c != 0 {
			return c
		}
		return cmp.Compare(x.Key, y.Key)
	})
	return out
}

func (a *Author) filtered(f Filter) []record.Record {
	out := make([]record.Record, 0, len(a.records))
	for _, rec := range a.records {
		if f.Valid(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// IsOwner reports whether p is the aggregate's own author. Identifiers are
// compared in the order BAI, record id, ORCID; the full name is the last
// resort.
func (a *Author) IsOwner(p record.Person) bool {
	o := a.Owner
	switch {
	case o.BAI != "" && p.BAI != "":
		return o.BAI == p.BAI
	case o.RecID != "" && p.RecID != "":
		return o.RecID == p.RecID
	case o.ORCID != "" && p.ORCID != "":
		return o.ORCID == p.ORCID
	default:
		return o.FullName != "" && o.FullName == p.FullName
	}
}

// EnrichOwner refreshes the owner's name and affiliation from their author
// entry in the most recent record that lists them. It reports whether an entry
// was found.
func (a *Author) EnrichOwner() bool {
	for _, rec := range a.Records(Filter{}) {
		for _, p := range rec.Authors {
			if !a.IsOwner(p) {
				continue
			}
			o := a.Owner
			if p.FullName != "" {
				o.FullName = p.FullName
				o.FirstName = p.FirstName
				o.LastName = p.LastName
			}
			if p.Affiliation != "" && p.Affiliation != record.UnknownAffiliation {
				o.Affiliation = p.Affiliation
			}
			if o.Affiliation == "" {
				o.Affiliation = record.UnknownAffiliation
			}
			o.LastUpdate = rec.Date
			a.setOwner(o)
			if a.Owner.BAI == "" {
				a.Owner.BAI = p.BAI
			}
			return true
		}
	}
	return false
}
