// Package record defines the normalized literature record and the logic that
// builds it from INSPIRE metadata documents.
package record

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// DocumentType is the normalized kind of a literature record.
type DocumentType string

const (
	Article         DocumentType = "article"
	ConferencePaper DocumentType = "conference_paper"
	Proceedings     DocumentType = "proceedings"
	Report          DocumentType = "report"
	Thesis          DocumentType = "thesis"
	Other           DocumentType = "other"
)

// ParseDocumentType maps an INSPIRE document_type value to a DocumentType.
func ParseDocumentType(s string) DocumentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "article":
		return Article
	case "conference paper", "conference_paper":
		return ConferencePaper
	case "proceedings":
		return Proceedings
	case "report":
		return Report
	case "thesis":
		return Thesis
	default:
		return Other
	}
}

// Record is one normalized literature entry.
type Record struct {
	Key          string       `json:"key"`
	Title        string       `json:"title,omitempty"`
	DocumentType DocumentType `json:"document_type"`
	Date         time.Time    `json:"date"`

	// Authors is the materialized author list, in document order. AuthorCount is
	// the declared count and may exceed len(Authors) for large collaborations.
	Authors     []Person `json:"authors"`
	AuthorCount int      `json:"author_count"`

	Venue       Venue       `json:"venue"`
	Identifiers Identifiers `json:"identifiers"`

	CitationCount       int  `json:"citation_count"`
	CitationCountNoSelf int  `json:"citation_count_without_self_citations"`
	Citeable            bool `json:"citeable"`

	ControlNumber int `json:"control_number,omitempty"`

	// Extra carries the unrecognized top-level keys of the source document.
	Extra map[string]json.RawMessage `json:"-"`
}

// Venue holds journal publication details.
type Venue struct {
	JournalTitle string `json:"journal_title,omitempty"`
	Volume       string `json:"volume,omitempty"`
	Issue        string `json:"issue,omitempty"`
	ArticleID    string `json:"article_id,omitempty"`
	Year         int    `json:"year,omitempty"`
}

// String renders the venue as "Journal Volume (Year) Issue ArtID", skipping
// empty parts.
func (v Venue) String() string {
	var parts []string
	for _, p := range []string{v.JournalTitle, v.Volume} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if v.Year > 0 {
		parts = append(parts, "("+strconv.Itoa(v.Year)+")")
	}
	for _, p := range []string{v.Issue, v.ArticleID} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Identifiers holds external identifiers of a record.
type Identifiers struct {
	ArxivNumber   string `json:"arxiv_number,omitempty"`   // e.g. 2101.01234
	ArxivCategory string `json:"arxiv_category,omitempty"` // primary category, e.g. hep-ph
	DOI           string `json:"doi,omitempty"`
}

// Published reports whether the record appeared in a journal.
func (r Record) Published() bool {
	return r.Venue.JournalTitle != ""
}

// Year returns the year of the resolved date.
func (r Record) Year() int {
	return r.Date.Year()
}

// FirstAuthor returns the first materialized author.
func (r Record) FirstAuthor() (Person, bool) {
	if len(r.Authors) == 0 {
		return Person{}, false
	}
	return r.Authors[0], true
}

// Merge combines r with a newer copy of the same record. Authorship and date
// come from newer; other fields keep r's value unless it is empty.
func (r Record) Merge(newer Record) Record {
	merged := r

	merged.Date = newer.Date
	merged.Authors = append([]Person(nil), newer.Authors...)
	merged.AuthorCount = newer.AuthorCount

	if merged.Title == "" {
		merged.Title = newer.Title
	}
	if merged.DocumentType == "" || merged.DocumentType == Other {
		if newer.DocumentType != "" {
			merged.DocumentType = newer.DocumentType
		}
	}
	if merged.Venue == (Venue{}) {
		merged.Venue = newer.Venue
	}
	if merged.Identifiers.ArxivNumber == "" {
		merged.Identifiers.ArxivNumber = newer.Identifiers.ArxivNumber
	}
	if merged.Identifiers.ArxivCategory == "" {
		merged.Identifiers.ArxivCategory = newer.Identifiers.ArxivCategory
	}
	if merged.Identifiers.DOI == "" {
		merged.Identifiers.DOI = newer.Identifiers.DOI
	}
	if merged.CitationCount == 0 {
		merged.CitationCount = newer.CitationCount
	}
	if merged.CitationCountNoSelf == 0 {
		merged.CitationCountNoSelf = newer.CitationCountNoSelf
	}
	merged.Citeable = merged.Citeable || newer.Citeable
	if merged.ControlNumber == 0 {
		merged.ControlNumber = newer.ControlNumber
	}

	if len(newer.Extra) > 0 {
		extra := make(map[string]json.RawMessage, len(r.Extra)+len(newer.Extra))
		for k, v := range r.Extra {
			extra[k] = v
		}
		for k, v := range newer.Extra {
			extra[k] = v
		}
		merged.Extra = extra
	}

	return merged
}
