package record

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// errAbsent marks a date source that is not present in the document.
var errAbsent = errors.New("field absent")

// dateSource is one step of the date fallback chain.
type dateSource struct {
	field   string
	extract func(Document) (time.Time, error)
}

// dateChain lists the date sources in priority order. The first source that
// yields a valid date wins.
var dateChain = []dateSource{
	{field: "earliest_date", extract: func(d Document) (time.Time, error) {
		return parseOptionalDate(d.EarliestDate)
	}},
	{field: "preprint_date", extract: func(d Document) (time.Time, error) {
		return parseOptionalDate(d.PreprintDate)
	}},
	{field: "publication_info.year", extract: publicationYear},
	{field: "texkeys", extract: texKeyYear},
}

// Normalizer turns Documents into Records, reporting degraded fields on its logger.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a Normalizer. A nil logger uses slog.Default().
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Parse normalizes doc with the default logger.
func Parse(doc Document) (Record, error) {
	return NewNormalizer(nil).Parse(doc)
}

// ParseJSON decodes and normalizes one raw metadata object.
func (n *Normalizer) ParseJSON(data []byte) (Record, error) {
	doc, err := MapDocument(data)
	if err != nil {
		return Record{}, err
	}
	return n.Parse(doc)
}

// Parse builds a Record from doc. The only error is a *MissingIdentifierError;
// every other missing or malformed field falls back to a default.
func (n *Normalizer) Parse(doc Document) (Record, error) {
	key := primaryKey(doc)
	if key == "" {
		return Record{}, &MissingIdentifierError{
			ControlNumber: doc.ControlNumber,
			Title:         firstTitle(doc),
		}
	}

	log := n.logger.With("key", key)
	for _, field := range doc.Invalid {
		log.Warn("ignoring field with unexpected type", "field", field)
	}

	rec := Record{
		Key:           key,
		Title:         firstTitle(doc),
		ControlNumber: doc.ControlNumber,
		Extra:         doc.Extra,
	}

	rec.Date = n.resolveDate(doc, log)

	if len(doc.DocumentType) > 0 {
		rec.DocumentType = ParseDocumentType(doc.DocumentType[0])
	} else {
		log.Warn("missing document type, using default", "field", "document_type", "default", Other)
		rec.DocumentType = Other
	}

	rec.Authors = make([]Person, 0, len(doc.Authors))
	for _, raw := range doc.Authors {
		p := BuildPerson(raw)
		p.LastUpdate = rec.Date
		rec.Authors = append(rec.Authors, p)
	}

	switch {
	case doc.AuthorCount == nil:
		log.Warn("missing author count, using materialized list length", "field", "author_count", "default", len(rec.Authors))
		rec.AuthorCount = len(rec.Authors)
	case *doc.AuthorCount < 0:
		log.Warn("negative author count, using 0", "field", "author_count", "value", *doc.AuthorCount)
	default:
		rec.AuthorCount = *doc.AuthorCount
	}

	rec.Venue = resolveVenue(doc)
	if !rec.Published() {
		log.Debug("no journal title, record is unpublished", "field", "publication_info")
	}

	rec.Identifiers = resolveIdentifiers(doc)
	if rec.Identifiers.ArxivNumber != "" && rec.Identifiers.ArxivCategory == "" {
		log.Debug("missing arXiv category", "field", "primary_arxiv_category")
	}

	rec.CitationCount = nonNegative(doc.CitationCount, "citation_count", log)
	rec.CitationCountNoSelf = nonNegative(doc.CitationCountNoSelf, "citation_count_without_self_citations", log)

	if doc.Citeable != nil {
		rec.Citeable = *doc.Citeable
	}

	return rec, nil
}

// resolveDate walks the date chain. A source that is present but malformed is
// reported and skipped, like an absent one.
func (n *Normalizer) resolveDate(doc Document, log *slog.Logger) time.Time {
	for _, src := range dateChain {
		date, err := src.extract(doc)
		if err == nil {
			return date
		}
		if !errors.Is(err, errAbsent) {
			log.Warn("unparseable date source", "field", src.field, "error", err)
		}
	}
	log.Warn("no date found in record, using 0001-01-01", "field", "date")
	return time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// primaryKey returns the first non-empty citation key.
func primaryKey(doc Document) string {
	for _, k := range doc.TexKeys {
		if k = strings.TrimSpace(k); k != "" {
			return k
		}
	}
	return ""
}

func firstTitle(doc Document) string {
	for _, t := range doc.Titles {
		if title := strings.TrimSpace(t.Title); title != "" {
			return title
		}
	}
	return ""
}

// venueEntry picks the publication_info entry describing the journal: the first
// entry with a journal title, else the first entry.
func venueEntry(doc Document) (PublicationInfo, bool) {
	for _, info := range doc.PublicationInfo {
		if strings.TrimSpace(info.JournalTitle) != "" {
			return info, true
		}
	}
	if len(doc.PublicationInfo) > 0 {
		return doc.PublicationInfo[0], true
	}
	return PublicationInfo{}, false
}

func resolveVenue(doc Document) Venue {
	info, ok := venueEntry(doc)
	if !ok {
		return Venue{}
	}
	v := Venue{
		JournalTitle: strings.TrimSpace(info.JournalTitle),
		Volume:       info.JournalVolume.String(),
		Issue:        info.JournalIssue.String(),
		ArticleID:    info.ArtID.String(),
	}
	if v.ArticleID == "" {
		v.ArticleID = info.PageStart.String()
	}
	if y, ok := info.Year.Int(); ok {
		v.Year = y
	}
	return v
}

func resolveIdentifiers(doc Document) Identifiers {
	var ids Identifiers
	if len(doc.ArxivEprints) > 0 {
		ids.ArxivNumber = strings.TrimSpace(doc.ArxivEprints[0].Value)
	}
	if len(doc.PrimaryArxivCategory) > 0 {
		ids.ArxivCategory = doc.PrimaryArxivCategory[0]
	}
	ids.DOI = firstValue(doc.DOIs)
	return ids
}

func nonNegative(v *int, field string, log *slog.Logger) int {
	if v == nil {
		log.Warn("missing count, using 0", "field", field)
		return 0
	}
	if *v < 0 {
		log.Warn("negative count, using 0", "field", field, "value", *v)
		return 0
	}
	return *v
}

// parseOptionalDate parses YYYY-MM-DD, YYYY-MM or YYYY. Missing month and day
// default to 1.
func parseOptionalDate(s *string) (time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return time.Time{}, errAbsent
	}
	return ParseDate(*s)
}

// ParseDate parses YYYY-MM-DD, YYYY-MM or YYYY into a UTC date.
func ParseDate(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) > 3 {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}

	ymd := []int{0, 1, 1}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
		}
		ymd[i] = n
	}
	return makeDate(ymd[0], ymd[1], ymd[2])
}

func publicationYear(doc Document) (time.Time, error) {
	for _, info := range doc.PublicationInfo {
		if info.Year == "" {
			continue
		}
		y, ok := info.Year.Int()
		if !ok {
			return time.Time{}, fmt.Errorf("invalid year %q", info.Year)
		}
		return makeDate(y, 1, 1)
	}
	return time.Time{}, errAbsent
}

// texKeyYear reads the four digits following the first colon of the
// citation key, e.g. 1967 in "Weinberg:1967tq".
func texKeyYear(doc Document) (time.Time, error) {
	_, rest, found := strings.Cut(primaryKey(doc), ":")
	if !found {
		return time.Time{}, errAbsent
	}
	if len(rest) < 4 {
		return time.Time{}, fmt.Errorf("no year in key suffix %q", rest)
	}
	y, err := strconv.Atoi(rest[:4])
	if err != nil {
		return time.Time{}, fmt.Errorf("no year in key suffix %q", rest)
	}
	return makeDate(y, 1, 1)
}

// makeDate returns the date only if it is a real calendar day; time.Date would
// silently normalize 2020-02-31 to March.
func makeDate(year, month, day int) (time.Time, error) {
	if year < 1 || year > 9999 {
		return time.Time{}, fmt.Errorf("year %d out of range", year)
	}
	if month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("month %d out of range", month)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if day < 1 || t.Day() != day {
		return time.Time{}, fmt.Errorf("day %d out of range for %d-%02d", day, year, month)
	}
	return t, nil
}
