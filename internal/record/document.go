package record

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Document is the schema-aware view of one INSPIRE literature metadata object.
//
// Fields the normalizer knows about are decoded into named optional fields.
// Every top-level key, known or not, is also kept verbatim so that fields added
// to the API later survive without code changes (see Field and Extra).
type Document struct {
	TexKeys              []string          `json:"texkeys"`
	Titles               []Title           `json:"titles"`
	DocumentType         []string          `json:"document_type"`
	EarliestDate         *string           `json:"earliest_date"`
	PreprintDate         *string           `json:"preprint_date"`
	PublicationInfo      []PublicationInfo `json:"publication_info"`
	Authors              []RawAuthor       `json:"authors"`
	AuthorCount          *int              `json:"author_count"`
	Citeable             *bool             `json:"citeable"`
	ArxivEprints         []ArxivEprint     `json:"arxiv_eprints"`
	PrimaryArxivCategory []string          `json:"primary_arxiv_category"`
	DOIs                 []ValueEntry      `json:"dois"`
	CitationCount        *int              `json:"citation_count"`
	CitationCountNoSelf  *int              `json:"citation_count_without_self_citations"`
	ControlNumber        int               `json:"control_number"`

	// Extra holds the top-level keys not decoded into a named field.
	Extra map[string]json.RawMessage `json:"-"`

	// Invalid lists known keys whose value had an unexpected type. Their raw
	// value is moved to Extra and the named field is left empty.
	Invalid []string `json:"-"`

	raw map[string]json.RawMessage
}

// Title is one entry of the titles list.
type Title struct {
	Title  string `json:"title"`
	Source string `json:"source,omitempty"`
}

// PublicationInfo is one entry of the publication_info list.
type PublicationInfo struct {
	JournalTitle  string         `json:"journal_title"`
	JournalVolume FlexibleString `json:"journal_volume"`
	JournalIssue  FlexibleString `json:"journal_issue"`
	ArtID         FlexibleString `json:"artid"`
	PageStart     FlexibleString `json:"page_start"`
	Year          FlexibleString `json:"year"`
}

// ArxivEprint is one entry of the arxiv_eprints list.
type ArxivEprint struct {
	Value      string   `json:"value"`
	Categories []string `json:"categories"`
}

// ValueEntry is the {"schema": ..., "value": ...} shape INSPIRE uses for ids,
// affiliations and DOIs.
type ValueEntry struct {
	Schema string `json:"schema,omitempty"`
	Value  string `json:"value"`
}

// MapDocument decodes a raw metadata object. It fails only when data is not a
// JSON object; missing or mistyped fields are left for the normalizer.
func MapDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decoding document: %w", err)
	}
	return doc, nil
}

// UnmarshalJSON decodes known keys one at a time so that a single mistyped
// field does not discard the rest of the document.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = Document{
		Extra: make(map[string]json.RawMessage),
		raw:   raw,
	}

	targets := d.targets()
	for key, value := range raw {
		target, known := targets[key]
		if !known {
			d.Extra[key] = value
			continue
		}
		// Decode into a fresh value so a failed decode leaves the field empty.
		fresh := reflect.New(reflect.TypeOf(target).Elem())
		if err := json.Unmarshal(value, fresh.Interface()); err != nil {
			d.Extra[key] = value
			d.Invalid = append(d.Invalid, key)
			continue
		}
		reflect.ValueOf(target).Elem().Set(fresh.Elem())
	}
	sort.Strings(d.Invalid)

	return nil
}

// targets maps JSON keys to the named field they decode into.
func (d *Document) targets() map[string]any {
	return map[string]any{
		"texkeys":                               &d.TexKeys,
		"titles":                                &d.Titles,
		"document_type":                         &d.DocumentType,
		"earliest_date":                         &d.EarliestDate,
		"preprint_date":                         &d.PreprintDate,
		"publication_info":                      &d.PublicationInfo,
		"authors":                               &d.Authors,
		"author_count":                          &d.AuthorCount,
		"citeable":                              &d.Citeable,
		"arxiv_eprints":                         &d.ArxivEprints,
		"primary_arxiv_category":                &d.PrimaryArxivCategory,
		"dois":                                  &d.DOIs,
		"citation_count":                        &d.CitationCount,
		"citation_count_without_self_citations": &d.CitationCountNoSelf,
		"control_number":                        &d.ControlNumber,
	}
}

// Field returns the verbatim value of any top-level key.
func (d Document) Field(key string) (json.RawMessage, bool) {
	v, ok := d.raw[key]
	return v, ok
}

// Keys returns every top-level key of the source document, sorted.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d.raw))
	for k := range d.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
