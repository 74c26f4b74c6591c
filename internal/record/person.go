package record

import (
	"strings"
	"time"
)

// UnknownAffiliation is used when an author declares no affiliation.
const UnknownAffiliation = "Unknown"

// Schema tags used in author id lists.
const (
	SchemaBAI   = "INSPIRE BAI"
	SchemaID    = "INSPIRE ID"
	SchemaORCID = "ORCID"
)

// RawAuthor is an author sub-document, either an entry of a literature
// record's authors list or the metadata of an author profile.
type RawAuthor struct {
	FullName        string         `json:"full_name"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	BAI             string         `json:"bai"`
	RecID           FlexibleString `json:"recid"`
	ControlNumber   FlexibleString `json:"control_number"`
	IDs             []ValueEntry   `json:"ids"`
	Affiliations    []ValueEntry   `json:"affiliations"`
	RawAffiliations []ValueEntry   `json:"raw_affiliations"`
	Name            *ProfileName   `json:"name"`
}

// ProfileName is the name block of an author profile.
type ProfileName struct {
	Value         string `json:"value"` // "Last, First"
	PreferredName string `json:"preferred_name,omitempty"`
}

// Person is one normalized author identity.
type Person struct {
	BAI         string    `json:"bai,omitempty"`
	RecID       string    `json:"recid,omitempty"`
	ORCID       string    `json:"orcid,omitempty"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	FullName    string    `json:"full_name"`
	Affiliation string    `json:"affiliation"`
	LastUpdate  time.Time `json:"last_update"`
}

// Key returns the identity used for deduplication: the BAI, or the full name
// when the BAI is unknown.
func (p Person) Key() string {
	if p.BAI != "" {
		return p.BAI
	}
	return p.FullName
}

// SameAs reports whether p and o denote the same author. BAIs are compared when
// both are known, full names otherwise.
func (p Person) SameAs(o Person) bool {
	if p.BAI != "" && o.BAI != "" {
		return p.BAI == o.BAI
	}
	return p.FullName != "" && p.FullName == o.FullName
}

// BuildPerson maps a raw author sub-document to a Person. Absent fields become
// empty strings; LastUpdate is left zero for the caller to set.
func BuildPerson(raw RawAuthor) Person {
	p := Person{
		BAI:       strings.TrimSpace(raw.BAI),
		RecID:     raw.RecID.String(),
		FirstName: strings.TrimSpace(raw.FirstName),
		LastName:  strings.TrimSpace(raw.LastName),
		FullName:  strings.TrimSpace(raw.FullName),
	}

	if p.FullName == "" && raw.Name != nil {
		p.FullName = strings.TrimSpace(raw.Name.Value)
	}
	if p.FirstName == "" && p.LastName == "" {
		p.LastName, p.FirstName = splitFullName(p.FullName)
	}
	if p.RecID == "" {
		p.RecID = raw.ControlNumber.String()
	}

	for _, id := range raw.IDs {
		switch id.Schema {
		case SchemaBAI:
			if p.BAI == "" {
				p.BAI = id.Value
			}
		case SchemaORCID:
			if p.ORCID == "" {
				p.ORCID = id.Value
			}
		case SchemaID:
			if p.RecID == "" {
				p.RecID = strings.TrimPrefix(id.Value, "INSPIRE-")
			}
		}
	}

	p.Affiliation = firstValue(raw.Affiliations)
	if p.Affiliation == "" {
		p.Affiliation = firstValue(raw.RawAffiliations)
	}
	if p.Affiliation == "" {
		p.Affiliation = UnknownAffiliation
	}

	return p
}

// firstValue returns the first non-empty value of a list.
func firstValue(entries []ValueEntry) string {
	for _, e := range entries {
		if v := strings.TrimSpace(e.Value); v != "" {
			return v
		}
	}
	return ""
}

// splitFullName splits an INSPIRE "Last, First" name.
// Names without a comma are treated as a bare last name.
func splitFullName(full string) (last, first string) {
	last, first, found := strings.Cut(full, ",")
	if !found {
		return strings.TrimSpace(full), ""
	}
	return strings.TrimSpace(last), strings.TrimSpace(first)
}
