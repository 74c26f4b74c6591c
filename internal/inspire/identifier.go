package inspire

import (
	"errors"
	"net/url"
	"strings"
)

// IDKind is the kind of an author identifier.
type IDKind string

const (
	KindBAI   IDKind = "bai"
	KindORCID IDKind = "orcid"
	KindRecID IDKind = "recid"
)

// ErrEmptyIdentifier is returned by ParseIdentifier for blank input.
var ErrEmptyIdentifier = errors.New("empty author identifier")

// Identifier is an author identifier classified by shape.
type Identifier struct {
	Kind  IDKind `json:"kind"`
	Value string `json:"value"`
}

// ParseIdentifier classifies an author identifier:
//   - 0000-0002-9584-8877 → ORCID (three hyphens, 19 characters)
//   - 1621061             → INSPIRE record id (all digits)
//   - E.Witten.1          → BAI (anything else)
func ParseIdentifier(s string) (Identifier, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Identifier{}, ErrEmptyIdentifier
	}

	if strings.Count(s, "-") == 3 && len(s) == 19 {
		return Identifier{Kind: KindORCID, Value: s}, nil
	}
	if isDigits(s) {
		return Identifier{Kind: KindRecID, Value: s}, nil
	}
	return Identifier{Kind: KindBAI, Value: s}, nil
}

func (id Identifier) String() string {
	return id.Value
}

// profilePath returns the API path and query that look up the author profile.
func (id Identifier) profilePath() (string, url.Values) {
	switch id.Kind {
	case KindORCID:
		return "/orcid/" + url.PathEscape(id.Value), nil
	case KindRecID:
		return "/authors/" + url.PathEscape(id.Value), nil
	default:
		return "/authors", url.Values{"q": {"ids.value:" + id.Value}}
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
