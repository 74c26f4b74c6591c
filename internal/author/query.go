// Package author matches coauthor queries against record authors.
package author

import (
	"strings"

	"github.com/matsen/insp/internal/record"
)

// Query is a parsed coauthor query.
type Query struct {
	BAI   string // set when the query is an INSPIRE BAI such as "E.Witten.1"
	First string // may be empty for last-name-only queries
	Last  string
}

// ParseQuery parses a coauthor query.
//
// Supported formats:
//   - "E.Witten.1"      → BAI
//   - "Witten"          → last="Witten"
//   - "Edward Witten"   → first="Edward", last="Witten"
//   - "Witten, Edward"  → first="Edward", last="Witten"
func ParseQuery(input string) Query {
	input = strings.TrimSpace(input)
	if input == "" {
		return Query{}
	}

	if isBAI(input) {
		return Query{BAI: input}
	}

	if last, first, found := strings.Cut(input, ","); found && strings.TrimSpace(last) != "" {
		return Query{First: strings.TrimSpace(first), Last: strings.TrimSpace(last)}
	}

	parts := strings.Fields(input)
	if len(parts) == 1 {
		return Query{Last: parts[0]}
	}
	return Query{
		First: strings.Join(parts[:len(parts)-1], " "),
		Last:  parts[len(parts)-1],
	}
}

// isBAI reports whether s looks like "Initials.Surname.N".
func isBAI(s string) bool {
	if strings.ContainsAny(s, " ,") {
		return false
	}
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return false
	}
	for _, r := range s[i+1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// IsZero reports whether the query is empty.
func (q Query) IsZero() bool {
	return q == Query{}
}

// Matches checks if the query matches a given author.
//
// BAI queries compare identifiers exactly. Name queries require the last name
// to match and the first name, if given, to be a prefix of the author's first
// name. Both comparisons ignore case and diacritics, so "Gursey" matches
// "Gürsey" and "Ed Witten" matches "Edward Witten".
func (q Query) Matches(p record.Person) bool {
	if q.BAI != "" {
		return p.BAI == q.BAI
	}
	if q.Last == "" {
		return false
	}

	last := p.LastName
	first := p.FirstName
	if last == "" {
		last, first = splitName(p.FullName)
	}
	if record.FoldName(q.Last) != record.FoldName(last) {
		return false
	}
	if q.First == "" {
		return true
	}
	return strings.HasPrefix(record.FoldName(first), record.FoldName(q.First))
}

// MatchesAny checks if the query matches any author in the list.
func (q Query) MatchesAny(authors []record.Person) bool {
	for _, a := range authors {
		if q.Matches(a) {
			return true
		}
	}
	return false
}

// AllMatch checks that every query matches at least one author.
func AllMatch(queries []Query, authors []record.Person) bool {
	for _, q := range queries {
		if !q.MatchesAny(authors) {
			return false
		}
	}
	return true
}

func splitName(full string) (last, first string) {
	last, first, _ = strings.Cut(full, ",")
	return strings.TrimSpace(last), strings.TrimSpace(first)
}
