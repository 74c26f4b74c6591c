package author

import (
	"testing"

	"github.com/matsen/insp/internal/record"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Query
	}{
		{"single word is last name", "Witten", Query{Last: "Witten"}},
		{"two words is First Last", "Edward Witten", Query{First: "Edward", Last: "Witten"}},
		{"three words", "Peter W. Higgs", Query{First: "Peter W.", Last: "Higgs"}},
		{"comma format", "Witten, Edward", Query{First: "Edward", Last: "Witten"}},
		{"bai", "E.Witten.1", Query{BAI: "E.Witten.1"}},
		{"initials are not a bai", "E.Witten", Query{Last: "E.Witten"}},
		{"whitespace", "  Higgs  ", Query{Last: "Higgs"}},
		{"empty", "", Query{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuery(tt.input)
			if got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestQueryMatches(t *testing.T) {
	witten := record.Person{BAI: "E.Witten.1", FirstName: "Edward", LastName: "Witten", FullName: "Witten, Edward"}
	gursey := record.Person{FullName: "Gürsey, Feza"}

	tests := []struct {
		name   string
		query  string
		person record.Person
		want   bool
	}{
		{"last name", "Witten", witten, true},
		{"case insensitive", "witten", witten, true},
		{"first name prefix", "Ed Witten", witten, true},
		{"first name mismatch", "Ann Witten", witten, false},
		{"different last name", "Wit", witten, false},
		{"bai", "E.Witten.1", witten, true},
		{"other bai", "E.Witten.2", witten, false},
		{"diacritics folded", "Gursey", gursey, true},
		{"full name fallback with first", "Feza Gürsey", gursey, true},
		{"empty query", "", witten, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseQuery(tt.query).Matches(tt.person); got != tt.want {
				t.Errorf("ParseQuery(%q).Matches(%+v) = %v, want %v", tt.query, tt.person, got, tt.want)
			}
		})
	}
}

func TestAllMatch(t *testing.T) {
	authors := []record.Person{
		{FirstName: "Juan", LastName: "Maldacena", FullName: "Maldacena, Juan"},
		{FirstName: "Edward", LastName: "Witten", FullName: "Witten, Edward"},
	}

	tests := []struct {
		name    string
		queries []string
		want    bool
	}{
		{"no queries", nil, true},
		{"one match", []string{"Witten"}, true},
		{"both match", []string{"Witten", "Maldacena"}, true},
		{"one missing", []string{"Witten", "Polchinski"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var queries []Query
			for _, q := range tt.queries {
				queries = append(queries, ParseQuery(q))
			}
			if got := AllMatch(queries, authors); got != tt.want {
				t.Errorf("AllMatch(%v) = %v, want %v", tt.queries, got, tt.want)
			}
		})
	}
}
