package record

import (
	"encoding/json"
	"testing"
)

func TestBuildPerson(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Person
	}{
		{
			name: "literature author with ids",
			data: `{"full_name": "Higgs, Peter W.", "first_name": "Peter W.", "last_name": "Higgs", "recid": 1013460,
				"ids": [{"schema": "ORCID", "value": "0000-0001-2345-6789"}, {"schema": "INSPIRE BAI", "value": "P.W.Higgs.1"}],
				"affiliations": [{"value": "Edinburgh U."}]}`,
			want: Person{
				BAI: "P.W.Higgs.1", RecID: "1013460", ORCID: "0000-0001-2345-6789",
				FirstName: "Peter W.", LastName: "Higgs", FullName: "Higgs, Peter W.", Affiliation: "Edinburgh U.",
			},
		},
		{
			name: "names split from full name",
			data: `{"full_name": "Englert, F."}`,
			want: Person{FirstName: "F.", LastName: "Englert", FullName: "Englert, F.", Affiliation: UnknownAffiliation},
		},
		{
			name: "raw affiliation fallback",
			data: `{"full_name": "Brout, R.", "raw_affiliations": [{"value": "Brussels U."}]}`,
			want: Person{FirstName: "R.", LastName: "Brout", FullName: "Brout, R.", Affiliation: "Brussels U."},
		},
		{
			name: "author profile",
			data: `{"name": {"value": "Guralnik, Gerald S."}, "control_number": "1012345",
				"ids": [{"schema": "INSPIRE BAI", "value": "G.S.Guralnik.1"}]}`,
			want: Person{
				BAI: "G.S.Guralnik.1", RecID: "1012345",
				FirstName: "Gerald S.", LastName: "Guralnik", FullName: "Guralnik, Gerald S.", Affiliation: UnknownAffiliation,
			},
		},
		{
			name: "explicit bai wins over ids",
			data: `{"full_name": "Kibble, T.W.B.", "bai": "T.W.B.Kibble.1", "ids": [{"schema": "INSPIRE BAI", "value": "T.Kibble.2"}]}`,
			want: Person{BAI: "T.W.B.Kibble.1", FirstName: "T.W.B.", LastName: "Kibble", FullName: "Kibble, T.W.B.", Affiliation: UnknownAffiliation},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var raw RawAuthor
			if err := json.Unmarshal([]byte(tt.data), &raw); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got := BuildPerson(raw); got != tt.want {
				t.Errorf("BuildPerson() = %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestPerson_SameAs(t *testing.T) {
	tests := []struct {
		name string
		a, b Person
		want bool
	}{
		{"same bai", Person{BAI: "A.1", FullName: "A"}, Person{BAI: "A.1", FullName: "B"}, true},
		{"different bai same name", Person{BAI: "A.1", FullName: "A"}, Person{BAI: "A.2", FullName: "A"}, false},
		{"one bai missing", Person{BAI: "A.1", FullName: "Doe, J."}, Person{FullName: "Doe, J."}, true},
		{"no ids", Person{FullName: "Doe, J."}, Person{FullName: "Doe, Jane"}, false},
		{"empty", Person{}, Person{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SameAs(tt.b); got != tt.want {
				t.Errorf("SameAs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerson_Key(t *testing.T) {
	if got := (Person{BAI: "S.Weinberg.1", FullName: "Weinberg, S."}).Key(); got != "S.Weinberg.1" {
		t.Errorf("Key() = %q, want BAI", got)
	}
	if got := (Person{FullName: "Weinberg, S."}).Key(); got != "Weinberg, S." {
		t.Errorf("Key() = %q, want full name", got)
	}
}
