package format

import (
	"strings"
	"testing"

	"github.com/matsen/insp/internal/record"
)

const (
	weinbergEntry = `A Model of Leptons, Weinberg, Phys.Rev.Lett. 19 (1967) 21 1264, 1967, [citations: \textbf{15000}].` + "\n"
	preprintEntry = "Quarks & Gluons at 100% Efficiency, Doe, Roe, preprint, 2021, arXiv:2101.01234 [hep-ph].\n"
)

func TestPublicationList_Default(t *testing.T) {
	got := PublicationList([]record.Record{weinberg(), preprint()}, DefaultPublicationListOptions())
	want := weinbergEntry + preprintEntry
	if got != want {
		t.Errorf("PublicationList() =\n%s\nwant\n%s", got, want)
	}
}

func TestPublicationList_SplitLaTeX(t *testing.T) {
	opts := DefaultPublicationListOptions()
	opts.SplitPeerReview = true
	opts.LaTeX = true

	got := PublicationList([]record.Record{preprint(), weinberg()}, opts)
	want := `\textbf{Peer-reviewed publications}` + "\n" +
		"\\begin{enumerate}\n\\item " + weinbergEntry + "\\end{enumerate}\n" +
		`\textbf{Under review or non-peer reviewed publications}` + "\n" +
		"\\begin{enumerate}\n\\item " + preprintEntry + "\\end{enumerate}"
	if got != want {
		t.Errorf("PublicationList() =\n%s\nwant\n%s", got, want)
	}
}

func TestPublicationList_SplitPlain(t *testing.T) {
	opts := DefaultPublicationListOptions()
	opts.SplitPeerReview = true

	got := PublicationList([]record.Record{preprint(), weinberg()}, opts)
	want := "Peer-reviewed publications:\n" + weinbergEntry + "\n" +
		"Under review or non-peer reviewed publications:\n" + preprintEntry
	if got != want {
		t.Errorf("PublicationList() =\n%s\nwant\n%s", got, want)
	}
}

func TestPublicationList_LaTeXOnly(t *testing.T) {
	opts := DefaultPublicationListOptions()
	opts.LaTeX = true

	got := PublicationList([]record.Record{weinberg()}, opts)
	want := "\\begin{enumerate}\n\\item " + weinbergEntry + "\\end{enumerate}"
	if got != want {
		t.Errorf("PublicationList() =\n%s\nwant\n%s", got, want)
	}
}

func TestPublicationList_ExcludesLargeCollaborations(t *testing.T) {
	big := preprint()
	big.Key = "ATLAS:2012yve"
	big.AuthorCount = 10

	got := PublicationList([]record.Record{weinberg(), big}, DefaultPublicationListOptions())
	if got != weinbergEntry {
		t.Errorf("PublicationList() =\n%s\nwant only the Weinberg entry", got)
	}

	opts := DefaultPublicationListOptions()
	opts.ExcludeAuthorCount = 11
	got = PublicationList([]record.Record{big}, opts)
	if !strings.Contains(got, "Doe, Roe, preprint, 2021") {
		t.Errorf("record under the raised limit should be listed, got:\n%s", got)
	}
}

func TestPublicationList_Citations(t *testing.T) {
	tests := []struct {
		name      string
		count     int
		wellCited int
		include   bool
		want      string
	}{
		{"at threshold not bold", 10, 0, true, "[citations: 10]"},
		{"above threshold bold", 11, 0, true, `[citations: \textbf{11}]`},
		{"custom threshold", 11, 20, true, "[citations: 11]"},
		{"zero citations omitted", 0, 0, true, ""},
		{"disabled", 500, 0, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := weinberg()
			rec.CitationCount = tt.count
			opts := DefaultPublicationListOptions()
			opts.WellCited = tt.wellCited
			opts.IncludeCitations = tt.include

			got := PublicationList([]record.Record{rec}, opts)
			if tt.want == "" {
				if strings.Contains(got, "citations:") {
					t.Errorf("PublicationList() = %q, want no citation count", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("PublicationList() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestPublicationList_NoTitle(t *testing.T) {
	opts := DefaultPublicationListOptions()
	opts.IncludeTitle = false
	opts.IncludeCitations = false

	got := PublicationList([]record.Record{weinberg()}, opts)
	want := "Weinberg, Phys.Rev.Lett. 19 (1967) 21 1264, 1967.\n"
	if got != want {
		t.Errorf("PublicationList() = %q, want %q", got, want)
	}
}

func TestPublicationList_ArxivLink(t *testing.T) {
	opts := DefaultPublicationListOptions()
	opts.Citation.ArxivLink = record.LinkMarkdown

	got := PublicationList([]record.Record{preprint()}, opts)
	want := "[arXiv:2101.01234 [hep-ph]](https://arxiv.org/abs/2101.01234)"
	if !strings.Contains(got, want) {
		t.Errorf("PublicationList() = %q, want it to contain %q", got, want)
	}
}
