package format

import (
	"strconv"
	"strings"

	"github.com/matsen/insp/internal/record"
)

// Defaults for PublicationListOptions.
const (
	DefaultExcludeAuthorCount = 10
	DefaultWellCited          = 10
)

// PublicationListOptions controls PublicationList.
type PublicationListOptions struct {
	// IncludeTitle prefixes each entry with the record title.
	IncludeTitle bool

	// IncludeCitations appends "[citations: N]" to cited records.
	IncludeCitations bool

	// WellCited is the citation count above which N is set in bold. Zero means
	// DefaultWellCited.
	WellCited int

	// ExcludeAuthorCount drops records declaring at least this many authors.
	// It is also the author threshold of the citation line.
	ExcludeAuthorCount int

	// SplitPeerReview lists published records before unpublished ones under
	// separate headings.
	SplitPeerReview bool

	// LaTeX wraps entries in enumerate environments and prefixes "\item".
	LaTeX bool

	// Citation controls the arXiv suffix of each entry.
	Citation record.CitationOptions
}

// DefaultPublicationListOptions returns the options used by the CLI when no
// flags are given.
func DefaultPublicationListOptions() PublicationListOptions {
	return PublicationListOptions{
		IncludeTitle:       true,
		IncludeCitations:   true,
		WellCited:          DefaultWellCited,
		ExcludeAuthorCount: DefaultExcludeAuthorCount,
	}
}

const (
	peerReviewedHeading    = "Peer-reviewed publications"
	notPeerReviewedHeading = "Under review or non-peer reviewed publications"
)

// PublicationList renders recs, in the given order, one entry per line:
//
//	A Model of Leptons, Weinberg, Phys.Rev.Lett. 19 (1967) 21 1264, 1967, [citations: \textbf{15000}].
func PublicationList(recs []record.Record, opts PublicationListOptions) string {
	exclude := opts.ExcludeAuthorCount
	if exclude <= 0 {
		exclude = DefaultExcludeAuthorCount
	}
	citeOpts := opts.Citation
	citeOpts.AuthorThreshold = exclude

	var published, unpublished, all strings.Builder
	for _, rec := range recs {
		if rec.AuthorCount >= exclude {
			continue
		}
		entry := publicationEntry(rec, opts, citeOpts)
		all.WriteString(entry)
		if rec.Published() {
			published.WriteString(entry)
		} else {
			unpublished.WriteString(entry)
		}
	}

	var out string
	switch {
	case opts.SplitPeerReview && opts.LaTeX:
		out = `\textbf{` + peerReviewedHeading + "}\n" + enumerate(published.String()) + "\n" +
			`\textbf{` + notPeerReviewedHeading + "}\n" + enumerate(unpublished.String())
	case opts.SplitPeerReview:
		out = peerReviewedHeading + ":\n" + published.String() + "\n" +
			notPeerReviewedHeading + ":\n" + unpublished.String()
	case opts.LaTeX:
		out = enumerate(all.String())
	default:
		out = all.String()
	}
	return strings.ReplaceAll(out, "  ", " ")
}

func publicationEntry(rec record.Record, opts PublicationListOptions, citeOpts record.CitationOptions) string {
	var b strings.Builder
	if opts.LaTeX {
		b.WriteString(`\item `)
	}
	if opts.IncludeTitle && rec.Title != "" {
		b.WriteString(rec.Title + ", ")
	}
	b.WriteString(strings.TrimSuffix(rec.Citation(citeOpts), "."))

	if opts.IncludeCitations && rec.CitationCount > 0 {
		n := strconv.Itoa(rec.CitationCount)
		wellCited := opts.WellCited
		if wellCited <= 0 {
			wellCited = DefaultWellCited
		}
		if rec.CitationCount > wellCited {
			n = `\textbf{` + n + `}`
		}
		b.WriteString(", [citations: " + n + "]")
	}
	b.WriteString(".\n")
	return b.String()
}

func enumerate(body string) string {
	return "\\begin{enumerate}\n" + body + "\\end{enumerate}"
}
