package record

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultAuthorThreshold is the declared author count above which citations
// show only the first author.
const DefaultAuthorThreshold = 5

// ArxivAbsURL is the prefix of arXiv abstract pages.
const ArxivAbsURL = "https://arxiv.org/abs/"

// LinkFormat selects how the arXiv suffix of a citation is rendered as a link.
type LinkFormat string

const (
	LinkNone        LinkFormat = ""
	LinkLaTeX       LinkFormat = "latex"
	LinkLaTeXURL    LinkFormat = "latex_url"
	LinkMarkdown    LinkFormat = "markdown"
	LinkMarkdownURL LinkFormat = "markdown_url"
	LinkHTML        LinkFormat = "html"
	LinkHTMLURL     LinkFormat = "html_url"
)

// LinkFormats lists the accepted link formats.
var LinkFormats = []LinkFormat{LinkLaTeX, LinkLaTeXURL, LinkMarkdown, LinkMarkdownURL, LinkHTML, LinkHTMLURL}

// ParseLinkFormat validates a link format name. The empty string means no link.
func ParseLinkFormat(s string) (LinkFormat, error) {
	f := LinkFormat(strings.ToLower(strings.TrimSpace(s)))
	if f == LinkNone {
		return LinkNone, nil
	}
	for _, valid := range LinkFormats {
		if f == valid {
			return f, nil
		}
	}
	return LinkNone, fmt.Errorf("unknown arXiv link format %q (valid: %v)", s, LinkFormats)
}

// CitationOptions controls Citation rendering.
type CitationOptions struct {
	// AuthorThreshold: records declaring more authors show "<Last> et al".
	// Zero means DefaultAuthorThreshold.
	AuthorThreshold int

	// OmitArxivCategory drops the "[hep-ph]" tag from the arXiv suffix.
	OmitArxivCategory bool

	// ArxivLink renders the arXiv suffix as a link.
	ArxivLink LinkFormat
}

// ArxivURL returns the arXiv abstract URL, or "" if the record has no eprint.
func (r Record) ArxivURL() string {
	if r.Identifiers.ArxivNumber == "" {
		return ""
	}
	return ArxivAbsURL + r.Identifiers.ArxivNumber
}

// ArxivLink renders name as a link to the arXiv abstract page. Records without an
// eprint and unknown formats render name unchanged.
func (r Record) ArxivLink(name string, format LinkFormat) string {
	url := r.ArxivURL()
	if url == "" {
		return name
	}
	switch format {
	case LinkLaTeX:
		return `\href{` + url + `}{` + name + `}`
	case LinkLaTeXURL:
		return `\url{` + url + `}`
	case LinkMarkdown:
		return "[" + name + "](" + url + ")"
	case LinkMarkdownURL:
		return url
	case LinkHTML:
		return `<a href="` + url + `">` + name + `</a>`
	case LinkHTMLURL:
		return `<a href="` + url + `">` + url + `</a>`
	default:
		return name
	}
}

// arxivSuffix returns ", arXiv:NUMBER [category]" or "" without an eprint.
func (r Record) arxivSuffix(opts CitationOptions) string {
	if r.Identifiers.ArxivNumber == "" {
		return ""
	}
	label := "arXiv:" + r.Identifiers.ArxivNumber
	if r.Identifiers.ArxivCategory != "" && !opts.OmitArxivCategory {
		label += " [" + r.Identifiers.ArxivCategory + "]"
	}
	if opts.ArxivLink != LinkNone {
		label = r.ArxivLink(label, opts.ArxivLink)
	}
	return ", " + label
}

// Citation renders the record as a one-line reference, e.g.
//
//	Weinberg, Phys. Rev. Lett. 19 (1967) 21 1264, 1967.
//	Aad et al, preprint, 2021, arXiv:2101.01234 [hep-ex].
func (r Record) Citation(opts CitationOptions) string {
	threshold := opts.AuthorThreshold
	if threshold <= 0 {
		threshold = DefaultAuthorThreshold
	}

	authors := r.AuthorList(3, false)
	if r.AuthorCount > threshold {
		authors = r.AuthorList(1, false)
	}

	year := r.Year()
	suffix := r.arxivSuffix(opts)

	var s string
	switch {
	case r.Published():
		s = fmt.Sprintf("%s, %s, %d%s.", authors, r.Venue.String(), year, suffix)
	case r.DocumentType == Article:
		s = fmt.Sprintf("%s, preprint, %d%s.", authors, year, suffix)
	case r.DocumentType == ConferencePaper, r.DocumentType == Proceedings, r.DocumentType == Report:
		s = fmt.Sprintf("%s, proceedings, %d%s.", authors, year, suffix)
	case r.DocumentType == Thesis:
		s = fmt.Sprintf("%s, thesis, %d%s.", authors, year, suffix)
	default:
		s = fmt.Sprintf("%s, %d%s.", authors, year, suffix)
	}
	return NormalizeWhitespace(strings.TrimPrefix(s, ", "))
}

// String renders the citation with default options.
func (r Record) String() string {
	return r.Citation(CitationOptions{})
}

var spaceBeforePunct = regexp.MustCompile(` +([,.])`)

// NormalizeWhitespace collapses runs of whitespace to one space, removes spaces
// before commas and periods, and trims the result.
func NormalizeWhitespace(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return spaceBeforePunct.ReplaceAllString(s, "$1")
}
