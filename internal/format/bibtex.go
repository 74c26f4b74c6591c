// Package format renders records as publication lists, BibTeX, coauthor
// rosters and markdown descriptors.
package format

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/matsen/insp/internal/record"
)

// ToBibTeX generates a BibTeX entry from a record. It is used when INSPIRE
// cannot supply the entry itself.
func ToBibTeX(rec record.Record) string {
	entryType := entryType(rec)
	var b strings.Builder

	fmt.Fprintf(&b, "@%s{%s,\n", entryType, rec.Key)

	if authors, truncated := rec.BibTeXAuthorList(); authors != "" {
		if truncated {
			authors += " and others"
		}
		fmt.Fprintf(&b, "    author = {%s},\n", escapeLatex(authors))
	}

	if rec.Title != "" {
		fmt.Fprintf(&b, "    title = {{%s}},\n", escapeLatex(rec.Title))
	}

	if rec.Published() {
		fieldName := "journal"
		if entryType == "inproceedings" {
			fieldName = "booktitle"
		}
		fmt.Fprintf(&b, "    %s = {%s},\n", fieldName, escapeLatex(rec.Venue.JournalTitle))
		if rec.Venue.Volume != "" {
			fmt.Fprintf(&b, "    volume = {%s},\n", rec.Venue.Volume)
		}
		if rec.Venue.Issue != "" {
			fmt.Fprintf(&b, "    number = {%s},\n", rec.Venue.Issue)
		}
		if rec.Venue.ArticleID != "" {
			fmt.Fprintf(&b, "    pages = {%s},\n", rec.Venue.ArticleID)
		}
	}

	if year := bibYear(rec); year != "" {
		fmt.Fprintf(&b, "    year = {%s},\n", year)
	}

	if rec.Identifiers.DOI != "" {
		fmt.Fprintf(&b, "    doi = {%s},\n", rec.Identifiers.DOI)
	}

	if rec.Identifiers.ArxivNumber != "" {
		fmt.Fprintf(&b, "    eprint = {%s},\n", rec.Identifiers.ArxivNumber)
		b.WriteString("    archivePrefix = {arXiv},\n")
		if rec.Identifiers.ArxivCategory != "" {
			fmt.Fprintf(&b, "    primaryClass = {%s},\n", rec.Identifiers.ArxivCategory)
		}
	}

	b.WriteString("}\n")

	return b.String()
}

// entryType returns the BibTeX entry type for a record.
func entryType(rec record.Record) string {
	switch rec.DocumentType {
	case record.Article:
		return "article"
	case record.ConferencePaper, record.Proceedings:
		return "inproceedings"
	case record.Thesis:
		return "phdthesis"
	case record.Report:
		return "techreport"
	default:
		if rec.Published() {
			return "article"
		}
		return "misc"
	}
}

// bibYear prefers the journal year and skips the unresolved-date placeholder.
func bibYear(rec record.Record) string {
	if rec.Venue.Year > 0 {
		return strconv.Itoa(rec.Venue.Year)
	}
	if y := rec.Year(); y > 1 {
		return strconv.Itoa(y)
	}
	return ""
}

// escapeLatex escapes special LaTeX characters.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
		"{", `\{`,
		"}", `\}`,
		"~", `\textasciitilde{}`,
		"^", `\textasciicircum{}`,
	)
	return replacer.Replace(s)
}

// BibTeXFetcher retrieves the canonical BibTeX entry of a citation key.
type BibTeXFetcher interface {
	BibTeX(ctx context.Context, key string) (string, error)
}

// BibliographyOptions configures Bibliography.
type BibliographyOptions struct {
	// Fetcher supplies entries; nil generates every entry locally.
	Fetcher BibTeXFetcher

	// Skip omits records already present in an existing .bib file.
	Skip *BibIndex

	Logger *slog.Logger
}

// Bibliography renders one BibTeX entry per record, separated by blank lines.
// Entries the fetcher cannot supply are generated with ToBibTeX and a warning
// is logged. The only error is the context's.
func Bibliography(ctx context.Context, recs []record.Record, opts BibliographyOptions) (string, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var entries []string
	for _, rec := range recs {
		if opts.Skip != nil && opts.Skip.HasRecord(rec) {
			logger.Debug("entry already in bibliography", "key", rec.Key)
			continue
		}
		if _, truncated := rec.BibTeXAuthorList(); truncated {
			logger.Warn("author list truncated", "key", rec.Key, "authors", len(rec.Authors), "max", record.MaxBibTeXAuthors)
		}

		if opts.Fetcher == nil {
			entries = append(entries, ToBibTeX(rec))
			continue
		}

		entry, err := opts.Fetcher.BibTeX(ctx, rec.Key)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			logger.Warn("could not fetch BibTeX, generating entry locally", "key", rec.Key, "error", err)
			entry = ToBibTeX(rec)
		}
		entries = append(entries, strings.TrimRight(entry, "\n")+"\n")
	}
	return strings.Join(entries, "\n"), nil
}
