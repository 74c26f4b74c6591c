package record

import (
	"strings"
)

// MaxBibTeXAuthors caps the BibTeX-style author list.
const MaxBibTeXAuthors = 2000

// AuthorList renders up to limit authors joined by ", ". The final author of the
// list is always rendered last. With limit 1 the result is "<Last> et al" when the
// declared author count exceeds one, otherwise just the surname. A limit <= 0
// renders every materialized author.
//
// withFirstName renders "First Last" instead of "Last". Initials are normalized
// to "A. B." spacing.
func (r Record) AuthorList(limit int, withFirstName bool) string {
	if len(r.Authors) == 0 {
		return ""
	}

	if limit == 1 {
		last := forceInitials(surname(r.Authors[0]))
		if r.AuthorCount > 1 || len(r.Authors) > 1 {
			return last + " et al"
		}
		return last
	}

	n := len(r.Authors)
	if limit > 0 && limit < n {
		n = limit
	}
	if r.AuthorCount > 0 && r.AuthorCount < n {
		n = r.AuthorCount
	}

	names := make([]string, 0, n)
	for _, a := range r.Authors[:n-1] {
		names = append(names, displayName(a, withFirstName))
	}
	names = append(names, displayName(r.Authors[len(r.Authors)-1], withFirstName))
	return strings.Join(names, ", ")
}

// BibTeXAuthorList renders full names joined by " and ". It reports whether the
// list was cut at MaxBibTeXAuthors.
func (r Record) BibTeXAuthorList() (string, bool) {
	authors := r.Authors
	truncated := false
	if len(authors) > MaxBibTeXAuthors {
		authors = authors[:MaxBibTeXAuthors]
		truncated = true
	}

	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.FullName)
	}
	return strings.Join(names, " and "), truncated
}

func displayName(p Person, withFirstName bool) string {
	if !withFirstName || p.FirstName == "" {
		return forceInitials(surname(p))
	}
	return forceInitials(p.FirstName + " " + surname(p))
}

// surname returns the last name, falling back to the part of the full name
// before the comma.
func surname(p Person) string {
	if p.LastName != "" {
		return p.LastName
	}
	last, _ := splitFullName(p.FullName)
	return last
}

// forceInitials rewrites "A.B. Name" and "A.B.Name" as "A. B. Name".
func forceInitials(name string) string {
	name = strings.ReplaceAll(name, ". ", ".")
	name = strings.ReplaceAll(name, ".", ". ")
	return strings.Join(strings.Fields(name), " ")
}
