package format

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/matsen/insp/internal/record"
)

var (
	bibHeader = regexp.MustCompile(`@\w+\{([^,]+),`)
	bibField  = regexp.MustCompile(`^\s*(\w+)\s*=\s*[\{"]([^\}"]+)[\}"]`)
)

// BibIndex holds the entries already present in a .bib file, so records can be
// appended to it without duplicates.
type BibIndex struct {
	keys    map[string]struct{}
	dois    map[string]struct{}
	eprints map[string]struct{}
}

// NewBibIndex creates an empty index.
func NewBibIndex() *BibIndex {
	return &BibIndex{
		keys:    make(map[string]struct{}),
		dois:    make(map[string]struct{}),
		eprints: make(map[string]struct{}),
	}
}

// HasRecord reports whether rec is already in the index, by DOI, arXiv
// number or citation key.
func (idx *BibIndex) HasRecord(rec record.Record) bool {
	if doi := normalizeDOI(rec.Identifiers.DOI); doi != "" {
		if _, ok := idx.dois[doi]; ok {
			return true
		}
	}
	if eprint := strings.TrimSpace(rec.Identifiers.ArxivNumber); eprint != "" {
		if _, ok := idx.eprints[eprint]; ok {
			return true
		}
	}
	_, ok := idx.keys[rec.Key]
	return ok
}

// Len returns the number of indexed entries.
func (idx *BibIndex) Len() int {
	return len(idx.keys)
}

// ReadBibIndex indexes BibTeX text. Fields are attributed to the entry whose
// header most recently preceded them.
func ReadBibIndex(r io.Reader) (*BibIndex, error) {
	idx := NewBibIndex()
	inEntry := false
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if m := bibHeader.FindStringSubmatch(line); m != nil {
			idx.keys[strings.TrimSpace(m[1])] = struct{}{}
			inEntry = true
			continue
		}
		m := bibField.FindStringSubmatch(line)
		if m == nil || !inEntry {
			continue
		}
		switch strings.ToLower(m[1]) {
		case "doi":
			if doi := normalizeDOI(m[2]); doi != "" {
				idx.dois[doi] = struct{}{}
			}
		case "eprint":
			idx.eprints[strings.TrimSpace(m[2])] = struct{}{}
		}
	}
	return idx, scanner.Err()
}

// ParseBibFile indexes the .bib file at path. A missing file yields an empty
// index.
func ParseBibFile(path string) (*BibIndex, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewBibIndex(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadBibIndex(f)
}

// normalizeDOI lowercases doi and strips a resolver or "doi:" prefix.
func normalizeDOI(doi string) string {
	doi = strings.ToLower(strings.TrimSpace(doi))
	for _, prefix := range []string{"https://doi.org/", "https://dx.doi.org/", "http://doi.org/", "doi.org/", "doi:"} {
		if rest, ok := strings.CutPrefix(doi, prefix); ok {
			return rest
		}
	}
	return doi
}

// AppendToBibFile appends content to the file at path, creating it if needed.
func AppendToBibFile(path, content string) error {
	if content == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString("\n" + content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
