package format

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/matsen/insp/internal/record"
)

// Slug turns a title into a file name: diacritics stripped, lowercase ASCII
// letters and digits, other runs replaced by a single hyphen. An empty result
// falls back to the slug of fallback.
func Slug(title, fallback string) string {
	if s := slugify(title); s != "" {
		return s
	}
	return slugify(fallback)
}

func slugify(s string) string {
	s = strings.ToLower(record.StripDiacritics(s))
	var b strings.Builder
	hyphen := false
	for _, r := range s {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			hyphen = false
			continue
		}
		if !hyphen && b.Len() > 0 {
			b.WriteByte('-')
			hyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Descriptor is the YAML front matter of a publication's markdown file.
type Descriptor struct {
	Title         string   `yaml:"title"`
	Key           string   `yaml:"key"`
	Date          string   `yaml:"date"`
	Type          string   `yaml:"type"`
	Authors       []string `yaml:"authors"`
	AuthorCount   int      `yaml:"author_count"`
	Venue         string   `yaml:"venue,omitempty"`
	Published     bool     `yaml:"published"`
	DOI           string   `yaml:"doi,omitempty"`
	Arxiv         string   `yaml:"arxiv,omitempty"`
	ArxivCategory string   `yaml:"arxiv_category,omitempty"`
	URL           string   `yaml:"url,omitempty"`
	Citations     int      `yaml:"citations"`
	CitationsSelf int      `yaml:"citations_without_self_citations"`
}

// NewDescriptor builds the front matter of rec.
func NewDescriptor(rec record.Record) Descriptor {
	authors := make([]string, 0, len(rec.Authors))
	for _, a := range rec.Authors {
		authors = append(authors, a.FullName)
	}
	return Descriptor{
		Title:         rec.Title,
		Key:           rec.Key,
		Date:          rec.Date.Format("2006-01-02"),
		Type:          string(rec.DocumentType),
		Authors:       authors,
		AuthorCount:   rec.AuthorCount,
		Venue:         rec.Venue.String(),
		Published:     rec.Published(),
		DOI:           rec.Identifiers.DOI,
		Arxiv:         rec.Identifiers.ArxivNumber,
		ArxivCategory: rec.Identifiers.ArxivCategory,
		URL:           rec.ArxivURL(),
		Citations:     rec.CitationCount,
		CitationsSelf: rec.CitationCountNoSelf,
	}
}

// RenderMarkdown renders rec as YAML front matter followed by its citation.
func RenderMarkdown(rec record.Record, opts record.CitationOptions) ([]byte, error) {
	front, err := yaml.Marshal(NewDescriptor(rec))
	if err != nil {
		return nil, fmt.Errorf("marshal front matter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")
	b.WriteString(rec.Citation(opts))
	b.WriteString("\n")
	return b.Bytes(), nil
}

// WriteMarkdown writes rec to <dir>/<slug>.md and returns the path. When that
// file already describes a different record, the slugged citation key is
// appended to the name.
func WriteMarkdown(dir string, rec record.Record, opts record.CitationOptions) (string, error) {
	data, err := RenderMarkdown(rec, opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	path := markdownPath(dir, rec)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ReadDescriptor parses the front matter of a markdown file written by
// WriteMarkdown.
func ReadDescriptor(data []byte) (Descriptor, error) {
	var d Descriptor
	rest, ok := bytes.CutPrefix(data, []byte("---\n"))
	if !ok {
		return d, fmt.Errorf("missing front matter")
	}
	front, _, ok := bytes.Cut(rest, []byte("\n---\n"))
	if !ok {
		return d, fmt.Errorf("unterminated front matter")
	}
	if err := yaml.Unmarshal(front, &d); err != nil {
		return d, fmt.Errorf("parse front matter: %w", err)
	}
	return d, nil
}

func markdownPath(dir string, rec record.Record) string {
	base := Slug(rec.Title, rec.Key)
	path := filepath.Join(dir, base+".md")
	if key, taken := describedKey(path); !taken || key == rec.Key {
		return path
	}
	return filepath.Join(dir, base+"-"+slugify(rec.Key)+".md")
}

// describedKey returns the citation key in the front matter of the file at
// path. A file that exists but cannot be read as a descriptor is taken with an
// empty key.
func describedKey(path string) (key string, taken bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", !errors.Is(err, fs.ErrNotExist)
	}
	d, err := ReadDescriptor(data)
	if err != nil {
		return "", true
	}
	return d.Key, true
}
