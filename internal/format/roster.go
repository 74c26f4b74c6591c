package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matsen/insp/internal/record"
)

// RosterFormat selects the column layout of a coauthor roster.
type RosterFormat string

const (
	// RosterNSF is "Author","Affiliation","Last Active".
	RosterNSF RosterFormat = "nsf"
	// RosterDOE is "Last Name","First Name","Affiliation","Last Active".
	RosterDOE RosterFormat = "doe"
)

// ParseRosterFormat validates a roster format name, ignoring case.
func ParseRosterFormat(s string) (RosterFormat, error) {
	switch f := RosterFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case RosterNSF, RosterDOE:
		return f, nil
	default:
		return "", fmt.Errorf("unknown roster format %q (valid: nsf, doe)", s)
	}
}

// Header returns the column names of the layout.
func (f RosterFormat) Header() []string {
	if f == RosterDOE {
		return []string{"Last Name", "First Name", "Affiliation", "Last Active"}
	}
	return []string{"Author", "Affiliation", "Last Active"}
}

// Row returns the cells of one coauthor. Last Active is the year only.
func (f RosterFormat) Row(p record.Person) []string {
	year := strconv.Itoa(p.LastUpdate.Year())
	if f == RosterDOE {
		return []string{p.LastName, p.FirstName, p.Affiliation, year}
	}
	return []string{p.FullName, p.Affiliation, year}
}

// WriteRosterCSV writes the header and one row per person, every field quoted.
func WriteRosterCSV(w io.Writer, people []record.Person, f RosterFormat) error {
	if _, err := io.WriteString(w, quoteRow(f.Header())); err != nil {
		return err
	}
	for _, p := range people {
		if _, err := io.WriteString(w, quoteRow(f.Row(p))); err != nil {
			return err
		}
	}
	return nil
}

// RosterCSV returns the roster as a string.
func RosterCSV(people []record.Person, f RosterFormat) string {
	var b strings.Builder
	WriteRosterCSV(&b, people, f)
	return b.String()
}

func quoteRow(cells []string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = `"` + strings.ReplaceAll(c, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",") + "\n"
}

const rosterSheet = "Sheet1"

// WriteRosterXLSX saves the roster as a spreadsheet with the same columns as
// the CSV layout.
func WriteRosterXLSX(path string, people []record.Person, f RosterFormat) error {
	book := excelize.NewFile()
	defer book.Close()

	rows := make([][]string, 0, len(people)+1)
	rows = append(rows, f.Header())
	for _, p := range people {
		rows = append(rows, f.Row(p))
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("cell name: %w", err)
			}
			if err := book.SetCellValue(rosterSheet, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if err := book.SaveAs(path); err != nil {
		return fmt.Errorf("save roster %s: %w", path, err)
	}
	return nil
}
