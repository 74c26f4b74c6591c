package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matsen/insp/internal/format"
	"github.com/matsen/insp/internal/record"
)

var (
	coauthorsFilter filterFlags
	coauthorsFormat string
	coauthorsOutput string
)

var coauthorsCmd = &cobra.Command{
	Use:   "coauthors <author>",
	Short: "List an author's coauthors",
	Long: `List the coauthors of an author's records, one entry per person, with the
affiliation and the date of the most recent shared record.

With --output the roster is written as CSV or, for a .xlsx path, as a
spreadsheet, using the NSF or DOE column layout.

Examples:
  insp coauthors S.Weinberg.1 --human
  insp coauthors S.Weinberg.1 --after 2021 --max-authors 10 --output coauthors.csv
  insp coauthors S.Weinberg.1 --format doe --output coauthors.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runCoauthors,
}

func init() {
	addFilterFlags(coauthorsCmd, &coauthorsFilter)
	coauthorsCmd.Flags().StringVar(&coauthorsFormat, "format", string(format.RosterNSF), "Roster layout: nsf or doe")
	coauthorsCmd.Flags().StringVarP(&coauthorsOutput, "output", "o", "", "Write the roster to a .csv or .xlsx file")
	rootCmd.AddCommand(coauthorsCmd)
}

// CoauthorsResult is the JSON output for the coauthors command.
type CoauthorsResult struct {
	Identifier string          `json:"identifier"`
	Coauthors  []record.Person `json:"coauthors"`
	Total      int             `json:"total"`
	Path       string          `json:"path,omitempty"`
}

func runCoauthors(cmd *cobra.Command, args []string) error {
	f, err := coauthorsFilter.build(cmd)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	layout, err := format.ParseRosterFormat(coauthorsFormat)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()
	a := mustLoadAuthor(ctx, newClient(), args[0])

	people := a.CoauthorList(f)
	result := CoauthorsResult{Identifier: a.ID.Value, Coauthors: people, Total: len(people)}

	if coauthorsOutput != "" {
		path := coauthorsOutput
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.OutputDir, path)
		}
		if err := writeRoster(path, people, layout); err != nil {
			exitWithError(ExitError, "writing roster: %v", err)
		}
		result.Path = path
	}

	return output(result, func() {
		if result.Path != "" {
			outputHuman("Wrote %d coauthors to %s\n", result.Total, result.Path)
			return
		}
		os.Stdout.WriteString(format.RosterCSV(people, layout))
	})
}

func writeRoster(path string, people []record.Person, layout format.RosterFormat) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return format.WriteRosterXLSX(path, people, layout)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := format.WriteRosterCSV(file, people, layout); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
