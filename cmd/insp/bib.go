package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/insp/internal/format"
)

var (
	bibFilter filterFlags
	bibAppend string
	bibLocal  bool
)

var bibCmd = &cobra.Command{
	Use:   "bib <author>",
	Short: "Build a BibTeX bibliography of an author's records",
	Long: `Build a BibTeX bibliography of an author's records, most recent first.
Entries are fetched from INSPIRE; an entry INSPIRE cannot supply is generated
from the record and a warning is logged.

With --append, entries whose key or DOI already appear in the file are skipped
and the rest are appended to it.

Examples:
  insp bib S.Weinberg.1 --human > weinberg.bib
  insp bib S.Weinberg.1 --published --append refs.bib
  insp bib S.Weinberg.1 --local --human`,
	Args: cobra.ExactArgs(1),
	RunE: runBib,
}

func init() {
	addFilterFlags(bibCmd, &bibFilter)
	bibCmd.Flags().StringVar(&bibAppend, "append", "", "Append new entries to this .bib file")
	bibCmd.Flags().BoolVar(&bibLocal, "local", false, "Generate every entry locally instead of fetching it")
	rootCmd.AddCommand(bibCmd)
}

func runBib(cmd *cobra.Command, args []string) error {
	f, err := bibFilter.build(cmd)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	opts := format.BibliographyOptions{Logger: logger}
	if bibAppend != "" {
		idx, err := format.ParseBibFile(bibAppend)
		if err != nil {
			exitWithError(ExitDataError, "reading %s: %v", bibAppend, err)
		}
		opts.Skip = idx
	}

	ctx, cancel := commandContext()
	defer cancel()
	client := newClient()
	if !bibLocal {
		opts.Fetcher = client
	}
	a := mustLoadAuthor(ctx, client, args[0])

	recs := a.Records(f)
	text, err := format.Bibliography(ctx, recs, opts)
	if err != nil {
		exitWithError(ExitError, "building bibliography: %v", err)
	}

	if bibAppend != "" {
		if err := format.AppendToBibFile(bibAppend, text); err != nil {
			exitWithError(ExitError, "appending to %s: %v", bibAppend, err)
		}
		added := 0
		for _, rec := range recs {
			if !opts.Skip.HasRecord(rec) {
				added++
			}
		}
		result := StatusResponse{Status: "appended", Paths: []string{bibAppend}, Count: added}
		return output(result, func() {
			outputHuman("Appended %d entries to %s (%d already present)\n", added, bibAppend, len(recs)-added)
		})
	}

	return output(TextResponse{Format: "bibtex", Count: len(recs), Text: text}, func() {
		outputHuman("%s", text)
	})
}
