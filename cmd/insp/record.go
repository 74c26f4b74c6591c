package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/insp/internal/format"
	"github.com/matsen/insp/internal/record"
)

var recordBibTeX bool

var recordCmd = &cobra.Command{
	Use:   "record <texkey>",
	Short: "Fetch and normalize one record by citation key",
	Long: `Fetch one INSPIRE literature record by its citation key and print the
normalized record, or its citation line with --human.

With --bibtex the BibTeX entry is printed instead; when INSPIRE cannot supply
it, the entry is generated from the record.

Examples:
  insp record Weinberg:1967tq
  insp record Weinberg:1967tq --human
  insp record Weinberg:1967tq --bibtex`,
	Args: cobra.ExactArgs(1),
	RunE: runRecord,
}

func init() {
	recordCmd.Flags().BoolVar(&recordBibTeX, "bibtex", false, "Print the BibTeX entry")
	rootCmd.AddCommand(recordCmd)
}

// RecordResult is the JSON output for the record command.
type RecordResult struct {
	record.Record
	Published bool   `json:"published"`
	Citation  string `json:"citation"`
	ArxivURL  string `json:"arxiv_url,omitempty"`
}

func runRecord(cmd *cobra.Command, args []string) error {
	key := args[0]
	ctx, cancel := commandContext()
	defer cancel()
	client := newClient()

	raw, err := client.RecordByKey(ctx, key)
	if err != nil {
		exitWithAPIError("fetching record "+key, err)
	}
	rec, err := record.NewNormalizer(logger).ParseJSON(raw)
	if err != nil {
		exitWithError(ExitDataError, "normalizing record %s: %v", key, err)
	}
	stats.RecordParsed()

	citeOpts := record.CitationOptions{AuthorThreshold: cfg.AuthorThreshold}

	if recordBibTeX {
		text, err := format.Bibliography(ctx, []record.Record{rec}, format.BibliographyOptions{
			Fetcher: client,
			Logger:  logger,
		})
		if err != nil {
			exitWithError(ExitError, "rendering BibTeX: %v", err)
		}
		return output(TextResponse{Format: "bibtex", Count: 1, Text: text}, func() {
			outputHuman("%s", text)
		})
	}

	result := RecordResult{
		Record:    rec,
		Published: rec.Published(),
		Citation:  rec.Citation(citeOpts),
		ArxivURL:  rec.ArxivURL(),
	}
	return output(result, func() {
		if rec.Title != "" {
			outputHuman("%s\n", rec.Title)
		}
		outputHuman("  %s\n", result.Citation)
		outputHuman("  Citations: %d (excluding self citations: %d)\n", rec.CitationCount, rec.CitationCountNoSelf)
		if rec.Identifiers.DOI != "" {
			outputHuman("  DOI: %s\n", rec.Identifiers.DOI)
		}
		if result.ArxivURL != "" {
			outputHuman("  arXiv: %s\n", result.ArxivURL)
		}
	})
}
