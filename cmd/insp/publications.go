package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/insp/internal/format"
	"github.com/matsen/insp/internal/record"
)

var (
	publicationsFilter     filterFlags
	publicationsLaTeX      bool
	publicationsSplit      bool
	publicationsNoTitle    bool
	publicationsNoCites    bool
	publicationsWellCited  int
	publicationsExclude    int
	publicationsArxivLink  string
	publicationsNoCategory bool
)

var publicationsCmd = &cobra.Command{
	Use:   "publications <author>",
	Short: "Render an author's publication list",
	Long: `Render an author's publication list, most recent first, one citation per
entry. Records declaring at least --exclude-authors authors are skipped.

Examples:
  insp publications S.Weinberg.1 --human
  insp publications S.Weinberg.1 --latex --split --arxiv-link latex
  insp publications S.Weinberg.1 --after 2015 --no-citations`,
	Args: cobra.ExactArgs(1),
	RunE: runPublications,
}

func init() {
	addFilterFlags(publicationsCmd, &publicationsFilter)
	publicationsCmd.Flags().BoolVar(&publicationsLaTeX, "latex", false, "Wrap entries in a LaTeX enumerate environment")
	publicationsCmd.Flags().BoolVar(&publicationsSplit, "split", false, "List peer-reviewed records separately")
	publicationsCmd.Flags().BoolVar(&publicationsNoTitle, "no-title", false, "Omit record titles")
	publicationsCmd.Flags().BoolVar(&publicationsNoCites, "no-citations", false, "Omit citation counts")
	publicationsCmd.Flags().IntVar(&publicationsWellCited, "well-cited", 0, "Citation count above which counts are bold (default from config)")
	publicationsCmd.Flags().IntVar(&publicationsExclude, "exclude-authors", 0, "Skip records with at least this many authors (default from config)")
	publicationsCmd.Flags().StringVar(&publicationsArxivLink, "arxiv-link", "", "Render arXiv numbers as links: latex, latex_url, markdown, markdown_url, html, html_url")
	publicationsCmd.Flags().BoolVar(&publicationsNoCategory, "no-category", false, "Omit the arXiv category")
	rootCmd.AddCommand(publicationsCmd)
}

func runPublications(cmd *cobra.Command, args []string) error {
	f, err := publicationsFilter.build(cmd)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	link, err := record.ParseLinkFormat(publicationsArxivLink)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	opts := format.PublicationListOptions{
		IncludeTitle:       !publicationsNoTitle,
		IncludeCitations:   !publicationsNoCites,
		WellCited:          firstPositive(publicationsWellCited, cfg.WellCited),
		ExcludeAuthorCount: firstPositive(publicationsExclude, cfg.ExcludeAuthorCount),
		SplitPeerReview:    publicationsSplit,
		LaTeX:              publicationsLaTeX,
		Citation: record.CitationOptions{
			OmitArxivCategory: publicationsNoCategory,
			ArxivLink:         link,
		},
	}

	ctx, cancel := commandContext()
	defer cancel()
	a := mustLoadAuthor(ctx, newClient(), args[0])

	recs := a.Records(f)
	text := format.PublicationList(recs, opts)
	return output(TextResponse{Format: "publications", Count: len(recs), Text: text}, func() {
		os.Stdout.WriteString(text)
		if text != "" && text[len(text)-1] != '\n' {
			outputHuman("\n")
		}
	})
}

// firstPositive returns the first positive value, or 0.
func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}
