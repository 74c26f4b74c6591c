package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matsen/insp/internal/format"
	"github.com/matsen/insp/internal/record"
)

var (
	markdownFilter    filterFlags
	markdownDir       string
	markdownArxivLink string
)

var markdownCmd = &cobra.Command{
	Use:   "markdown <author>",
	Short: "Write one markdown file per record",
	Long: `Write one markdown file per record with YAML front matter (title, key,
date, authors, venue, identifiers, citations) and the citation line as body.
Files are named after a slug of the title.

Examples:
  insp markdown S.Weinberg.1 --dir content/publications
  insp markdown S.Weinberg.1 --published --arxiv-link markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runMarkdown,
}

func init() {
	addFilterFlags(markdownCmd, &markdownFilter)
	markdownCmd.Flags().StringVar(&markdownDir, "dir", "", "Output directory (default: output_dir from config)")
	markdownCmd.Flags().StringVar(&markdownArxivLink, "arxiv-link", string(record.LinkMarkdown), "arXiv link format in the citation line")
	rootCmd.AddCommand(markdownCmd)
}

func runMarkdown(cmd *cobra.Command, args []string) error {
	f, err := markdownFilter.build(cmd)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	link, err := record.ParseLinkFormat(markdownArxivLink)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	dir := markdownDir
	if dir == "" {
		dir = cfg.OutputDir
	}

	ctx, cancel := commandContext()
	defer cancel()
	a := mustLoadAuthor(ctx, newClient(), args[0])

	opts := record.CitationOptions{AuthorThreshold: cfg.AuthorThreshold, ArxivLink: link}
	var paths []string
	for _, rec := range a.Records(f) {
		path, err := format.WriteMarkdown(dir, rec, opts)
		if err != nil {
			exitWithError(ExitError, "writing %s: %v", rec.Key, err)
		}
		paths = append(paths, path)
	}

	result := StatusResponse{Status: "written", Paths: paths, Count: len(paths)}
	return output(result, func() {
		outputHuman("Wrote %d files to %s\n", len(paths), filepath.Clean(dir))
	})
}
