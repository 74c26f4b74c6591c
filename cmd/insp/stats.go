package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/insp/internal/aggregate"
)

var statsFilter filterFlags

var statsCmd = &cobra.Command{
	Use:   "stats <author>",
	Short: "Summarize an author's records and citations",
	Long: `Summarize an author's records: number of papers, total citations with and
without self citations, and the most cited paper.

Examples:
  insp stats S.Weinberg.1
  insp stats 0000-0002-1825-0097 --published --human
  insp stats S.Weinberg.1 --max-authors 10 --after 2000`,
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	addFilterFlags(statsCmd, &statsFilter)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	f, err := statsFilter.build(cmd)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	ctx, cancel := commandContext()
	defer cancel()
	a := mustLoadAuthor(ctx, newClient(), args[0])

	summary := a.Summary(f)
	return output(summary, func() { outputSummaryHuman(summary) })
}

func outputSummaryHuman(s aggregate.Summary) {
	name := s.Name
	if name == "" {
		name = s.Identifier
	}
	outputHuman("%s", name)
	if s.BAI != "" && s.BAI != name {
		outputHuman(" (%s)", s.BAI)
	}
	outputHuman("\n")
	if s.Affiliation != "" {
		outputHuman("  Affiliation: %s\n", s.Affiliation)
	}
	outputHuman("  Papers: %d\n", s.Papers)
	outputHuman("  Citations: %d (excluding self citations: %d)\n", s.Citations, s.CitationsNoSelf)
	if s.MostCited != nil {
		outputHuman("  Most cited: %s (%d citations)\n", truncateString(s.MostCited.Title, ListTitleMaxLen), s.MostCited.Citations)
	}
}
