package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	seriesFilter     filterFlags
	seriesStart      int
	seriesEnd        int
	seriesCumulative bool
	seriesCitations  bool
	seriesNoSelf     bool
)

var seriesCmd = &cobra.Command{
	Use:   "series <author>",
	Short: "Publications or citations per year",
	Long: `Count an author's publications, or sum their citations, per publication
year. The range defaults to the years spanned by the matching records.

Examples:
  insp series S.Weinberg.1 --human
  insp series S.Weinberg.1 --start 2000 --end 2020 --cumulative
  insp series S.Weinberg.1 --citations --no-self`,
	Args: cobra.ExactArgs(1),
	RunE: runSeries,
}

func init() {
	addFilterFlags(seriesCmd, &seriesFilter)
	seriesCmd.Flags().IntVar(&seriesStart, "start", 0, "First year (default: first publication year)")
	seriesCmd.Flags().IntVar(&seriesEnd, "end", 0, "Last year (default: last publication year)")
	seriesCmd.Flags().BoolVar(&seriesCumulative, "cumulative", false, "Report running totals")
	seriesCmd.Flags().BoolVar(&seriesCitations, "citations", false, "Sum citations instead of counting publications")
	seriesCmd.Flags().BoolVar(&seriesNoSelf, "no-self", false, "Exclude self citations (with --citations)")
	rootCmd.AddCommand(seriesCmd)
}

// maxSeriesSpan bounds the number of years a series may cover.
const maxSeriesSpan = 1000

// seriesRange fills unset start and end years from the records' year range
// [first, last], falling back to thisYear when there are no dated records.
func seriesRange(start, end, first, last int, ok bool, thisYear int) (int, int, error) {
	if ok {
		if start == 0 {
			start = first
		}
		if end == 0 {
			end = last
		}
	}
	if end == 0 {
		end = thisYear
	}
	if start == 0 {
		start = end
	}
	if span := end - start + 1; span > maxSeriesSpan {
		return 0, 0, fmt.Errorf("series %d-%d spans %d years, at most %d allowed", start, end, span, maxSeriesSpan)
	}
	return start, end, nil
}

// SeriesResult is the JSON output for the series command.
type SeriesResult struct {
	Identifier string `json:"identifier"`
	Kind       string `json:"kind"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Cumulative bool   `json:"cumulative"`
	Values     []int  `json:"values"`
}

func runSeries(cmd *cobra.Command, args []string) error {
	f, err := seriesFilter.build(cmd)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if seriesStart != 0 && seriesEnd != 0 {
		if _, _, err := seriesRange(seriesStart, seriesEnd, 0, 0, false, 0); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	ctx, cancel := commandContext()
	defer cancel()
	a := mustLoadAuthor(ctx, newClient(), args[0])

	first, last, ok := a.YearRange(f)
	start, end, err := seriesRange(seriesStart, seriesEnd, first, last, ok, time.Now().Year())
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	result := SeriesResult{Identifier: a.ID.Value, Kind: "publications", Start: start, End: end, Cumulative: seriesCumulative}
	if seriesCitations {
		result.Kind = "citations"
		result.Values = a.CitationsPerYear(start, end, seriesCumulative, !seriesNoSelf, f)
	} else {
		result.Values = a.PublicationsPerYear(start, end, seriesCumulative, f)
	}

	return output(result, func() {
		for i, v := range result.Values {
			outputHuman("%d  %d\n", result.Start+i, v)
		}
		if len(result.Values) == 0 {
			outputHuman("No years in range %d-%d\n", result.Start, result.End)
		}
	})
}
