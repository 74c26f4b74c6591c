package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/insp/internal/aggregate"
	"github.com/matsen/insp/internal/author"
	"github.com/matsen/insp/internal/record"
)

// filterFlags holds the record filter options shared by several commands.
type filterFlags struct {
	citeable     bool
	published    bool
	minCitations int
	maxAuthors   int
	after        string
	before       string
	exclusive    bool
	year         int
	keys         string
	excludeKeys  string
	coauthors    []string
}

// addFilterFlags registers the filter flags on cmd.
func addFilterFlags(cmd *cobra.Command, ff *filterFlags) {
	cmd.Flags().BoolVar(&ff.citeable, "citeable", false, "Only citeable records")
	cmd.Flags().BoolVar(&ff.published, "published", false, "Only records published in a journal")
	cmd.Flags().IntVar(&ff.minCitations, "min-citations", 0, "Minimum citation count")
	cmd.Flags().IntVar(&ff.maxAuthors, "max-authors", 0, "Maximum declared author count (0 = no limit)")
	cmd.Flags().StringVar(&ff.after, "after", "", "Only records dated on or after this date (YYYY, YYYY-MM or YYYY-MM-DD)")
	cmd.Flags().StringVar(&ff.before, "before", "", "Only records dated on or before this date")
	cmd.Flags().BoolVar(&ff.exclusive, "exclusive", false, "Make --after and --before strict")
	cmd.Flags().IntVar(&ff.year, "year", 0, "Only records from this year")
	cmd.Flags().StringVar(&ff.keys, "keys", "", "Only these citation keys (comma-separated)")
	cmd.Flags().StringVar(&ff.excludeKeys, "exclude-keys", "", "Skip these citation keys (comma-separated)")
	cmd.Flags().StringArrayVar(&ff.coauthors, "coauthor", nil, "Only records that also list this author (BAI or name, repeatable)")
}

// build converts the flags into an aggregate.Filter.
func (ff *filterFlags) build(cmd *cobra.Command) (aggregate.Filter, error) {
	f := aggregate.Filter{
		OnlyCiteable:  ff.citeable,
		OnlyPublished: ff.published,
		MinCitations:  ff.minCitations,
		MaxAuthors:    ff.maxAuthors,
		Exclusive:     ff.exclusive,
		Year:          ff.year,
		ExcludeKeys:   splitList(ff.excludeKeys),
	}

	if cmd.Flags().Changed("keys") {
		f.Keys = splitList(ff.keys)
		if f.Keys == nil {
			f.Keys = []string{}
		}
	}

	var err error
	if f.After, err = parseDateFlag("after", ff.after); err != nil {
		return f, err
	}
	if f.Before, err = parseDateFlag("before", ff.before); err != nil {
		return f, err
	}

	for _, c := range ff.coauthors {
		q := author.ParseQuery(c)
		if q.IsZero() {
			return f, fmt.Errorf("--coauthor: empty author query")
		}
		f.Coauthors = append(f.Coauthors, q)
	}
	return f, nil
}

func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := record.ParseDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return t, nil
}

// splitList splits a comma-separated flag value, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
