package snapshot

import (
	"slices"
	"strconv"
	"strings"
)

// Delta is a change in the citation count of a record present in both
// snapshots.
type Delta struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Before int    `json:"before"`
	After  int    `json:"after"`
}

// Change returns After minus Before.
func (d Delta) Change() int {
	return d.After - d.Before
}

// Diff is the difference between an old and a new snapshot. Each list is
// sorted by key.
type Diff struct {
	Added   []Entry `json:"added"`
	Removed []Entry `json:"removed"`
	Changed []Delta `json:"changed"`
}

// Empty reports whether nothing changed.
func (d Diff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Compare diffs old against current by record key. Citation counts include
// self citations.
func Compare(old, current []Entry) Diff {
	before := index(old)
	after := index(current)

	d := Diff{Added: []Entry{}, Removed: []Entry{}, Changed: []Delta{}}
	for key, e := range before {
		if _, ok := after[key]; !ok {
			d.Removed = append(d.Removed, e)
		}
	}
	for key, e := range after {
		prev, ok := before[key]
		if !ok {
			d.Added = append(d.Added, e)
			continue
		}
		if e.Citations != prev.Citations {
			d.Changed = append(d.Changed, Delta{Key: key, Title: e.Title, Before: prev.Citations, After: e.Citations})
		}
	}

	byKey := func(a, b Entry) int { return strings.Compare(a.Key, b.Key) }
	slices.SortFunc(d.Added, byKey)
	slices.SortFunc(d.Removed, byKey)
	slices.SortFunc(d.Changed, func(a, b Delta) int { return strings.Compare(a.Key, b.Key) })
	return d
}

// index maps entries by key; a later duplicate replaces an earlier one.
func index(entries []Entry) map[string]Entry {
	m := make(map[string]Entry, len(entries))
	for _, e := range entries {
		m[e.Key] = e
	}
	return m
}

// Messages renders the diff one line per change: removed papers, then added
// papers, then citation changes.
func (d Diff) Messages() []string {
	var out []string
	for _, e := range d.Removed {
		out = append(out, `Removed paper: "`+e.Title+`" with `+plural(e.Citations, "citation"))
	}
	for _, e := range d.Added {
		out = append(out, `Added paper: "`+e.Title+`" with `+plural(e.Citations, "citation"))
	}
	for _, c := range d.Changed {
		n := c.Change()
		switch {
		case n == 1:
			out = append(out, `1 new citation: "`+c.Title+`"`)
		case n == -1:
			out = append(out, `1 citation removed: "`+c.Title+`"`)
		case n > 1:
			out = append(out, strconv.Itoa(n)+` new citations: "`+c.Title+`"`)
		default:
			out = append(out, strconv.Itoa(-n)+` citations removed: "`+c.Title+`"`)
		}
	}
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
