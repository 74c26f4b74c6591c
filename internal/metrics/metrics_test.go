package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.ObserveFetch("literature", 200)
	m.ObserveFetch("literature", 200)
	m.ObserveFetch("literature", 429)
	m.ObserveFetch("authors", 0)
	m.RateLimited()
	m.CacheHit()
	m.RecordParsed()
	m.RecordParsed()
	m.RecordSkipped()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"literature 200", testutil.ToFloat64(m.fetchTotal.WithLabelValues("literature", "200")), 2},
		{"literature 429", testutil.ToFloat64(m.fetchTotal.WithLabelValues("literature", "429")), 1},
		{"authors error", testutil.ToFloat64(m.fetchTotal.WithLabelValues("authors", "error")), 1},
		{"rate limited", testutil.ToFloat64(m.rateLimited), 1},
		{"cache hits", testutil.ToFloat64(m.cacheHits), 1},
		{"parsed", testutil.ToFloat64(m.recordsTotal.WithLabelValues("parsed")), 2},
		{"skipped", testutil.ToFloat64(m.recordsTotal.WithLabelValues("skipped")), 1},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestMetrics_SetTotals(t *testing.T) {
	m := New()
	m.SetTotals(3, 120, 100)

	if got := testutil.ToFloat64(m.papers); got != 3 {
		t.Errorf("papers = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.citations.WithLabelValues("true")); got != 120 {
		t.Errorf("citations{self=true} = %v, want 120", got)
	}
	if got := testutil.ToFloat64(m.citations.WithLabelValues("false")); got != 100 {
		t.Errorf("citations{self=false} = %v, want 100", got)
	}
}

func TestMetrics_TotalsHelp(t *testing.T) {
	m := New()
	m.SetTotals(3, 120, 100)

	expected := `
# HELP insp_author_papers Records loaded for the author, before command filters.
# TYPE insp_author_papers gauge
insp_author_papers 3
# HELP insp_author_citations Total citations of all records loaded for the author.
# TYPE insp_author_citations gauge
insp_author_citations{self="false"} 100
insp_author_citations{self="true"} 120
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"insp_author_papers", "insp_author_citations"); err != nil {
		t.Error(err)
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveFetch("literature", 200)
	m.RateLimited()
	m.CacheHit()
	m.RecordParsed()
	m.RecordSkipped()
	m.SetTotals(1, 2, 3)
	m.SnapshotTaken(1)
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Errorf("WriteTextfile() on nil = %v, want nil", err)
	}
	if m.Registry() != nil {
		t.Error("Registry() on nil should be nil")
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.SetTotals(2, 10, 8)
	m.RecordParsed()

	path := filepath.Join(t.TempDir(), "insp.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, want := range []string{
		"insp_author_papers 2",
		`insp_author_citations{self="true"} 10`,
		`insp_records_processed_total{outcome="parsed"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile missing %q:\n%s", want, data)
		}
	}
}
