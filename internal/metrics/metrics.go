// Package metrics collects fetch and aggregation counters in a private
// Prometheus registry that can be written out as a node-exporter textfile.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors for one run. All methods are safe on a nil
// receiver so components can treat metrics as optional.
type Metrics struct {
	registry *prometheus.Registry

	fetchTotal     *prometheus.CounterVec
	rateLimited    prometheus.Counter
	cacheHits      prometheus.Counter
	recordsTotal   *prometheus.CounterVec
	papers         prometheus.Gauge
	citations      *prometheus.GaugeVec
	lastSnapshotTS prometheus.Gauge
}

// New creates a Metrics with a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	fetchTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insp",
			Subsystem: "fetch",
			Name:      "requests_total",
			Help:      "HTTP requests sent to the literature API by endpoint and status.",
		},
		[]string{"endpoint", "status"},
	)
	rateLimited := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "insp",
			Subsystem: "fetch",
			Name:      "rate_limited_total",
			Help:      "Responses answered with HTTP 429.",
		},
	)
	cacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "insp",
			Subsystem: "fetch",
			Name:      "cache_hits_total",
			Help:      "Requests served from the in-memory response cache.",
		},
	)
	recordsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insp",
			Subsystem: "records",
			Name:      "processed_total",
			Help:      "Metadata documents processed by outcome.",
		},
		[]string{"outcome"},
	)
	papers := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "insp",
			Subsystem: "author",
			Name:      "papers",
			Help:      "Records loaded for the author, before command filters.",
		},
	)
	citations := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "insp",
			Subsystem: "author",
			Name:      "citations",
			Help:      "Total citations of all records loaded for the author.",
		},
		[]string{"self"},
	)
	lastSnapshotTS := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "insp",
			Subsystem: "snapshot",
			Name:      "last_taken_timestamp_seconds",
			Help:      "Unix time of the most recent snapshot written.",
		},
	)

	registry.MustRegister(fetchTotal, rateLimited, cacheHits, recordsTotal, papers, citations, lastSnapshotTS)

	return &Metrics{
		registry:       registry,
		fetchTotal:     fetchTotal,
		rateLimited:    rateLimited,
		cacheHits:      cacheHits,
		recordsTotal:   recordsTotal,
		papers:         papers,
		citations:      citations,
		lastSnapshotTS: lastSnapshotTS,
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveFetch counts one HTTP request. status is the HTTP status code, or 0
// when the request failed before a response arrived.
func (m *Metrics) ObserveFetch(endpoint string, status int) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.fetchTotal.WithLabelValues(endpoint, label).Inc()
}

// RateLimited counts one 429 response.
func (m *Metrics) RateLimited() {
	if m == nil {
		return
	}
	m.rateLimited.Inc()
}

// CacheHit counts one cached response.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}

// RecordParsed counts one document normalized into a record.
func (m *Metrics) RecordParsed() {
	if m == nil {
		return
	}
	m.recordsTotal.WithLabelValues("parsed").Inc()
}

// RecordSkipped counts one document dropped for lack of a citation key.
func (m *Metrics) RecordSkipped() {
	if m == nil {
		return
	}
	m.recordsTotal.WithLabelValues("skipped").Inc()
}

// SetTotals records the paper count and citation totals of every loaded
// record, ignoring command filters.
func (m *Metrics) SetTotals(papers, citations, citationsNoSelf int) {
	if m == nil {
		return
	}
	m.papers.Set(float64(papers))
	m.citations.WithLabelValues("true").Set(float64(citations))
	m.citations.WithLabelValues("false").Set(float64(citationsNoSelf))
}

// SnapshotTaken records the time of a written snapshot.
func (m *Metrics) SnapshotTaken(unix int64) {
	if m == nil {
		return
	}
	m.lastSnapshotTS.Set(float64(unix))
}

// WriteTextfile writes every collected metric to path in the text exposition
// format. The file is written atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
