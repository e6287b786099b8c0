// Package metrics exposes run counters for the copy pipeline.
// All methods are safe on a nil *Metrics, which records nothing.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RunsTotal.
const (
	OutcomeCommitted = "committed"
	OutcomeCanceled  = "canceled"
	OutcomeFailed    = "failed"
)

// Metrics holds the Prometheus collectors of one process.
type Metrics struct {
	registry *prometheus.Registry

	QuestionsAsked   prometheus.Counter
	QuestionsSkipped prometheus.Counter
	EntriesStaged    *prometheus.CounterVec
	Created          *prometheus.CounterVec
	Rollbacks        prometheus.Counter
	RunsTotal        *prometheus.CounterVec
	RunDuration      prometheus.Histogram
}

// New creates collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		QuestionsAsked: factory.NewCounter(prometheus.CounterOpts{
			Name: "kopye_questions_asked_total",
			Help: "Questions prompted to the user",
		}),
		QuestionsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "kopye_questions_skipped_total",
			Help: "Questions hidden by an unsatisfied dependency",
		}),
		EntriesStaged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kopye_entries_staged_total",
			Help: "Virtual filesystem entries staged, by kind",
		}, []string{"kind"}),
		Created: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kopye_entries_created_total",
			Help: "Entries written to the destination, by kind",
		}, []string{"kind"}),
		Rollbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "kopye_rollbacks_total",
			Help: "Transactions finalized as canceled",
		}),
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kopye_runs_total",
			Help: "Copy runs by outcome",
		}, []string{"outcome"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "kopye_run_duration_seconds",
			Help:    "Wall time of copy runs",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 30, 60, 300},
		}),
	}
}

// Registry returns the gatherer holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Asked() {
	if m != nil {
		m.QuestionsAsked.Inc()
	}
}

func (m *Metrics) Skipped() {
	if m != nil {
		m.QuestionsSkipped.Inc()
	}
}

func kind(isFile bool) string {
	if isFile {
		return "file"
	}
	return "dir"
}

func (m *Metrics) Staged(isFile bool) {
	if m != nil {
		m.EntriesStaged.WithLabelValues(kind(isFile)).Inc()
	}
}

func (m *Metrics) Wrote(isFile bool) {
	if m != nil {
		m.Created.WithLabelValues(kind(isFile)).Inc()
	}
}

func (m *Metrics) RolledBack() {
	if m != nil {
		m.Rollbacks.Inc()
	}
}

// Finished records the outcome of a run started at start.
func (m *Metrics) Finished(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.RunsTotal.WithLabelValues(outcome).Inc()
	m.RunDuration.Observe(time.Since(start).Seconds())
}

// WriteFile dumps the registry in the text exposition format, e.g. for the node_exporter
// textfile collector.
func (m *Metrics) WriteFile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
