// Package metrics records scrape and publish counters for club-fixtures on a
// private prometheus registry.
//
// A nil *Recorder is valid and records nothing, so components can take an
// optional recorder without guarding every call.
package metrics

import (
	"errors"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "club_fixtures"

// Page kinds recorded by the fetcher.
const (
	PageSearch   = "search"
	PageProfile  = "profile"
	PageFixtures = "fixtures"
)

// Recorder holds the collectors for one process.
type Recorder struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	failures        *prometheus.CounterVec
	latency         *prometheus.HistogramVec
	fixtures        prometheus.Counter
	droppedRows     *prometheus.CounterVec
	publishOutcomes *prometheus.CounterVec
	clubFailures    prometheus.Counter
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_requests_total",
			Help:      "Requests sent to the fixture source, by page kind.",
		}, []string{"page"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_failures_total",
			Help:      "Failed requests to the fixture source, by page kind.",
		}, []string{"page"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_request_seconds",
			Help:      "Latency of requests to the fixture source.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"page"}),
		fixtures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fixtures_extracted_total",
			Help:      "Fixtures extracted from fixture pages.",
		}),
		droppedRows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Fixture rows dropped during extraction, by reason.",
		}, []string{"reason"}),
		publishOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_outcomes_total",
			Help:      "Calendar publish outcomes, by action.",
		}, []string{"action"}),
		clubFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "club_failures_total",
			Help:      "Clubs whose fixture fetch failed.",
		}),
	}

	r.registry.MustRegister(
		r.requests,
		r.failures,
		r.latency,
		r.fixtures,
		r.droppedRows,
		r.publishOutcomes,
		r.clubFailures,
	)
	return r
}

// Registry exposes the underlying registry, e.g. for promhttp or testutil.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordFetch records one request to the source.
func (r *Recorder) RecordFetch(page string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(page).Inc()
	r.latency.WithLabelValues(page).Observe(duration.Seconds())
	if err != nil {
		r.failures.WithLabelValues(page).Inc()
	}
}

// RecordFixtures adds n extracted fixtures. Club names are not used as labels;
// the set of followed clubs is unbounded.
func (r *Recorder) RecordFixtures(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.fixtures.Add(float64(n))
}

// RecordDroppedRow counts a row skipped during extraction.
func (r *Recorder) RecordDroppedRow(reason string) {
	if r == nil {
		return
	}
	r.droppedRows.WithLabelValues(reason).Inc()
}

// RecordPublish counts one calendar publish outcome.
func (r *Recorder) RecordPublish(action string) {
	if r == nil {
		return
	}
	r.publishOutcomes.WithLabelValues(action).Inc()
}

// RecordClubFailure counts a club whose fetch failed.
func (r *Recorder) RecordClubFailure() {
	if r == nil {
		return
	}
	r.clubFailures.Inc()
}

// Sample is one gathered series value.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Snapshot gathers every counter series, and the observation count of each
// histogram series, sorted by name.
func (r *Recorder) Snapshot() ([]Sample, error) {
	if r == nil {
		return nil, errors.New("nil recorder")
	}

	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			s := Sample{Name: mf.GetName(), Labels: labels(m)}
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				s.Value = m.GetCounter().GetValue()
			case dto.MetricType_HISTOGRAM:
				s.Name += "_count"
				s.Value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			samples = append(samples, s)
		}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].Name < samples[j].Name
	})
	return samples, nil
}

func labels(m *dto.Metric) map[string]string {
	pairs := m.GetLabel()
	if len(pairs) == 0 {
		return nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		out[p.GetName()] = p.GetValue()
	}
	return out
}
