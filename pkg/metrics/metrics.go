package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	Namespace = "supplied_snapshots"

	// Status label values for subgraph requests
	StatusSuccess    = "success"
	StatusHTTPError  = "http_error"
	StatusQueryError = "query_error"
	StatusError      = "error"
)

type Metrics struct {
	requests        *prometheus.CounterVec
	requestDuration prometheus.Histogram
	pagesFetched    prometheus.Counter
	snapshots       prometheus.Counter
	watermark       prometheus.Gauge
	rowsExported    prometheus.Counter
	truncated       prometheus.Gauge
}

// New creates a Metrics instance and registers its collectors with reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "subgraph",
			Name:      "requests_total",
			Help:      "Total subgraph page requests by status",
		}, []string{"status"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "subgraph",
			Name:      "request_duration_seconds",
			Help:      "Subgraph page request duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}),
		pagesFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "pages_fetched_total",
			Help:      "Total non empty snapshot pages fetched",
		}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "snapshots_fetched_total",
			Help:      "Total snapshots fetched",
		}),
		watermark: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "watermark_timestamp",
			Help:      "Next timestamp_gte lower bound of the fetch session",
		}),
		rowsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "rows_exported_total",
			Help:      "Total csv rows written",
		}),
		truncated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "feed_truncated",
			Help:      "1 when the last fetch session stopped on a failed page",
		}),
	}

	err := errors.Join(
		reg.Register(m.requests),
		reg.Register(m.requestDuration),
		reg.Register(m.pagesFetched),
		reg.Register(m.snapshots),
		reg.Register(m.watermark),
		reg.Register(m.rowsExported),
		reg.Register(m.truncated),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ObserveRequest records one subgraph request outcome.
func (m *Metrics) ObserveRequest(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(status).Inc()
	m.requestDuration.Observe(d.Seconds())
}

// ObservePage records a non empty page and the watermark it advanced to.
func (m *Metrics) ObservePage(size int, watermark uint64) {
	if m == nil {
		return
	}
	m.pagesFetched.Inc()
	m.snapshots.Add(float64(size))
	m.watermark.Set(float64(watermark))
}

func (m *Metrics) SetTruncated(truncated bool) {
	if m == nil {
		return
	}
	if truncated {
		m.truncated.Set(1)
		return
	}
	m.truncated.Set(0)
}

func (m *Metrics) AddExportedRows(n int) {
	if m == nil {
		return
	}
	m.rowsExported.Add(float64(n))
}

// Push delivers everything gathered by g to a Pushgateway under the given job name.
func Push(ctx context.Context, url, job string, g prometheus.Gatherer) error {
	return push.New(url, job).Gatherer(g).PushContext(ctx)
}
