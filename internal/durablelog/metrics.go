package durablelog

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	failureReasonNotPrimary = "not_primary"
	failureReasonTooLarge   = "too_large"
	failureReasonInternal   = "internal"
)

var (
	AppendsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "durablelog_appends_total",
			Help: "Total number of entries appended.",
		},
	)

	AppendBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "durablelog_append_bytes_total",
			Help: "Total number of payload bytes appended.",
		},
	)

	AppendFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "durablelog_append_failures_total",
			Help: "Total number of failed appends by reason.",
		},
		[]string{"reason"},
	)

	TruncationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "durablelog_truncations_total",
			Help: "Total number of truncations executed.",
		},
	)

	CommitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "durablelog_commit_duration_seconds",
			Help:    "Duration of the commit section of appends in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.000001, 2, 16),
		},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		AppendsTotal,
		AppendBytesTotal,
		AppendFailuresTotal,
		TruncationsTotal,
		CommitDuration,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}
