package store

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RetainedEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "durablelog_store_retained_entries",
			Help: "Number of entries currently retained across all stores.",
		},
	)

	RetainedBytes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "durablelog_store_retained_bytes",
			Help: "Payload bytes currently retained across all stores.",
		},
	)

	TruncatedEntriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "durablelog_store_truncated_entries_total",
			Help: "Total number of entries removed by truncation.",
		},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		RetainedEntries,
		RetainedBytes,
		TruncatedEntriesTotal,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}
