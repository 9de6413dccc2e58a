package fencing

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	AcquisitionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "durablelog_fencing_acquisitions_total",
			Help: "Total number of write lock acquisitions.",
		},
	)

	RejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "durablelog_fencing_rejections_total",
			Help: "Total number of operations rejected because the client did not own the write lock.",
		},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		AcquisitionsTotal,
		RejectionsTotal,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}
