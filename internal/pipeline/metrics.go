package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	InFlightItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "durablelog_pipeline_in_flight_items",
			Help: "Number of committed items which are waiting for their delay.",
		},
		[]string{"pipeline"},
	)

	QueuedItems = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "durablelog_pipeline_queued_items",
			Help: "Number of items waiting for a free slot.",
		},
		[]string{"pipeline"},
	)
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	metrics := []prometheus.Collector{
		InFlightItems,
		QueuedItems,
	}
	for _, metric := range metrics {
		if err := registerer.Register(metric); err != nil {
			return err
		}
	}
	return nil
}
