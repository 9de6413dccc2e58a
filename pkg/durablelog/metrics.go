package durablelog

import (
	"github.com/prometheus/client_golang/prometheus"

	intdurablelog "github.com/backbone81/durable-log/internal/durablelog"
	intfencing "github.com/backbone81/durable-log/internal/fencing"
	intpipeline "github.com/backbone81/durable-log/internal/pipeline"
	intstore "github.com/backbone81/durable-log/internal/store"
)

// RegisterMetrics registers all metrics collectors with the given prometheus registerer.
func RegisterMetrics(registerer prometheus.Registerer) error {
	if err := intdurablelog.RegisterMetrics(registerer); err != nil {
		return err
	}
	if err := intfencing.RegisterMetrics(registerer); err != nil {
		return err
	}
	if err := intpipeline.RegisterMetrics(registerer); err != nil {
		return err
	}
	if err := intstore.RegisterMetrics(registerer); err != nil {
		return err
	}
	return nil
}
