package stores

import (
	"weblog-analyzer/internal/shared/metrics"
)

var (
	metricStateSavedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPersistence,
			Name:      "state_saved_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricStateRestoredTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPersistence,
			Name:      "state_restored_total",
		},
		[]string{metrics.FieldErrorCode},
	)

	metricHistorySavedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubPersistence,
			Name:      "history_saved_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
