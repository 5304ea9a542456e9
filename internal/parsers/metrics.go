package parsers

import (
	"weblog-analyzer/internal/shared/metrics"
)

var (
	metricFieldTruncatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "field_truncated_total",
		},
		[]string{"field"},
	)
)
