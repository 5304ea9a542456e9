package reports

import (
	"weblog-analyzer/internal/shared/metrics"
)

var (
	metricMonthsRenderedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubReport,
			Name:      "months_rendered_total",
		},
		[]string{"renderer", metrics.FieldErrorCode},
	)
)
