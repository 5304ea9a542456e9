package normalizers

import (
	"weblog-analyzer/internal/shared/metrics"
)

var (
	metricKeyTruncatedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "key_truncated_total",
		},
		[]string{"field"},
	)
)
