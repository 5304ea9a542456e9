package ingestors

import (
	"weblog-analyzer/internal/shared/metrics"
)

const (
	resultOK      = "ok"
	resultIgnored = "ignored"
	resultBad     = "bad"
)

var (
	metricRecordsProcessedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubIngestion,
			Name:      "records_processed_total",
		},
		[]string{"result"},
	)
)
