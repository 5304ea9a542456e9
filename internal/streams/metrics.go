package streams

import (
	"weblog-analyzer/internal/shared/metrics"
)

var (
	streamHostLookup              = "host_lookup"
	metricHostLookupProducedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "host_lookup_published_total",
		},
		[]string{"stream_id"},
	)

	metricHostLookupConsumedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubStream,
			Name:      "host_lookup_consumed_total",
		},
		[]string{"stream_id", metrics.FieldErrorCode},
	)
)
