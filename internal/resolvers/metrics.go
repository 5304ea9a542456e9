package resolvers

import (
	"weblog-analyzer/internal/shared/metrics"
)

const (
	resultResolved   = "resolved"
	resultUnresolved = "unresolved"
	resultHit        = "hit"
	resultMiss       = "miss"
)

var (
	metricLookupsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubResolver,
			Name:      "dns_lookups_total",
		},
		[]string{"result"},
	)

	metricCacheReadsTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubResolver,
			Name:      "dns_cache_reads_total",
		},
		[]string{"result"},
	)

	metricLookupDuration = metrics.NewHistogramVec(
		metrics.HistogramOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubResolver,
			Name:      "dns_lookup_duration_seconds",
			Buckets:   metrics.DefBuckets,
		},
		[]string{"result"},
	)
)
