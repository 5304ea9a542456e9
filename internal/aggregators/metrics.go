package aggregators

import (
	"weblog-analyzer/internal/shared/metrics"
)

// metricTableInsertFailedTotal counts table updates skipped because a node could not be created.
//
// The table label is one of sites_monthly, sites_daily, urls, referrers, agents, search or users.
// A skipped update only affects that table; the record still counts everywhere else.
//
// metricMonthRolloversTotal counts months closed while reading input, not the month still open at
// the end of a run.
var (
	metricTableInsertFailedTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "table_insert_failed_total",
		},
		[]string{"table"},
	)

	metricMonthRolloversTotal = metrics.NewCounterVec(
		metrics.CounterOpts{
			Namespace: metrics.Namespace,
			Subsystem: metrics.SubAggregation,
			Name:      "month_rollovers_total",
		},
		[]string{metrics.FieldErrorCode},
	)
)
