package reports

import (
	"weblog-analyzer/internal/aggregators"
	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/stores"
)

// MonthView is a read-only snapshot of a completed month. Node slices are sorted by count
// descending, ties by key, and share their nodes with the aggregation tables.
type MonthView struct {
	Year        int
	Month       int
	FirstDay    int
	LastDay     int
	Totals      aggregators.Totals
	MaxHourHits uint64
	Days        [31]aggregators.DayCounters
	Hours       [24]aggregators.HourCounters
	Responses   [models.TotalResponseCodes]uint64

	Sites         []*aggregators.SiteNode
	URLs          []*aggregators.URLNode
	Referrers     []*aggregators.ReferrerNode
	Agents        []*aggregators.AgentNode
	SearchStrings []*aggregators.SearchNode
	Idents        []*aggregators.IdentNode

	History []stores.HistoryMonth
}

// NewMonthView snapshots the month held by actx. history is the ledger content, oldest first.
func NewMonthView(actx *aggregators.AggregationContext, history []stores.HistoryMonth) *MonthView {
	return &MonthView{
		Year:          actx.Cursor.Year,
		Month:         actx.Cursor.Month,
		FirstDay:      actx.FirstDay,
		LastDay:       actx.LastDay,
		Totals:        actx.Totals,
		MaxHourHits:   actx.MaxHourHits,
		Days:          actx.Days,
		Hours:         actx.Hours,
		Responses:     actx.Responses,
		Sites:         actx.MonthlySites.Sorted(),
		URLs:          actx.URLs.Sorted(),
		Referrers:     actx.Referrers.Sorted(),
		Agents:        actx.Agents.Sorted(),
		SearchStrings: actx.SearchStrings.Sorted(),
		Idents:        actx.Idents.Sorted(),
		History:       history,
	}
}

// top returns at most n nodes that are not hidden. n <= 0 returns nothing.
func top[T any](nodes []T, n int, kind func(T) models.ObjectKind) []T {
	if n <= 0 {
		return nil
	}
	out := make([]T, 0, min(n, len(nodes)))
	for _, node := range nodes {
		if kind(node) == models.KindHidden {
			continue
		}
		out = append(out, node)
		if len(out) == n {
			break
		}
	}
	return out
}

// pct is the share of part in whole as a percentage.
func pct(part, whole uint64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
