package aggregators

import (
	"context"

	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/metrics"
)

//go:generate mockgen -source=aggregate_rolluper.go -destination=./mocks/aggregate_rolluper_mock.go -package=mocks
type MonthCloser interface {
	// CloseMonth receives a finished month before its tables are cleared. actx must not be retained.
	CloseMonth(ctx context.Context, actx *AggregationContext) error
}

// PeriodRolluper drives the hour, day and month boundaries of an AggregationContext.
type PeriodRolluper interface {
	// Advance moves the cursor to rt before the record is aggregated. prevStamp is the stamp of the
	// previous accepted record; visits idle at that time are closed when a month ends.
	Advance(ctx context.Context, actx *AggregationContext, rt models.RecordTime, prevStamp int64) error
	// Finish folds the open day and hour once the input is exhausted.
	Finish(actx *AggregationContext)
	// CloseFinal closes the pending exit pages and hands the open month to the closer.
	CloseFinal(ctx context.Context, actx *AggregationContext) error
}

type aggregateRolluper struct {
	closer MonthCloser
}

func NewAggregateRolluper(closer MonthCloser) PeriodRolluper {
	return &aggregateRolluper{closer: closer}
}

func (r *aggregateRolluper) Advance(ctx context.Context, actx *AggregationContext, rt models.RecordTime, prevStamp int64) error {
	cur := &actx.Cursor
	if !cur.Loaded() {
		stamp := cur.Stamp
		cur.RecordTime = rt
		cur.Stamp = stamp
		actx.FirstDay = rt.Day
	}

	if rt.Day > actx.LastDay {
		actx.LastDay = rt.Day
	}
	cur.Second = rt.Second
	cur.Minute = rt.Minute

	if cur.Hour != rt.Hour {
		if actx.HourHits > actx.MaxHourHits {
			actx.MaxHourHits = actx.HourHits
		}
		actx.HourHits = 0
		cur.Hour = rt.Hour
	}

	if cur.Day != rt.Day {
		actx.CloseDay()
		cur.Day = rt.Day
	}

	if cur.Month != rt.Month || cur.Year != rt.Year {
		actx.Totals.Visits = TotalVisits(actx.MonthlySites)
		actx.MonthUpdateExit(prevStamp)
		if err := r.closer.CloseMonth(ctx, actx); err != nil {
			svcErr := errInternalMonthCloseFailed(err)
			metricMonthRolloversTotal.WithLabelValues(svcErr.Code).Inc()
			return svcErr
		}
		metricMonthRolloversTotal.WithLabelValues(metrics.ValueNoError).Inc()
		actx.ClearMonth()
		cur.Month = rt.Month
		cur.Year = rt.Year
		actx.FirstDay = rt.Day
		actx.LastDay = rt.Day
	}
	return nil
}

func (r *aggregateRolluper) Finish(actx *AggregationContext) {
	if d := actx.Cursor.Day; d >= 1 && d <= 31 {
		actx.Days[d-1].Sites = actx.DaySites
		actx.Days[d-1].Visits = TotalVisits(actx.DailySites)
	}
	actx.Totals.Visits = TotalVisits(actx.MonthlySites)
	if actx.HourHits > actx.MaxHourHits {
		actx.MaxHourHits = actx.HourHits
	}
}

func (r *aggregateRolluper) CloseFinal(ctx context.Context, actx *AggregationContext) error {
	actx.MonthUpdateExit(actx.Cursor.Stamp)
	if err := r.closer.CloseMonth(ctx, actx); err != nil {
		return errInternalMonthCloseFailed(err)
	}
	return nil
}
