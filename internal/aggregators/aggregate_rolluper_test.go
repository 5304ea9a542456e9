package aggregators_test

import (
	"context"
	"errors"
	"testing"

	"weblog-analyzer/internal/aggregators"
	"weblog-analyzer/internal/aggregators/mocks"
	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// feed advances the cursor and aggregates rec at rt, the way the ingestion loop does.
func feed(t *testing.T, r aggregators.PeriodRolluper, actx *aggregators.AggregationContext, rec *models.LogRecord, rt models.RecordTime) {
	t.Helper()
	stamp := rt.Stamp()
	prev := actx.Cursor.Stamp
	actx.Cursor.Stamp = stamp
	require.NoError(t, r.Advance(context.Background(), actx, rt, prev))
	newService(nil).Aggregate(context.Background(), actx, rec, rt, stamp)
}

func TestAdvance_FirstRecordInitializesCursor(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := aggregators.NewAggregateRolluper(mocks.NewMockMonthCloser(ctrl))
	actx := aggregators.NewAggregationContext(aggregators.ContextOptions{})
	rt := models.RecordTime{Year: 2024, Month: 3, Day: 5, Hour: 7, Minute: 8, Second: 9}

	require.NoError(t, r.Advance(context.Background(), actx, rt, 0))

	assert.Equal(t, rt, actx.Cursor.RecordTime)
	assert.Equal(t, 5, actx.FirstDay)
	assert.Equal(t, 5, actx.LastDay)
}

func TestAdvance_HourAndDayChanges(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := aggregators.NewAggregateRolluper(mocks.NewMockMonthCloser(ctrl))
	actx := aggregators.NewAggregationContext(aggregators.ContextOptions{})
	rec := &models.LogRecord{Hostname: "h", URL: "/", RespCode: 200}

	feed(t, r, actx, rec, models.RecordTime{Year: 2024, Month: 1, Day: 10, Hour: 0})
	feed(t, r, actx, rec, models.RecordTime{Year: 2024, Month: 1, Day: 10, Hour: 0, Minute: 1})
	feed(t, r, actx, rec, models.RecordTime{Year: 2024, Month: 1, Day: 10, Hour: 1})
	assert.Equal(t, uint64(2), actx.MaxHourHits)
	assert.Equal(t, uint64(1), actx.HourHits)

	feed(t, r, actx, rec, models.RecordTime{Year: 2024, Month: 1, Day: 11, Hour: 1})
	assert.Equal(t, uint64(1), actx.Days[9].Sites)
	assert.Equal(t, uint64(2), actx.Days[9].Visits)
	assert.Equal(t, uint64(1), actx.DaySites, "the new day starts its own site count")
	assert.Equal(t, 10, actx.FirstDay)
	assert.Equal(t, 11, actx.LastDay)
	assert.Equal(t, uint64(2), actx.HourHits, "day changes within the same hour keep the hour open")

	r.Finish(actx)
	assert.Equal(t, uint64(1), actx.Days[10].Sites)
	assert.Equal(t, uint64(3), actx.Totals.Visits)
}

func TestAdvance_MonthRolloverClosesOnce(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	closer := mocks.NewMockMonthCloser(ctrl)
	r := aggregators.NewAggregateRolluper(closer)
	actx := aggregators.NewAggregationContext(aggregators.ContextOptions{})
	rec := &models.LogRecord{Hostname: "h", URL: "/index.html", RespCode: 200, XferSize: 10}

	closer.EXPECT().CloseMonth(gomock.Any(), actx).DoAndReturn(func(_ context.Context, got *aggregators.AggregationContext) error {
		assert.Equal(t, 1, got.Cursor.Month)
		assert.Equal(t, uint64(3), got.Totals.Hits)
		assert.Equal(t, uint64(30), got.Totals.Xfer)
		assert.Equal(t, uint64(3), got.Totals.Visits)
		assert.Equal(t, uint64(1), got.Totals.Sites)
		assert.Equal(t, 30, got.FirstDay)
		assert.Equal(t, 31, got.LastDay)
		assert.Equal(t, uint64(1), got.Days[29].Hits)
		assert.Equal(t, uint64(2), got.Days[30].Hits)
		return nil
	}).Times(1)

	feed(t, r, actx, rec, models.RecordTime{Year: 2024, Month: 1, Day: 30, Hour: 10})
	feed(t, r, actx, rec, models.RecordTime{Year: 2024, Month: 1, Day: 31, Hour: 10})
	feed(t, r, actx, rec, models.RecordTime{Year: 2024, Month: 1, Day: 31, Hour: 23, Minute: 59})

	feb := models.RecordTime{Year: 2024, Month: 2, Day: 1, Hour: 0}
	require.NoError(t, r.Advance(context.Background(), actx, feb, actx.Cursor.Stamp))

	assert.Equal(t, [31]aggregators.DayCounters{}, actx.Days)
	assert.Equal(t, [24]aggregators.HourCounters{}, actx.Hours)
	assert.Equal(t, aggregators.Totals{}, actx.Totals)
	assert.Equal(t, 0, actx.MonthlySites.Len())
	assert.Equal(t, 2, actx.Cursor.Month)
	assert.Equal(t, 1, actx.FirstDay)
	assert.Equal(t, 1, actx.LastDay)
}

func TestAdvance_MonthCloseFailed(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	closer := mocks.NewMockMonthCloser(ctrl)
	r := aggregators.NewAggregateRolluper(closer)
	actx := aggregators.NewAggregationContext(aggregators.ContextOptions{})
	closer.EXPECT().CloseMonth(gomock.Any(), actx).Return(errors.New("disk full"))

	require.NoError(t, r.Advance(context.Background(), actx, models.RecordTime{Year: 2024, Month: 1, Day: 1}, 0))
	err := r.Advance(context.Background(), actx, models.RecordTime{Year: 2024, Month: 2, Day: 1}, 0)

	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok, "expected ServiceError")
	assert.Equal(t, "AGG_9001", svcErr.Code)
	assert.Equal(t, 1, actx.Cursor.Month, "a failed close keeps the month open")
}

func TestCloseFinal_ClosesPendingExits(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	closer := mocks.NewMockMonthCloser(ctrl)
	r := aggregators.NewAggregateRolluper(closer)
	actx := aggregators.NewAggregationContext(aggregators.ContextOptions{TrackEntryExit: true})
	rec := &models.LogRecord{Hostname: "h", URL: "/a.html", RespCode: 200}
	rt := models.RecordTime{Year: 2024, Month: 1, Day: 10}
	feed(t, r, actx, rec, rt)

	actx.Cursor.Stamp = rt.Stamp() + 1800
	closer.EXPECT().CloseMonth(gomock.Any(), actx).Return(nil)

	require.NoError(t, r.CloseFinal(context.Background(), actx))
	n := urlNode(t, actx, "/a.html")
	assert.Equal(t, uint64(1), n.Entry)
	assert.Equal(t, uint64(1), n.Exit)
}
