package app

import (
	"context"

	"weblog-analyzer/internal/aggregators"
	"weblog-analyzer/internal/reports"
	"weblog-analyzer/internal/shared/loggers"
	"weblog-analyzer/internal/stores"
)

// monthCloser records a completed month in the history ledger and renders it.
type monthCloser struct {
	ledger   *stores.HistoryLedger
	renderer reports.Renderer // nil renders nothing
}

func newMonthCloser(ledger *stores.HistoryLedger, renderer reports.Renderer) *monthCloser {
	return &monthCloser{ledger: ledger, renderer: renderer}
}

// CloseMonth never fails the run on a render error; the affected output is skipped.
func (c *monthCloser) CloseMonth(ctx context.Context, actx *aggregators.AggregationContext) error {
	logger := loggers.Ctx(ctx)

	c.ledger.Update(ctx, stores.HistoryMonthOf(actx))
	logger.Info().Int("year", actx.Cursor.Year).Int("month", actx.Cursor.Month).
		Uint64("hits", actx.Totals.Hits).Msg("month closed")

	if c.renderer == nil {
		return nil
	}
	view := reports.NewMonthView(actx, c.ledger.Months())
	if err := c.renderer.RenderMonth(ctx, view); err != nil {
		logger.Warn().Err(err).Int("year", view.Year).Int("month", view.Month).Msg("month report skipped")
	}
	return nil
}
