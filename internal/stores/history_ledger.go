package stores

import (
	"context"

	"weblog-analyzer/internal/aggregators"
	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/loggers"
)

const DefaultHistoryMonths = 120

// HistoryMonth is the summary of one month kept across runs.
type HistoryMonth struct {
	Month    int
	Year     int
	Hits     uint64
	Files    uint64
	Sites    uint64
	XferKB   float64
	FirstDay int
	LastDay  int
	Pages    uint64
	Visits   uint64
}

func (m HistoryMonth) index() int { return models.MonthIndex(m.Month, m.Year) }

// HistoryMonthOf summarizes the month held by actx.
func HistoryMonthOf(actx *aggregators.AggregationContext) HistoryMonth {
	return HistoryMonth{
		Month:    actx.Cursor.Month,
		Year:     actx.Cursor.Year,
		Hits:     actx.Totals.Hits,
		Files:    actx.Totals.Files,
		Sites:    actx.Totals.Sites,
		XferKB:   float64(actx.Totals.Xfer / 1024),
		FirstDay: actx.FirstDay,
		LastDay:  actx.LastDay,
		Pages:    actx.Totals.Pages,
		Visits:   actx.Totals.Visits,
	}
}

// HistoryLedger is a fixed window of consecutive months, oldest first. Once the first month is
// known every slot carries a month and year; months without data are zero valued.
type HistoryLedger struct {
	slots    []HistoryMonth
	largeGap bool
}

func NewHistoryLedger(capacity int) *HistoryLedger {
	if capacity <= 0 {
		capacity = DefaultHistoryMonths
	}
	return &HistoryLedger{slots: make([]HistoryMonth, capacity)}
}

func (l *HistoryLedger) Capacity() int { return len(l.slots) }

// Months returns a copy of the window, oldest first. It is empty until a month was stored.
func (l *HistoryLedger) Months() []HistoryMonth {
	if !l.populated() {
		return nil
	}
	out := make([]HistoryMonth, len(l.slots))
	copy(out, l.slots)
	return out
}

// LargeGap reports whether an update skipped a year or more.
func (l *HistoryLedger) LargeGap() bool { return l.largeGap }

func (l *HistoryLedger) populated() bool { return l.slots[len(l.slots)-1].Year != 0 }

// populate labels every slot with consecutive months ending at month/year.
func (l *HistoryLedger) populate(month, year int) {
	for i := len(l.slots) - 1; i >= 0; i-- {
		l.slots[i] = HistoryMonth{Month: month, Year: year}
		if month--; month == 0 {
			month, year = 12, year-1
		}
	}
}

// slotFor finds the slot of month/year, shifting the window forward when the month is newer than
// the newest slot. It returns -1 for months older than the window and the number of months the
// window moved.
func (l *HistoryLedger) slotFor(month, year int) (int, int) {
	if !l.populated() {
		l.populate(month, year)
	}
	target := models.MonthIndex(month, year)
	for i := len(l.slots) - 1; i >= 0; i-- {
		cur := l.slots[i]
		if cur.Month == month && cur.Year == year {
			return i, 0
		}
		if target <= cur.index() {
			continue
		}
		n := target - cur.index()
		if i > 0 {
			for k := 0; k < n; k++ {
				next := HistoryMonth{Month: l.slots[i].Month + 1, Year: l.slots[i].Year}
				if next.Month > 12 {
					next.Month, next.Year = 1, next.Year+1
				}
				copy(l.slots[:i], l.slots[1:i+1])
				l.slots[i] = next
			}
		}
		return i, n
	}
	return -1, 0
}

// Load places a month read from disk. Invalid months and months older than the window are dropped.
func (l *HistoryLedger) Load(m HistoryMonth) bool {
	if m.Month < 1 || m.Month > 12 || m.Year < 1970 {
		return false
	}
	i, _ := l.slotFor(m.Month, m.Year)
	if i < 0 {
		return false
	}
	l.slots[i] = m
	return true
}

// Update stores the totals of a finished or running month, moving the window when needed.
func (l *HistoryLedger) Update(ctx context.Context, m HistoryMonth) {
	prevNewest := l.slots[len(l.slots)-1]
	i, gap := l.slotFor(m.Month, m.Year)
	if gap > 2 {
		loggers.Ctx(ctx).Warn().
			Int("gap_months", gap).
			Str("from", monthLabel(prevNewest.Month, prevNewest.Year)).
			Str("to", monthLabel(m.Month, m.Year)).
			Msg("history gap detected")
		if gap > 11 {
			l.largeGap = true
		}
	}
	if i < 0 {
		return
	}
	l.slots[i] = m
}
