package stores

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryLedger_Update_KeepsNewestMonths(t *testing.T) {
	t.Parallel()

	ledger := NewHistoryLedger(12)
	ctx := context.Background()
	month, year := 1, 2023
	for i := 0; i < 13; i++ {
		ledger.Update(ctx, HistoryMonth{Month: month, Year: year, Hits: uint64(i + 1)})
		if month++; month > 12 {
			month, year = 1, year+1
		}
	}

	months := ledger.Months()
	require.Len(t, months, 12)
	assert.Equal(t, HistoryMonth{Month: 2, Year: 2023, Hits: 2}, months[0])
	assert.Equal(t, HistoryMonth{Month: 1, Year: 2024, Hits: 13}, months[11])

	seen := map[int]bool{}
	for _, m := range months {
		assert.False(t, seen[m.index()], "duplicate %d/%d", m.Month, m.Year)
		seen[m.index()] = true
	}
	assert.False(t, ledger.LargeGap())
}

func TestHistoryLedger_Update_SameMonthOverwrites(t *testing.T) {
	t.Parallel()

	ledger := NewHistoryLedger(3)
	ctx := context.Background()
	ledger.Update(ctx, HistoryMonth{Month: 5, Year: 2024, Hits: 1})
	ledger.Update(ctx, HistoryMonth{Month: 5, Year: 2024, Hits: 7})

	months := ledger.Months()
	require.Len(t, months, 3)
	assert.Equal(t, HistoryMonth{Month: 3, Year: 2024}, months[0])
	assert.Equal(t, HistoryMonth{Month: 4, Year: 2024}, months[1])
	assert.Equal(t, uint64(7), months[2].Hits)
}

func TestHistoryLedger_Update_Gaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		to       HistoryMonth
		largeGap bool
		newest   HistoryMonth
	}{
		{name: "small gap fills empty months", to: HistoryMonth{Month: 4, Year: 2024, Hits: 4}, newest: HistoryMonth{Month: 4, Year: 2024, Hits: 4}},
		{name: "year gap", to: HistoryMonth{Month: 2, Year: 2025, Hits: 9}, largeGap: true, newest: HistoryMonth{Month: 2, Year: 2025, Hits: 9}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ledger := NewHistoryLedger(6)
			ctx := context.Background()
			ledger.Update(ctx, HistoryMonth{Month: 1, Year: 2024, Hits: 1})
			ledger.Update(ctx, tt.to)

			months := ledger.Months()
			assert.Equal(t, tt.newest, months[len(months)-1])
			assert.Equal(t, tt.largeGap, ledger.LargeGap())
			for i := 1; i < len(months); i++ {
				assert.Equal(t, months[i-1].index()+1, months[i].index(), "months stay consecutive")
			}
		})
	}
}

func TestHistoryLedger_Update_OlderThanWindowDropped(t *testing.T) {
	t.Parallel()

	ledger := NewHistoryLedger(2)
	ctx := context.Background()
	ledger.Update(ctx, HistoryMonth{Month: 6, Year: 2024, Hits: 6})
	ledger.Update(ctx, HistoryMonth{Month: 1, Year: 2024, Hits: 1})

	months := ledger.Months()
	assert.Equal(t, HistoryMonth{Month: 5, Year: 2024}, months[0])
	assert.Equal(t, uint64(6), months[1].Hits)
}

func TestHistoryLedger_Load_RejectsInvalid(t *testing.T) {
	t.Parallel()

	ledger := NewHistoryLedger(4)
	assert.False(t, ledger.Load(HistoryMonth{Month: 13, Year: 2024}))
	assert.False(t, ledger.Load(HistoryMonth{Month: 1, Year: 1969}))
	assert.Nil(t, ledger.Months())

	// Files list the newest month first; later lines land in older slots.
	assert.True(t, ledger.Load(HistoryMonth{Month: 2, Year: 2024, Hits: 2}))
	assert.True(t, ledger.Load(HistoryMonth{Month: 1, Year: 2024, Hits: 1}))
	months := ledger.Months()
	assert.Equal(t, uint64(1), months[2].Hits)
	assert.Equal(t, uint64(2), months[3].Hits)
}
