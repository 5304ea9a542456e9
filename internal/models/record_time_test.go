package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecordTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected RecordTime
		wantErr  bool
	}{
		{
			name:     "regular timestamp",
			input:    "[10/Jan/2024:13:45:09 -0000]",
			expected: RecordTime{Year: 2024, Month: 1, Day: 10, Hour: 13, Minute: 45, Second: 9},
		},
		{
			name:     "lower case month",
			input:    "[01/dec/1999:00:00:00 +0100]",
			expected: RecordTime{Year: 1999, Month: 12, Day: 1},
		},
		{
			name:     "hour 24 folds to midnight",
			input:    "[05/Mar/2023:24:10:00 -0000]",
			expected: RecordTime{Year: 2023, Month: 3, Day: 5, Hour: 0, Minute: 10},
		},
		{name: "unknown month", input: "[10/Foo/2024:13:45:09 -0000]", wantErr: true},
		{name: "minute out of range", input: "[10/Jan/2024:13:60:09 -0000]", wantErr: true},
		{name: "second out of range", input: "[10/Jan/2024:13:45:61 -0000]", wantErr: true},
		{name: "year before 1990", input: "[10/Jan/1989:13:45:09 -0000]", wantErr: true},
		{name: "day zero", input: "[00/Jan/2024:13:45:09 -0000]", wantErr: true},
		{name: "too short", input: "[10/Jan/2024]", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseRecordTime(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRecordTime_Stamp(t *testing.T) {
	t.Parallel()

	epoch := RecordTime{Year: 1970, Month: 1, Day: 1}
	assert.Equal(t, int64(0), epoch.Stamp())

	a := RecordTime{Year: 2024, Month: 2, Day: 29, Hour: 23, Minute: 59, Second: 59}
	b := RecordTime{Year: 2024, Month: 3, Day: 1}
	assert.Equal(t, int64(1), b.Stamp()-a.Stamp())
}

func TestMonthIndex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, MonthIndex(1, 2024)-MonthIndex(12, 2023))
	assert.Equal(t, 13, MonthIndex(2, 2025)-MonthIndex(1, 2024))
}

func TestLeadingDigits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 200, LeadingInt("200"))
	assert.Equal(t, 404, LeadingInt(" 404abc"))
	assert.Equal(t, -3, LeadingInt("-3"))
	assert.Equal(t, 0, LeadingInt("-"))
	assert.Equal(t, uint64(1024), LeadingUint("1024 more"))
	assert.Equal(t, uint64(0), LeadingUint("-"))
}
