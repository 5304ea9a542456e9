package parsers

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"weblog-analyzer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineReader_Next(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", models.MaxLine+10)
	edge := strings.Repeat("y", models.MaxLine-1)
	lr := NewLineReader(strings.NewReader("a\r\n\n" + long + "\n" + edge + "\nlast"))

	type step struct {
		line     string
		overlong bool
	}
	var got []step
	for {
		line, overlong, err := lr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, step{line, overlong})
	}

	require.Len(t, got, 5)
	assert.Equal(t, step{"a", false}, got[0])
	assert.Equal(t, step{"", false}, got[1])
	assert.Equal(t, step{"", true}, got[2])
	assert.True(t, got[3].overlong)
	assert.Equal(t, step{"last", false}, got[4])
}

func TestLineReader_OverlongBoundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		overlong bool
	}{
		{name: "longest accepted", input: strings.Repeat("a", models.MaxLine-3) + "\n", overlong: false},
		{name: "one byte more", input: strings.Repeat("a", models.MaxLine-2) + "\n", overlong: true},
		{name: "crlf counts both bytes", input: strings.Repeat("a", models.MaxLine-3) + "\r\n", overlong: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			line, overlong, err := NewLineReader(strings.NewReader(tt.input)).Next()
			require.NoError(t, err)
			assert.Equal(t, tt.overlong, overlong)
			if !tt.overlong {
				assert.Len(t, line, models.MaxLine-3)
			}
		})
	}
}

func TestLineReader_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	_, _, err := NewLineReader(iotest.ErrReader(boom)).Next()
	assert.ErrorIs(t, err, boom)
}
