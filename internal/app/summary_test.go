package app

import (
	"testing"
	"time"

	"weblog-analyzer/internal/ingestors"

	"github.com/stretchr/testify/assert"
)

func TestRunSummary_String(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		result  ingestors.IngestResult
		elapsed time.Duration
		want    string
	}{
		{
			name:    "rate shown",
			result:  ingestors.IngestResult{Total: 1200, Ignored: 3, Bad: 1},
			elapsed: 2 * time.Second,
			want:    "1200 records (3 ignored, 1 bad) in 2.00 seconds, 600/sec",
		},
		{
			name:    "rate above total is omitted",
			result:  ingestors.IngestResult{Total: 10},
			elapsed: 500 * time.Millisecond,
			want:    "10 records (0 ignored, 0 bad) in 0.50 seconds",
		},
		{
			name: "empty run",
			want: "0 records (0 ignored, 0 bad) in 0.00 seconds",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := RunSummary{Result: tt.result, Elapsed: tt.elapsed}
			assert.Equal(t, tt.want, s.String())
		})
	}
}
