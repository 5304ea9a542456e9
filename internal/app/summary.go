package app

import (
	"fmt"
	"time"

	"weblog-analyzer/internal/ingestors"
)

// RunSummary is the outcome of a run.
type RunSummary struct {
	RunID   string
	Result  ingestors.IngestResult
	Elapsed time.Duration
}

// String renders the end of run line, for example
// "1200 records (3 ignored, 1 bad) in 0.52 seconds, 2307/sec".
func (s RunSummary) String() string {
	r := s.Result
	secs := s.Elapsed.Seconds()
	line := fmt.Sprintf("%d records (%d ignored, %d bad) in %.2f seconds", r.Total, r.Ignored, r.Bad, secs)
	if secs > 0 {
		if rate := uint64(float64(r.Total) / secs); rate > 0 && rate <= r.Total {
			line += fmt.Sprintf(", %d/sec", rate)
		}
	}
	return line
}
