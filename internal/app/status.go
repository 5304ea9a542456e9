package app

import (
	"fmt"
	"sync"
	"time"

	internalhttp "weblog-analyzer/internal/http"
	"weblog-analyzer/internal/ingestors"
)

// Run phases reported by /status.
const (
	phaseResolve   = "resolve"
	phaseAggregate = "aggregate"
	phaseFinalize  = "finalize"
	phaseDone      = "done"
)

// runStatus publishes the progress of a run to the status server.
type runStatus struct {
	mu       sync.Mutex
	runID    string
	started  time.Time
	phase    string
	source   string
	month    string
	ingestor ingestors.IngestionService
}

func newRunStatus(runID string) *runStatus {
	return &runStatus{runID: runID}
}

func (s *runStatus) setPhase(phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started.IsZero() {
		s.started = time.Now().UTC()
	}
	s.phase = phase
}

func (s *runStatus) setIngestor(ingestor ingestors.IngestionService) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ingestor = ingestor
}

func (s *runStatus) setSource(source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.source = source
}

func (s *runStatus) setMonth(year, month int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if month != 0 {
		s.month = fmt.Sprintf("%04d-%02d", year, month)
	}
}

func (s *runStatus) Status() (internalhttp.RunStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == "" {
		return internalhttp.RunStatus{}, false
	}
	status := internalhttp.RunStatus{
		RunID:     s.runID,
		Phase:     s.phase,
		Source:    s.source,
		StartedAt: s.started,
		Month:     s.month,
	}
	if s.ingestor != nil {
		res := s.ingestor.Result()
		status.Total, status.Ignored, status.Bad = res.Total, res.Ignored, res.Bad
	}
	return status, true
}
