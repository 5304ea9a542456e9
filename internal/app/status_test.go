package app

import (
	"testing"

	"weblog-analyzer/internal/ingestors"
	ingestormocks "weblog-analyzer/internal/ingestors/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRunStatus(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	ingestor := ingestormocks.NewMockIngestionService(ctrl)
	ingestor.EXPECT().Result().Return(ingestors.IngestResult{Total: 10, Ignored: 2, Bad: 1})

	s := newRunStatus("run-1")
	_, ok := s.Status()
	assert.False(t, ok, "no status before the first phase")

	s.setPhase(phaseResolve)
	first, ok := s.Status()
	require.True(t, ok)
	assert.Equal(t, phaseResolve, first.Phase)
	assert.Zero(t, first.Total)

	s.setPhase(phaseAggregate)
	s.setIngestor(ingestor)
	s.setSource("access.log")
	s.setMonth(2024, 0)
	s.setMonth(2024, 2)

	got, ok := s.Status()
	require.True(t, ok)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, phaseAggregate, got.Phase)
	assert.Equal(t, "access.log", got.Source)
	assert.Equal(t, "2024-02", got.Month)
	assert.Equal(t, first.StartedAt, got.StartedAt)
	assert.Equal(t, uint64(10), got.Total)
	assert.Equal(t, uint64(2), got.Ignored)
	assert.Equal(t, uint64(1), got.Bad)
}
