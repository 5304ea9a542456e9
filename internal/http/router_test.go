package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	internalhttp "weblog-analyzer/internal/http"
	httpmocks "weblog-analyzer/internal/http/mocks"
	"weblog-analyzer/internal/shared/loggers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (http.Handler, *httpmocks.MockStatusProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	provider := httpmocks.NewMockStatusProvider(ctrl)
	logger, err := loggers.New("error")
	require.NoError(t, err)
	return internalhttp.NewRouter(provider, logger), provider
}

func TestRouter_Status(t *testing.T) {
	t.Parallel()

	router, provider := newTestRouter(t)
	started := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	provider.EXPECT().Status().Return(internalhttp.RunStatus{
		RunID:     "01HMABCDEF",
		Phase:     "aggregate",
		Source:    "access.log",
		StartedAt: started,
		Month:     "2024-01",
		Total:     120,
		Ignored:   3,
		Bad:       1,
	}, true)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var got internalhttp.RunStatus
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "aggregate", got.Phase)
	assert.Equal(t, uint64(120), got.Total)
	assert.Equal(t, uint64(3), got.Ignored)
	assert.Equal(t, uint64(1), got.Bad)
	assert.True(t, started.Equal(got.StartedAt))
}

func TestRouter_StatusBeforeRun(t *testing.T) {
	t.Parallel()

	router, provider := newTestRouter(t)
	provider.EXPECT().Status().Return(internalhttp.RunStatus{}, false)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	req.Header.Set("x-request-id", "req-1")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var got internalhttp.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "HTTP_1000", got.ErrorCode)
	assert.Equal(t, "req-1", got.RequestID)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)

	tests := []struct {
		path string
		body string
	}{
		{path: "/healthz", body: "ok\n"},
		{path: "/metrics"},
	}
	for _, tt := range tests {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, tt.path)
		if tt.body != "" {
			assert.Equal(t, tt.body, rr.Body.String())
		}
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/status", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
