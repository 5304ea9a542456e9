package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"weblog-analyzer/internal/shared/loggers"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger(t *testing.T) loggers.Logger {
	t.Helper()
	logger, err := loggers.NewWithWriter("debug", io.Discard)
	require.NoError(t, err)
	return logger
}

func TestMwRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		provided string
	}{
		{name: "generated when missing"},
		{name: "provided id kept", provided: "scrape-0042"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			handler := mwRequestID(discardLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = requestID(r)
				assert.NotNil(t, loggers.Ctx(r.Context()))
			}))
			req := httptest.NewRequest(http.MethodGet, "/status", nil)
			if tt.provided != "" {
				req.Header.Set(headerRequestID, tt.provided)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if tt.provided != "" {
				assert.Equal(t, tt.provided, seen)
			} else {
				assert.Len(t, seen, 26, "ulid")
			}
		})
	}
}

func TestMwRecoverer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantCode   string
	}{
		{
			name:       "string panic",
			handler:    func(http.ResponseWriter, *http.Request) { panic("table index out of range") },
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SYS_9000",
		},
		{
			name:       "error panic",
			handler:    func(http.ResponseWriter, *http.Request) { panic(assert.AnError) },
			wantStatus: http.StatusInternalServerError,
			wantCode:   "SYS_9000",
		},
		{
			name:       "no panic",
			handler:    func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok\n")) },
			wantStatus: http.StatusOK,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler := mwRecoverer(mwRequestID(discardLogger(t))(tt.handler))
			rr := httptest.NewRecorder()
			require.NotPanics(t, func() {
				handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))
			})

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode == "" {
				assert.Equal(t, "ok\n", rr.Body.String())
				return
			}
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.NotEmpty(t, body.RequestID)
			assert.Equal(t, "internal", body.ErrorCategory)
			assert.Equal(t, tt.wantCode, body.ErrorCode)
			assert.Equal(t, "internal error", body.ErrorDescription)
		})
	}
}

func TestMwRequestCompletionLog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := loggers.NewWithWriter("debug", &buf)
	require.NoError(t, err)

	router := chi.NewRouter()
	setupMiddleware(router, logger)
	router.Get("/status", errorHandlingAdapter(handlerFunc(func(http.ResponseWriter, *http.Request) error {
		return errRunNotStarted()
	})))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	logged := buf.String()
	assert.Contains(t, logged, `"message":"request completed"`)
	assert.Contains(t, logged, `"`+loggers.FieldHttpStatus+`":503`)
	assert.Contains(t, logged, `"`+loggers.FieldErrorCode+`":"`+codeRunNotStarted+`"`)
}

func TestStatusOf(t *testing.T) {
	t.Parallel()

	plain := httptest.NewRecorder()
	status, code := statusOf(plain)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, code)

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	writeErrorResponse(appWriter, httptest.NewRequest(http.MethodGet, "/status", nil), errRunNotStarted())
	status, code = statusOf(appWriter)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, codeRunNotStarted, code)
}
