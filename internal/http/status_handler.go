package http

import (
	"encoding/json"
	"net/http"
	"time"
)

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

// RunStatus is the progress of the running analysis.
type RunStatus struct {
	RunID     string    `json:"runId"`
	Phase     string    `json:"phase"`
	Source    string    `json:"source,omitempty"`
	StartedAt time.Time `json:"startedAt"`
	Month     string    `json:"month,omitempty"` // YYYY-MM being accumulated
	Total     uint64    `json:"total"`
	Ignored   uint64    `json:"ignored"`
	Bad       uint64    `json:"bad"`
}

//go:generate mockgen -source=status_handler.go -destination=./mocks/status_handler_mock.go -package=mocks
type StatusProvider interface {
	// Status returns the current progress. ok is false until the run has started.
	Status() (status RunStatus, ok bool)
}

type statusHandler struct {
	provider StatusProvider
}

func NewStatusHandler(provider StatusProvider) AppHttpHandler {
	return &statusHandler{provider: provider}
}

// Handle serves GET /status.
func (h *statusHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	status, ok := h.provider.Status()
	if !ok {
		return errRunNotStarted()
	}
	w.Header().Set(headerContentType, "application/json")
	w.WriteHeader(http.StatusOK)
	return json.NewEncoder(w).Encode(status)
}

type healthHandler struct{}

// Handle serves GET /healthz.
func (healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set(headerContentType, "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write([]byte("ok\n"))
	return err
}
