package http

import (
	"net/http"

	"weblog-analyzer/internal/shared/loggers"
	"weblog-analyzer/internal/shared/metrics"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates the status server router.
func NewRouter(status StatusProvider, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	router.Get("/status", errorHandlingAdapter(NewStatusHandler(status)))
	router.Get("/healthz", errorHandlingAdapter(healthHandler{}))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
