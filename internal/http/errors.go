package http

import (
	"weblog-analyzer/internal/shared/svcerrors"
)

// Status server errors
const (
	codeRunNotStarted = "HTTP_1000"
)

func errRunNotStarted() *svcerrors.ServiceError {
	return svcerrors.NewResourceError(codeRunNotStarted, "run has not started", nil)
}
