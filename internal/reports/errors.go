package reports

import (
	"fmt"

	"weblog-analyzer/internal/shared/svcerrors"
)

// Renderer errors
const (
	codeInternalRenderFailed = "RPT_9000"
	codeInternalDumpFailed   = "RPT_9001"
)

func errInternalRenderFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalRenderFailed, fmt.Errorf("renderFailed: %w", cause))
}

func errInternalDumpFailed(key string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalDumpFailed, fmt.Errorf("dumpFailed key=%q: %w", key, cause))
}
