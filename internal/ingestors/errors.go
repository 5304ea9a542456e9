package ingestors

import (
	"fmt"

	"weblog-analyzer/internal/shared/svcerrors"
)

// IngestionService errors
const (
	codeInternalReadFailed = "ING_9000"
)

// errInternalReadFailed returns an error when a log source cannot be read to its end.
func errInternalReadFailed(source string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalReadFailed, fmt.Errorf("readFailed source=%q: %w", source, cause))
}
