package aggregators

import (
	"fmt"

	"weblog-analyzer/internal/shared/svcerrors"
)

const (
	codeInternalTableInsertFailed = "AGG_9000"
	codeInternalMonthCloseFailed  = "AGG_9001"
)

// errInsertFailed returns an error when a node could not be added to a table.
func errInsertFailed(table string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalTableInsertFailed, fmt.Errorf("tableInsertFailed: table=%s: %w", table, cause))
}

// errInternalMonthCloseFailed returns an error when a finished month could not be handed over.
func errInternalMonthCloseFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalMonthCloseFailed, fmt.Errorf("monthCloseFailed: %w", cause))
}
