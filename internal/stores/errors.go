package stores

import (
	"fmt"

	"weblog-analyzer/internal/shared/svcerrors"
)

const (
	codeStateCorrupt        = "STA_1000"
	codeInternalStateSave   = "STA_9000"
	codeInternalStateRead   = "STA_9001"
	codeInternalStateRemove = "STA_9002"
	codeInternalHistoryLoad = "HIS_9000"
	codeInternalHistorySave = "HIS_9001"

	restoreMessage = "incremental state could not be restored"
)

// Section codes of a failed restore. They double as the process exit status.
const (
	RestoreCodeHeader        = 1
	RestoreCodeTime          = 2
	RestoreCodeMonthlyTotals = 3
	RestoreCodeDailyTotals   = 4
	RestoreCodeDays          = 5
	RestoreCodeHours         = 6
	RestoreCodeResponses     = 7
	RestoreCodeMonthlySites  = 8
	RestoreCodeDailySites    = 9
	RestoreCodeURLs          = 10
	RestoreCodeReferrers     = 11
	RestoreCodeAgents        = 12
	RestoreCodeSearch        = 13
	RestoreCodeUsers         = 14
	RestoreCodeBadMagic      = 99
)

// RestoreError identifies the section of a state file that did not match the expected layout.
type RestoreError struct {
	Section string
	Code    int
	Line    int
	Reason  string
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("restore failed in %s (code %d) at line %d: %s", e.Section, e.Code, e.Line, e.Reason)
}

// errStateCorrupt returns an error whose exit code is the failing section code.
func errStateCorrupt(cause *RestoreError) *svcerrors.ServiceError {
	return svcerrors.NewCorruptStateError(codeStateCorrupt, restoreMessage, cause.Code, cause)
}

// errInternalStateRead returns an error when the state file exists but cannot be read.
func errInternalStateRead(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStateRead, fmt.Errorf("stateReadFailed: %w", cause))
}

// errStateSaveFailed returns an error when the state file could not be written.
func errStateSaveFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStateSave, fmt.Errorf("stateSaveFailed: %w", cause))
}

// errStateRemoveFailed returns an error when a stale state file could not be deleted.
func errStateRemoveFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStateRemove, fmt.Errorf("stateRemoveFailed: %w", cause))
}

// errHistoryLoadFailed returns an error when the history file cannot be read.
func errHistoryLoadFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalHistoryLoad, fmt.Errorf("historyLoadFailed: %w", cause))
}

// errHistorySaveFailed returns an error when the history file could not be written.
func errHistorySaveFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalHistorySave, fmt.Errorf("historySaveFailed: %w", cause))
}
