package svcerrors

import (
	"errors"
	"fmt"
)

const (
	categoryInvalidArgument     = "invalid_argument"
	categoryResourceUnavailable = "resource_unavailable"
	categoryCorruptState        = "corrupt_state"
	categoryInternal            = "internal"
)

const (
	errorCodeInternalPanic     = "SYS_9000"
	errorCodeInternalUndefined = "SYS_9001"
)

// Process exit codes shared by the CLI.
const (
	ExitOK        = 0
	ExitNoRecords = 1
	ExitUsage     = 2
	ExitInternal  = 3
)

// NewInvalidArgumentError creates a new ServiceError with category invalid_argument.
func NewInvalidArgumentError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInvalidArgument,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: 400,
		ExitCode:       ExitUsage,
	}
}

// NewInternalError creates a new ServiceError with category internal.
func NewInternalError(code string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryInternal,
		Code:           code,
		Message:        "internal error",
		Cause:          cause,
		HttpStatusCode: 500,
		ExitCode:       ExitInternal,
	}
}

// NewInternalErrorUndefined creates a new ServiceError with category internal and code SYS_9001.
func NewInternalErrorUndefined(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalUndefined, cause)
}

func NewInternalErrorPanic(cause error) *ServiceError {
	return NewInternalError(errorCodeInternalPanic, cause)
}

// NewResourceError creates a new ServiceError for an input or output resource that cannot be used
// (missing log file, symlinked target, locked cache).
func NewResourceError(code, message string, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryResourceUnavailable,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: 503,
		ExitCode:       ExitNoRecords,
	}
}

// NewCorruptStateError creates a new ServiceError for persisted state that failed to load.
// exitCode identifies the failing section and becomes the process exit status.
func NewCorruptStateError(code, message string, exitCode int, cause error) *ServiceError {
	return &ServiceError{
		Category:       categoryCorruptState,
		Code:           code,
		Message:        message,
		Cause:          cause,
		HttpStatusCode: 500,
		ExitCode:       exitCode,
	}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr, true
	}
	return nil, false
}

// ServiceError represents a service-level error with category, code, message, and cause.
// It implements the error interface and supports error wrapping.
type ServiceError struct {
	Category       string // invalid_argument, resource_unavailable, corrupt_state or internal
	Code           string // service-owned stable code (e.g. STA_1000)
	Message        string // human-readable
	Cause          error  // wrapped underlying error
	HttpStatusCode int    // HTTP status code for the status server
	ExitCode       int    // process exit status when the error ends a run
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error to support errors.Is and errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

func (e *ServiceError) IsInternalError() bool {
	return e.Category == categoryInternal
}

// ExitCodeOf returns the exit status carried by err, ExitInternal for foreign errors and ExitOK for nil.
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitOK
	}
	if svcErr, ok := AsServiceError(err); ok {
		return svcErr.ExitCode
	}
	return ExitInternal
}
