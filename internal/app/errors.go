package app

import (
	"errors"
	"fmt"

	"weblog-analyzer/internal/shared/svcerrors"
)

// ErrNoValidRecords ends a run in which every record was ignored or bad.
var ErrNoValidRecords = errors.New("no valid records found")

// App errors
const (
	codeNoInputMatched    = "APP_1000"
	codeLogSymlink        = "APP_1001"
	codeLogOpenFailed     = "APP_1002"
	codeNoValidRecords    = "APP_1003"
	codeInvalidConfig     = "APP_1004"
	codeInternalDecoder   = "APP_9000"
	codeInternalStorage   = "APP_9001"
	codeInternalServerRun = "APP_9002"
)

func errNoInputMatched(pattern string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeNoInputMatched, fmt.Sprintf("no log file matches %q", pattern), nil)
}

func errLogSymlink(path string) *svcerrors.ServiceError {
	return svcerrors.NewResourceError(codeLogSymlink, fmt.Sprintf("log file %q is a symbolic link", path), nil)
}

func errLogOpenFailed(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceError(codeLogOpenFailed, fmt.Sprintf("cannot open log file %q", path), cause)
}

func errNoValidRecords() *svcerrors.ServiceError {
	return svcerrors.NewResourceError(codeNoValidRecords, "no valid records found", ErrNoValidRecords)
}

func errInvalidConfig(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidConfig, "invalid configuration", cause)
}

func errInternalDecoder(path string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalDecoder, fmt.Errorf("decoderFailed path=%q: %w", path, cause))
}

func errInternalStorage(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalStorage, fmt.Errorf("storageInitFailed: %w", cause))
}

func errInternalServerRun(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalServerRun, fmt.Errorf("statusServerFailed: %w", cause))
}
