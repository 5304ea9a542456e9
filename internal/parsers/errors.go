package parsers

import (
	"errors"
	"fmt"

	"weblog-analyzer/internal/shared/svcerrors"
)

var (
	// ErrMalformedRecord is returned for lines that do not hold a usable record. They count as bad.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrHeaderRecord is returned for empty lines and comment or directive lines. They count as ignored.
	ErrHeaderRecord = errors.New("header record")
)

const (
	codeUnsupportedLogType = "PRS_1000"
)

func errUnsupportedLogType(logType string) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeUnsupportedLogType, "unsupported log type", fmt.Errorf("logType=%q", logType))
}
