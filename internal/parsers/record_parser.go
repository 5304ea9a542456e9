package parsers

import (
	"context"
	"time"

	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/loggers"
)

//go:generate mockgen -source=record_parser.go -destination=./mocks/record_parser_mock.go -package=mocks
type RecordParser interface {
	// Parse splits one raw line, without its line terminator, into a record.
	// It returns ErrHeaderRecord or ErrMalformedRecord when the line carries no record.
	Parse(ctx context.Context, line string) (*models.LogRecord, error)
}

// Options tune format specific behaviour.
type Options struct {
	// Location converts epoch and GMT timestamps into the wall clock used for reporting.
	Location *time.Location
	// TrimSquidURL keeps Squid URLs up to this many path segments. Zero keeps the whole URL.
	TrimSquidURL int
}

// NewRecordParser returns the parser for a log format. W3C parsers are stateful and must not be shared
// between independent inputs.
func NewRecordParser(logType models.LogType, opts Options) (RecordParser, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	switch logType {
	case models.LogCLF:
		return &clfParser{}, nil
	case models.LogFTP:
		return &ftpParser{}, nil
	case models.LogSquid:
		return &squidParser{location: opts.Location, trim: opts.TrimSquidURL}, nil
	case models.LogW3C:
		return &w3cParser{location: opts.Location}, nil
	}
	return nil, errUnsupportedLogType(string(logType))
}

// clfTimeLayout renders a CLF timestamp with timefmt-go.
const clfTimeLayout = "[%d/%b/%Y:%H:%M:%S -0000]"

// bounded cuts a field to its storage bound, reporting oversized values.
func bounded(ctx context.Context, field, value string, bound int, raw string) string {
	cut, truncated := models.Truncate(value, bound)
	if truncated {
		warnOversized(ctx, field, raw)
	}
	return cut
}

func warnOversized(ctx context.Context, field, raw string) {
	metricFieldTruncatedTotal.WithLabelValues(field).Inc()
	logger := loggers.Ctx(ctx)
	ev := logger.Warn().Str(loggers.FieldName, field)
	if loggers.DebugEnabled(logger) {
		ev = ev.Str(loggers.FieldRawLine, raw)
	}
	ev.Msg("oversized field truncated")
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
