package ingestors

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"

	"weblog-analyzer/internal/aggregators"
	"weblog-analyzer/internal/classifiers"
	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/normalizers"
	"weblog-analyzer/internal/parsers"
	"weblog-analyzer/internal/shared/loggers"
)

// sequenceSlop is how far, in seconds, a record may lag the cursor before it is dropped.
const sequenceSlop = 3600

const netscapeHeader = "format="

// IngestResult holds the record counters of a run.
type IngestResult struct {
	Total   uint64
	Ignored uint64
	Bad     uint64
	// GoodRecords is set once a record passed the date check.
	GoodRecords bool
}

// Processed reports whether any record made it into the tables.
func (r IngestResult) Processed() bool {
	return r.Total > r.Ignored+r.Bad
}

// HostLookup returns the cached name of a numeric host.
type HostLookup interface {
	Lookup(ctx context.Context, host string) (string, bool)
}

//go:generate mockgen -source=ingestion_service.go -destination=./mocks/ingestion_service_mock.go -package=mocks
type IngestionService interface {
	// ArmDuplicateCheck drops records not newer than the restored cursor until the first newer one.
	ArmDuplicateCheck()
	// Ingest feeds every line of r into actx. Counters accumulate across calls.
	Ingest(ctx context.Context, actx *aggregators.AggregationContext, source string, r io.Reader) error
	// Result returns a snapshot of the counters. It is safe to call while Ingest runs.
	Result() IngestResult
}

type Options struct {
	FoldSequenceErrors bool
	Hosts              HostLookup // nil disables resolution
}

type ingestionService struct {
	parser      parsers.RecordParser
	normalizer  normalizers.FieldNormalizer
	lists       *classifiers.Lists
	aggregation aggregators.AggregationService
	rolluper    aggregators.PeriodRolluper
	hosts       HostLookup
	fold        bool

	checkDup bool
	total    atomic.Uint64
	ignored  atomic.Uint64
	bad      atomic.Uint64
	good     atomic.Bool
}

func NewIngestionService(
	parser parsers.RecordParser,
	normalizer normalizers.FieldNormalizer,
	lists *classifiers.Lists,
	aggregation aggregators.AggregationService,
	rolluper aggregators.PeriodRolluper,
	opts Options,
) IngestionService {
	if lists == nil {
		lists = &classifiers.Lists{}
	}
	return &ingestionService{
		parser:      parser,
		normalizer:  normalizer,
		lists:       lists,
		aggregation: aggregation,
		rolluper:    rolluper,
		hosts:       opts.Hosts,
		fold:        opts.FoldSequenceErrors,
	}
}

func (s *ingestionService) ArmDuplicateCheck() {
	s.checkDup = true
}

func (s *ingestionService) Result() IngestResult {
	return IngestResult{
		Total:       s.total.Load(),
		Ignored:     s.ignored.Load(),
		Bad:         s.bad.Load(),
		GoodRecords: s.good.Load(),
	}
}

func (s *ingestionService) Ingest(ctx context.Context, actx *aggregators.AggregationContext, source string, r io.Reader) error {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldComponent, "ingestor").Str(loggers.FieldLogFile, source).Logger()
	ctx = logger.WithContext(ctx)
	logger.Debug().Msg("started reading log")

	lr := parsers.NewLineReader(r)
	for first := true; ; first = false {
		line, overlong, err := lr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return errInternalReadFailed(source, err)
		}
		n := s.total.Add(1)

		if overlong {
			s.markBad(&logger, n, "record too long", "")
			continue
		}
		if err := s.ingestLine(ctx, actx, line, n, first); err != nil {
			return err
		}
	}

	res := s.Result()
	logger.Debug().Uint64("total", res.Total).Uint64("ignored", res.Ignored).Uint64("bad", res.Bad).Msg("finished reading log")
	return nil
}

func (s *ingestionService) ingestLine(ctx context.Context, actx *aggregators.AggregationContext, line string, n uint64, first bool) error {
	logger := loggers.Ctx(ctx)

	rec, err := s.parser.Parse(ctx, line)
	if err != nil {
		switch {
		case first && strings.HasPrefix(line, netscapeHeader):
			logger.Debug().Msg("skipping netscape header record")
			s.markIgnored()
		case errors.Is(err, parsers.ErrHeaderRecord):
			s.markIgnored()
		default:
			s.markBad(logger, n, "bad record", line)
		}
		return nil
	}

	rec.Hostname = strings.ToLower(rec.Hostname)
	rt, err := models.ParseRecordTime(rec.DateTime)
	if err != nil {
		s.markBad(logger, n, "bad date "+rec.DateTime, line)
		return nil
	}
	s.good.Store(true)

	cur := &actx.Cursor
	prevStamp := cur.Stamp
	stamp := rt.Stamp()

	if s.checkDup {
		if stamp <= cur.Stamp {
			s.markIgnored()
			return nil
		}
		s.checkDup = false
		if !rt.SameMonth(cur.RecordTime) {
			actx.ClearMonth()
			cur.RecordTime = rt
			cur.Stamp = stamp
			actx.FirstDay = rt.Day
			actx.LastDay = rt.Day
		}
	}

	if stamp/3600 < cur.Stamp/3600 {
		if !s.fold && (stamp+sequenceSlop)/3600 < cur.Stamp/3600 {
			s.markIgnored()
			return nil
		}
		rt = cur.RecordTime
		stamp = cur.Stamp
	}
	cur.Stamp = stamp

	s.normalizer.NormalizeRequest(ctx, rec)

	if err := s.rolluper.Advance(ctx, actx, rt, prevStamp); err != nil {
		return err
	}

	original := rec.Hostname
	if s.hosts != nil && classifiers.IsAddress(rec.Hostname) {
		if name, ok := s.hosts.Lookup(ctx, rec.Hostname); ok {
			rec.Hostname = name
		}
	}
	rec.Hostname = s.normalizer.NormalizeHostname(rec.Hostname, original)

	if s.lists.Ignored(rec) {
		s.markIgnored()
		return nil
	}

	s.aggregation.Aggregate(ctx, actx, rec, rt, stamp)
	metricRecordsProcessedTotal.WithLabelValues(resultOK).Inc()
	return nil
}

func (s *ingestionService) markIgnored() {
	s.ignored.Add(1)
	metricRecordsProcessedTotal.WithLabelValues(resultIgnored).Inc()
}

func (s *ingestionService) markBad(logger *loggers.Logger, n uint64, msg, raw string) {
	s.bad.Add(1)
	metricRecordsProcessedTotal.WithLabelValues(resultBad).Inc()
	ev := logger.Warn().Uint64(loggers.FieldRecordNumber, n)
	if raw != "" && loggers.DebugEnabled(logger) {
		ev = ev.Str(loggers.FieldRawLine, raw)
	}
	ev.Msg(msg)
}
