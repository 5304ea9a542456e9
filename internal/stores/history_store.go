package stores

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"weblog-analyzer/internal/shared/filestorages"
	"weblog-analyzer/internal/shared/loggers"
	"weblog-analyzer/internal/shared/metrics"

	"github.com/itchyny/timefmt-go"
)

const (
	headerPrefix = "# Webalizer V2.23-08"
	newSuffix    = ".new"
	savedSuffix  = ".sav"
)

//go:generate mockgen -source=history_store.go -destination=./mocks/history_store_mock.go -package=mocks
type HistoryStore interface {
	// Load fills ledger from the history file. A missing file leaves the ledger empty.
	Load(ctx context.Context, ledger *HistoryLedger) error
	// Save writes ledger newest month first. When the ledger skipped a year or more the previous
	// file is kept with a .sav suffix.
	Save(ctx context.Context, ledger *HistoryLedger) error
}

type historyStore struct {
	fileStorage filestorages.FileStorage
	name        string
	now         func() time.Time
}

func NewHistoryStore(fileStorage filestorages.FileStorage, name string) HistoryStore {
	return &historyStore{fileStorage: fileStorage, name: name, now: time.Now}
}

func (s *historyStore) Load(ctx context.Context, ledger *HistoryLedger) error {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldComponent, "store").Str(loggers.FieldName, s.name).Logger()

	rc, err := s.fileStorage.Get(ctx, s.name)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			logger.Debug().Msg("no history file, starting empty")
			return nil
		}
		return errHistoryLoadFailed(err)
	}
	defer rc.Close()

	scanner := bufio.NewScanner(rc)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			continue
		}
		m, ok := parseHistoryLine(line)
		if !ok || !ledger.Load(m) {
			logger.Warn().Int(loggers.FieldRecordNumber, lineNo).Int("month", m.Month).Msg("skipping bad history record")
		}
	}
	if err := scanner.Err(); err != nil {
		return errHistoryLoadFailed(err)
	}
	return nil
}

// parseHistoryLine reads "month year hits files sites xfer first_day last_day pages visits".
// Older files stop after last_day; missing trailing fields stay zero.
func parseHistoryLine(line string) (HistoryMonth, bool) {
	var m HistoryMonth
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return m, false
	}
	ints := []*int{&m.Month, &m.Year}
	for i, dst := range ints {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return m, false
		}
		*dst = v
	}

	targets := []any{&m.Hits, &m.Files, &m.Sites, &m.XferKB, &m.FirstDay, &m.LastDay, &m.Pages, &m.Visits}
	for i, field := range fields[2:] {
		if i >= len(targets) {
			break
		}
		var err error
		switch dst := targets[i].(type) {
		case *uint64:
			*dst, err = strconv.ParseUint(field, 10, 64)
		case *float64:
			*dst, err = strconv.ParseFloat(field, 64)
		case *int:
			*dst, err = strconv.Atoi(field)
		}
		if err != nil {
			return m, true
		}
	}
	return m, true
}

func (s *historyStore) Save(ctx context.Context, ledger *HistoryLedger) error {
	err := s.save(ctx, ledger)
	if err != nil {
		svcErr := errHistorySaveFailed(err)
		metricHistorySavedTotal.WithLabelValues(svcErr.Code).Inc()
		return svcErr
	}
	metricHistorySavedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}

func (s *historyStore) save(ctx context.Context, ledger *HistoryLedger) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s History Data - %s (%d month)\n",
		headerPrefix, timefmt.Format(s.now(), "%d/%b/%Y %H:%M:%S"), ledger.Capacity())

	months := ledger.Months()
	for i := len(months) - 1; i >= 0; i-- {
		m := months[i]
		fmt.Fprintf(&buf, "%d %d %d %d %d %s %d %d %d %d\n",
			m.Month, m.Year, m.Hits, m.Files, m.Sites, strconv.FormatFloat(m.XferKB, 'f', 0, 64),
			m.FirstDay, m.LastDay, m.Pages, m.Visits)
	}

	tmpName := s.name + newSuffix
	if _, err := s.fileStorage.Put(ctx, tmpName, &buf, filestorages.PutOptions{AllowOverwrite: true}); err != nil {
		return err
	}

	if ledger.LargeGap() {
		err := s.fileStorage.Rename(ctx, s.name, s.name+savedSuffix)
		if err != nil && !errors.Is(err, filestorages.ErrFileNotFound) {
			loggers.Ctx(ctx).Warn().Err(err).Str(loggers.FieldName, s.name).Msg("failed to keep previous history")
		}
	}
	return s.fileStorage.Rename(ctx, tmpName, s.name)
}

func monthLabel(month, year int) string {
	return fmt.Sprintf("%d/%d", month, year)
}
