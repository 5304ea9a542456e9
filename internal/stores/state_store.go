package stores

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"weblog-analyzer/internal/aggregators"
	"weblog-analyzer/internal/shared/filestorages"
	"weblog-analyzer/internal/shared/loggers"
	"weblog-analyzer/internal/shared/metrics"
)

// Accepted first lines of a state file. The current magic matches every 2.2x writer.
const (
	stateMagic       = "# Webalizer V2.2"
	stateMagicLegacy = "# Webalizer V2.01-1"
)

// Table section markers, in file order.
const (
	sectionURLs         = "# -urls- "
	sectionMonthlySites = "# -sites- (monthly)"
	sectionDailySites   = "# -sites- (daily)"
	sectionReferrers    = "# -referrers- "
	sectionAgents       = "# -agents- "
	sectionSearch       = "# -search strings- "
	sectionUsers        = "# -usernames- "
	endOfTable          = "# End Of Table "
)

//go:generate mockgen -source=state_store.go -destination=./mocks/state_store_mock.go -package=mocks
type StateStore interface {
	// Save writes every table and counter of actx so that a later run can resume the month.
	Save(ctx context.Context, actx *aggregators.AggregationContext) error
	// Restore loads the state file into an empty actx. It reports false when no state file exists.
	// A layout mismatch yields a ServiceError carrying the RestoreError of the failing section.
	Restore(ctx context.Context, actx *aggregators.AggregationContext) (bool, error)
	// Remove deletes the state file.
	Remove(ctx context.Context) error
}

type stateStore struct {
	fileStorage filestorages.FileStorage
	name        string
}

func NewStateStore(fileStorage filestorages.FileStorage, name string) StateStore {
	return &stateStore{fileStorage: fileStorage, name: name}
}

func (s *stateStore) Save(ctx context.Context, actx *aggregators.AggregationContext) error {
	var buf bytes.Buffer
	writeState(&buf, actx)

	tmpName := s.name + newSuffix
	_, err := s.fileStorage.Put(ctx, tmpName, &buf, filestorages.PutOptions{AllowOverwrite: true})
	if err == nil {
		err = s.fileStorage.Rename(ctx, tmpName, s.name)
	}
	if err != nil {
		svcErr := errStateSaveFailed(err)
		metricStateSavedTotal.WithLabelValues(svcErr.Code).Inc()
		return svcErr
	}
	metricStateSavedTotal.WithLabelValues(metrics.ValueNoError).Inc()
	return nil
}

func (s *stateStore) Restore(ctx context.Context, actx *aggregators.AggregationContext) (bool, error) {
	logger := loggers.Ctx(ctx).With().Str(loggers.FieldComponent, "store").Str(loggers.FieldName, s.name).Logger()

	rc, err := s.fileStorage.Get(ctx, s.name)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) {
			logger.Debug().Msg("no previous run data")
			return false, nil
		}
		return false, errInternalStateRead(err)
	}
	defer rc.Close()

	sr := &stateReader{r: bufio.NewReader(rc), actx: actx, ctx: ctx}
	rerr := sr.restore()
	if sr.ioErr != nil {
		return false, errInternalStateRead(sr.ioErr)
	}
	if rerr != nil {
		svcErr := errStateCorrupt(rerr)
		metricStateRestoredTotal.WithLabelValues(svcErr.Code).Inc()
		return false, svcErr
	}
	metricStateRestoredTotal.WithLabelValues(metrics.ValueNoError).Inc()
	logger.Debug().Int("year", actx.Cursor.Year).Int("month", actx.Cursor.Month).Msg("previous run data restored")
	return true, nil
}

func (s *stateStore) Remove(ctx context.Context) error {
	if err := s.fileStorage.Remove(ctx, s.name); err != nil {
		return errStateRemoveFailed(err)
	}
	return nil
}

func writeState(w io.Writer, actx *aggregators.AggregationContext) {
	c := actx.Cursor
	fmt.Fprintf(w, "%s Incremental Data - %02d/%02d/%04d %02d:%02d:%02d\n",
		headerPrefix, c.Month, c.Day, c.Year, c.Hour, c.Minute, c.Second)
	fmt.Fprintf(w, "%d %d %d %d %d %d\n", c.Year, c.Month, c.Day, c.Hour, c.Minute, c.Second)

	t := actx.Totals
	fmt.Fprintf(w, "%d %d %d %d %d %d %d %d %d %d\n",
		t.Hits, t.Files, t.Sites, t.URLs, t.Referrers, t.Agents, t.Xfer, t.Pages, t.Visits, t.Users)
	fmt.Fprintf(w, "%d %d %d %d %d\n", actx.DaySites, actx.HourHits, actx.MaxHourHits, actx.FirstDay, actx.LastDay)

	for _, d := range actx.Days {
		fmt.Fprintf(w, "%d %d %d %d %d %d\n", d.Hits, d.Files, d.Xfer, d.Sites, d.Pages, d.Visits)
	}
	for _, h := range actx.Hours {
		fmt.Fprintf(w, "%d %d %d %d\n", h.Hits, h.Files, h.Xfer, h.Pages)
	}
	for _, n := range actx.Responses {
		fmt.Fprintf(w, "%d\n", n)
	}

	fmt.Fprintln(w, sectionURLs)
	actx.URLs.Each(func(n *aggregators.URLNode) {
		fmt.Fprintf(w, "%s\n%d %d 0 %d %d %d\n", n.Key, int(n.Kind), n.Count, n.Xfer, n.Entry, n.Exit)
	})
	fmt.Fprintln(w, endOfTable+"- urls")

	writeSites := func(t *aggregators.SiteTable) {
		t.Each(func(n *aggregators.SiteNode) {
			last := n.LastURL
			if last == "" {
				last = "-"
			}
			fmt.Fprintf(w, "%s\n%d %d %d %d %d %d\n%s\n", n.Key, int(n.Kind), n.Count, n.Files, n.Xfer, n.Visits, n.Stamp, last)
		})
	}
	fmt.Fprintln(w, sectionMonthlySites)
	writeSites(actx.MonthlySites)
	fmt.Fprintln(w, endOfTable+"- sites (monthly)")
	fmt.Fprintln(w, sectionDailySites)
	writeSites(actx.DailySites)
	fmt.Fprintln(w, endOfTable+"- sites (daily)")

	fmt.Fprintln(w, sectionReferrers)
	if t.Referrers != 0 {
		actx.Referrers.Each(func(n *aggregators.ReferrerNode) {
			fmt.Fprintf(w, "%s\n%d %d\n", n.Key, int(n.Kind), n.Count)
		})
	}
	fmt.Fprintln(w, endOfTable+"- referrers")

	fmt.Fprintln(w, sectionAgents)
	if t.Agents != 0 {
		actx.Agents.Each(func(n *aggregators.AgentNode) {
			fmt.Fprintf(w, "%s\n%d %d\n", n.Key, int(n.Kind), n.Count)
		})
	}
	fmt.Fprintln(w, endOfTable+"- agents")

	fmt.Fprintln(w, sectionSearch)
	actx.SearchStrings.Each(func(n *aggregators.SearchNode) {
		fmt.Fprintf(w, "%s\n%d\n", n.Key, n.Count)
	})
	fmt.Fprintln(w, endOfTable+"- search strings")

	fmt.Fprintln(w, sectionUsers)
	actx.Idents.Each(func(n *aggregators.IdentNode) {
		fmt.Fprintf(w, "%s\n%d %d %d %d %d %d\n", n.Key, int(n.Kind), n.Count, n.Files, n.Xfer, n.Visits, n.Stamp)
	})
	fmt.Fprintln(w, endOfTable+"- usernames")
}
