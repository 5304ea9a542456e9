package stores

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"

	"weblog-analyzer/internal/aggregators"
	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/loggers"
)

// stateReader parses a state file strictly in file order. Any deviation stops the restore with the
// code of the section being read.
type stateReader struct {
	r     *bufio.Reader
	actx  *aggregators.AggregationContext
	ctx   context.Context
	line  int
	ioErr error
}

// next returns the following line without its newline.
func (sr *stateReader) next() (string, bool) {
	s, err := sr.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			sr.ioErr = err
			return "", false
		}
		if s == "" {
			return "", false
		}
	}
	sr.line++
	return strings.TrimRight(s, "\r\n"), true
}

func (sr *stateReader) fail(section string, code int, reason string) *RestoreError {
	return &RestoreError{Section: section, Code: code, Line: sr.line, Reason: reason}
}

// numbers reads a line of exactly n unsigned integers.
func (sr *stateReader) numbers(section string, code, n int) ([]uint64, *RestoreError) {
	line, ok := sr.next()
	if !ok {
		return nil, sr.fail(section, code, "unexpected end of file")
	}
	return sr.parseNumbers(line, section, code, n)
}

func (sr *stateReader) parseNumbers(line, section string, code, n int) ([]uint64, *RestoreError) {
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, sr.fail(section, code, "expected "+strconv.Itoa(n)+" fields, got "+strconv.Itoa(len(fields)))
	}
	out := make([]uint64, n)
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, sr.fail(section, code, "bad number "+strconv.Quote(f))
		}
		out[i] = v
	}
	return out, nil
}

func (sr *stateReader) restore() *RestoreError {
	actx := sr.actx

	header, ok := sr.next()
	if !ok {
		return sr.fail("header", RestoreCodeHeader, "missing header")
	}
	if !strings.HasPrefix(header, stateMagic) && !strings.HasPrefix(header, stateMagicLegacy) {
		return sr.fail("header", RestoreCodeBadMagic, "unknown state file version")
	}

	v, rerr := sr.numbers("time", RestoreCodeTime, 6)
	if rerr != nil {
		return rerr
	}
	rt := models.RecordTime{Year: int(v[0]), Month: int(v[1]), Day: int(v[2]), Hour: int(v[3]), Minute: int(v[4]), Second: int(v[5])}
	if rt.Month < 1 || rt.Month > 12 || rt.Day < 1 || rt.Day > 31 || rt.Hour > 23 {
		return sr.fail("time", RestoreCodeTime, "time out of range")
	}
	actx.Cursor.RecordTime = rt
	actx.Cursor.Stamp = rt.Stamp()

	if v, rerr = sr.numbers("monthly totals", RestoreCodeMonthlyTotals, 10); rerr != nil {
		return rerr
	}
	actx.Totals = aggregators.Totals{
		Hits: v[0], Files: v[1], Sites: v[2], URLs: v[3], Referrers: v[4],
		Agents: v[5], Xfer: v[6], Pages: v[7], Visits: v[8], Users: v[9],
	}

	if v, rerr = sr.numbers("daily totals", RestoreCodeDailyTotals, 5); rerr != nil {
		return rerr
	}
	actx.DaySites, actx.HourHits, actx.MaxHourHits = v[0], v[1], v[2]
	actx.FirstDay, actx.LastDay = int(v[3]), int(v[4])

	for i := range actx.Days {
		if v, rerr = sr.numbers("days", RestoreCodeDays, 6); rerr != nil {
			return rerr
		}
		actx.Days[i] = aggregators.DayCounters{Hits: v[0], Files: v[1], Xfer: v[2], Sites: v[3], Pages: v[4], Visits: v[5]}
	}

	for i := range actx.Hours {
		if v, rerr = sr.numbers("hours", RestoreCodeHours, 4); rerr != nil {
			return rerr
		}
		actx.Hours[i] = aggregators.HourCounters{Hits: v[0], Files: v[1], Xfer: v[2], Pages: v[3]}
	}

	// Files written with one response slot less end the list with the URL section header.
	urlHeaderRead := false
	for i := range actx.Responses {
		line, ok := sr.next()
		if !ok {
			return sr.fail("responses", RestoreCodeResponses, "unexpected end of file")
		}
		if i == len(actx.Responses)-1 && strings.HasPrefix(line, sectionURLs) {
			actx.Responses[i] = 0
			urlHeaderRead = true
			break
		}
		n, rerr := sr.parseNumbers(line, "responses", RestoreCodeResponses, 1)
		if rerr != nil {
			return rerr
		}
		actx.Responses[i] = n[0]
	}

	return sr.tables(urlHeaderRead)
}

func (sr *stateReader) tables(urlHeaderRead bool) *RestoreError {
	actx := sr.actx

	err := sr.table("urls", RestoreCodeURLs, sectionURLs, !urlHeaderRead, 6, false, func(key string, kind models.ObjectKind, v []uint64, _ string) error {
		return actx.RestoreURL(aggregators.URLNode{
			Node: aggregators.Node{Key: key, Kind: kind, Count: v[1]},
			Xfer: v[3], Entry: v[4], Exit: v[5],
		})
	})
	if err != nil {
		return err
	}

	restoreSites := func(t *aggregators.SiteTable) func(string, models.ObjectKind, []uint64, string) error {
		return func(key string, kind models.ObjectKind, v []uint64, last string) error {
			if strings.HasPrefix(last, "-") {
				last = ""
			}
			return actx.RestoreSite(t, aggregators.SiteNode{
				Node:  aggregators.Node{Key: key, Kind: kind, Count: v[1]},
				Files: v[2], Xfer: v[3], Visits: v[4], Stamp: int64(v[5]), LastURL: last,
			})
		}
	}
	if err := sr.table("monthly sites", RestoreCodeMonthlySites, sectionMonthlySites, true, 6, true, restoreSites(actx.MonthlySites)); err != nil {
		return err
	}
	if err := sr.table("daily sites", RestoreCodeDailySites, sectionDailySites, true, 6, true, restoreSites(actx.DailySites)); err != nil {
		return err
	}

	err = sr.table("referrers", RestoreCodeReferrers, sectionReferrers, true, 2, false, func(key string, kind models.ObjectKind, v []uint64, _ string) error {
		_, err := actx.PutReferrer(key, kind, v[1])
		return err
	})
	if err != nil {
		return err
	}

	err = sr.table("agents", RestoreCodeAgents, sectionAgents, true, 2, false, func(key string, kind models.ObjectKind, v []uint64, _ string) error {
		_, err := actx.PutAgent(key, kind, v[1])
		return err
	})
	if err != nil {
		return err
	}

	// Search phrases carry no kind column.
	err = sr.table("search strings", RestoreCodeSearch, sectionSearch, true, 1, false, func(key string, _ models.ObjectKind, v []uint64, _ string) error {
		_, err := actx.PutSearch(key, v[0])
		return err
	})
	if err != nil {
		return err
	}

	return sr.table("usernames", RestoreCodeUsers, sectionUsers, true, 6, false, func(key string, kind models.ObjectKind, v []uint64, _ string) error {
		return actx.RestoreIdent(aggregators.IdentNode{
			Node:  aggregators.Node{Key: key, Kind: kind, Count: v[1]},
			Files: v[2], Xfer: v[3], Visits: v[4], Stamp: int64(v[5]),
		})
	})
}

// table reads one section: an optional header, then records of a key line, a numeric line of
// fields values and, with aux set, one more line, until the end of table marker. When fields is
// above 1 the first value is the node kind.
func (sr *stateReader) table(section string, code int, header string, readHeader bool, fields int, aux bool,
	put func(key string, kind models.ObjectKind, v []uint64, aux string) error) *RestoreError {
	if readHeader {
		line, ok := sr.next()
		if !ok || !strings.HasPrefix(line, header) {
			return sr.fail(section, code, "missing table header")
		}
	}

	for {
		key, ok := sr.next()
		if !ok {
			return sr.fail(section, code, "missing end of table")
		}
		if strings.HasPrefix(key, endOfTable) {
			return nil
		}

		line, ok := sr.next()
		if !ok || line == "" || line[0] < '0' || line[0] > '9' {
			return sr.fail(section, code, "bad record")
		}
		v, rerr := sr.parseNumbers(line, section, code, fields)
		if rerr != nil {
			return rerr
		}

		kind := models.KindRegular
		if fields > 1 {
			k, err := models.ParseObjectKind(int(v[0]))
			if err != nil {
				return sr.fail(section, code, err.Error())
			}
			kind = k
		}

		var extra string
		if aux {
			if extra, ok = sr.next(); !ok {
				return sr.fail(section, code, "missing last url")
			}
		}

		if err := put(key, kind, v, extra); err != nil {
			loggers.Ctx(sr.ctx).Warn().Err(err).Str(loggers.FieldTable, section).Str("key", key).Msg("restored node skipped")
		}
	}
}
