package parsers

import (
	"context"
	"strings"

	"weblog-analyzer/internal/models"
)

// clfParser reads Common and Combined log lines:
//
//	host ident authuser [date] "request" status bytes ["referrer" "agent"]
type clfParser struct{}

func (p *clfParser) Parse(ctx context.Context, line string) (*models.LogRecord, error) {
	if line == "" || line[0] == '#' {
		return nil, ErrHeaderRecord
	}
	c := newFieldCursor(line)
	rec := &models.LogRecord{}

	rec.Hostname = bounded(ctx, "hostname", c.next(), models.MaxHost, line)

	c.next() // identd

	// The auth user runs up to the timestamp and may contain spaces.
	rest := c.buf[c.pos:]
	open := -1
	for i, ch := range rest {
		if ch == '[' {
			open = i
			break
		}
	}
	if open < 0 {
		return nil, ErrMalformedRecord
	}
	ident := make([]byte, 0, open)
	for _, ch := range rest[:open] {
		if ch == 0 {
			ch = ' '
		}
		ident = append(ident, ch)
	}
	rec.Ident = strings.TrimRight(bounded(ctx, "ident", string(ident), models.MaxIdent, line), " ")
	c.pos += open

	datetime := c.next()
	if len(datetime) > models.MaxDateTime {
		warnOversized(ctx, "datetime", line)
		datetime = datetime[:models.MaxDateTime]
	}
	if c.atEnd() || len(datetime) < 4 || datetime[0] != '[' || datetime[3] != '/' {
		return nil, ErrMalformedRecord
	}
	rec.DateTime = datetime

	request := bounded(ctx, "request", c.next(), models.MaxURL, line)
	if c.atEnd() || request == "" || request[0] != '"' {
		return nil, ErrMalformedRecord
	}
	if i := strings.Index(request, "HTTP"); i > 0 {
		request = request[:i-1] + `"`
	}
	rec.URL = request

	rec.RespCode = models.LeadingInt(c.field())
	c.next()

	if isDigit(c.peek()) {
		rec.XferSize = models.LeadingUint(c.field())
	}
	if c.atEnd() {
		return rec, nil
	}
	c.next()

	rec.Referrer = bounded(ctx, "referrer", c.next(), models.MaxRef, line)
	rec.Agent, _ = models.Truncate(c.next(), models.MaxAgent)

	return rec, nil
}
