package parsers

import (
	"context"
	"fmt"

	"weblog-analyzer/internal/models"
)

// ftpParser reads wu-ftpd style xferlog lines:
//
//	Mon Jan 10 00:00:00 2024 secs host size path type action direction mode user service auth id status
type ftpParser struct{}

func (p *ftpParser) Parse(ctx context.Context, line string) (*models.LogRecord, error) {
	if line == "" || line[0] == '#' {
		return nil, ErrHeaderRecord
	}
	c := newFieldCursor(line)
	rec := &models.LogRecord{}

	c.field() // weekday
	month := c.token()
	day := models.LeadingInt(c.token())
	clock := c.token()
	year := models.LeadingInt(c.token())

	if len(clock) < 6 || clock[2] != ':' || clock[5] != ':' {
		return nil, ErrMalformedRecord
	}
	if year < 1990 || year > 2100 || day < 1 || day > 31 {
		return nil, ErrMalformedRecord
	}
	rec.DateTime, _ = models.Truncate(fmt.Sprintf("[%02d/%s/%4d:%s -0000]", day, month, year, clock), models.MaxDateTime+1)

	c.token() // transfer seconds

	// Two separators in a row mean the host field is blank.
	if c.pos+1 >= len(c.buf) || c.buf[c.pos+1] == 0 {
		rec.Hostname = "NONE"
	} else {
		c.pos++
		rec.Hostname = bounded(ctx, "hostname", c.field(), models.MaxHost, line)
	}

	if size := c.token(); size != "" && isDigit(size[0]) {
		rec.XferSize = models.LeadingUint(size)
	}
	path := c.token()
	c.token() // transfer type
	c.token() // special action flag
	direction := c.token()

	if direction != "" && direction[0] == 'i' {
		rec.URL = `"POST ` + path + `"`
	} else {
		rec.URL = `"GET ` + path + `"`
	}
	rec.URL, _ = models.Truncate(rec.URL, models.MaxURL)

	c.token() // access mode
	rec.Ident, _ = models.Truncate(c.token(), models.MaxIdent)

	if line[len(line)-1] == 'i' {
		rec.RespCode = 206
	} else {
		rec.RespCode = 200
	}
	return rec, nil
}
