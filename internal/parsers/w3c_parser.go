package parsers

import (
	"context"
	"strings"
	"time"

	"weblog-analyzer/internal/models"

	"github.com/itchyny/timefmt-go"
)

// w3cFieldIndex holds 1-based column positions declared by the last #Fields directive. Zero means absent.
type w3cFieldIndex struct {
	date, time, ip, username, method, url, query, status, size, referrer, agent int
	fields                                                                  int
}

// w3cParser reads W3C extended logs. It keeps the column layout between calls.
type w3cParser struct {
	location *time.Location
	index    w3cFieldIndex
}

func (p *w3cParser) Parse(ctx context.Context, line string) (*models.LogRecord, error) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return nil, ErrHeaderRecord
	}
	fields := splitFields(line)
	// A leading blank, like the NUL bytes some IIS versions write, makes the line ignored rather than bad.
	if len(fields) == 0 || fields[0] == "" {
		return nil, ErrHeaderRecord
	}

	if line[0] == '#' {
		if fields[0] == "#Fields:" {
			p.declare(fields[1:])
		}
		return nil, ErrHeaderRecord
	}

	if len(fields) != p.index.fields {
		return nil, ErrMalformedRecord
	}
	get := func(i int) (string, bool) {
		if i == 0 {
			return "", false
		}
		return fields[i-1], true
	}

	rec := &models.LogRecord{}

	url, ok := get(p.index.url)
	if !ok {
		return nil, ErrMalformedRecord
	}
	url = strings.ReplaceAll(url, "+", " ")
	method, ok := get(p.index.method)
	if !ok || strings.HasPrefix(method, "-") {
		method = "NONE"
	}
	if query, ok := get(p.index.query); ok && !strings.HasPrefix(query, "-") {
		rec.URL = `"` + method + " " + url + "?" + query + `"`
	} else {
		rec.URL = `"` + method + " " + url + `"`
	}
	rec.URL, _ = models.Truncate(rec.URL, models.MaxURL)

	if ip, ok := get(p.index.ip); ok {
		rec.Hostname, _ = models.Truncate(ip, models.MaxHost)
	}
	if status, ok := get(p.index.status); ok {
		rec.RespCode = models.LeadingInt(status)
	}
	if ref, ok := get(p.index.referrer); ok {
		rec.Referrer, _ = models.Truncate(ref, models.MaxRef)
	}
	if size, ok := get(p.index.size); ok {
		rec.XferSize = models.LeadingUint(size)
	}
	if agent, ok := get(p.index.agent); ok {
		rec.Agent, _ = models.Truncate(strings.ReplaceAll(agent, "+", " "), models.MaxAgent)
	}
	if user, ok := get(p.index.username); ok {
		rec.Ident, _ = models.Truncate(user, models.MaxIdent)
	}

	stamp, err := p.timestamp(get)
	if err != nil {
		return nil, err
	}
	rec.DateTime = timefmt.Format(stamp.In(p.location), clfTimeLayout)
	return rec, nil
}

func (p *w3cParser) declare(names []string) {
	p.index = w3cFieldIndex{fields: len(names)}
	for i, name := range names {
		pos := i + 1
		switch name {
		case "date":
			p.index.date = pos
		case "time":
			p.index.time = pos
		case "c-ip":
			p.index.ip = pos
		case "cs-method":
			p.index.method = pos
		case "cs-uri-stem":
			p.index.url = pos
		case "cs-uri-query":
			p.index.query = pos
		case "sc-status":
			p.index.status = pos
		case "cs(Referer)":
			p.index.referrer = pos
		case "sc-bytes":
			p.index.size = pos
		case "cs(User-Agent)":
			p.index.agent = pos
		case "cs-username":
			p.index.username = pos
		}
	}
}

// timestamp reads the GMT date (YYYY-MM-DD) and time (HH:MM:SS) columns.
func (p *w3cParser) timestamp(get func(int) (string, bool)) (time.Time, error) {
	year, month, day := 1900, 1, 0
	hour, minute, second := 0, 0, 0
	if date, ok := get(p.index.date); ok {
		parts := strings.SplitN(date, "-", 3)
		if len(parts) != 3 {
			return time.Time{}, ErrMalformedRecord
		}
		year = models.LeadingInt(parts[0])
		month = models.LeadingInt(parts[1])
		day = models.LeadingInt(parts[2])
	}
	if clock, ok := get(p.index.time); ok {
		parts := strings.SplitN(clock, ":", 3)
		if len(parts) != 3 {
			return time.Time{}, ErrMalformedRecord
		}
		hour = models.LeadingInt(parts[0])
		minute = models.LeadingInt(parts[1])
		second = models.LeadingInt(parts[2])
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), nil
}
