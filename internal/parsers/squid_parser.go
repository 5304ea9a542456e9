package parsers

import (
	"context"
	"strings"
	"time"

	"weblog-analyzer/internal/models"

	"github.com/itchyny/timefmt-go"
)

// squidParser reads Squid native access.log lines:
//
//	epoch.ms elapsed client action/code size method URL ident hierarchy/from content-type
type squidParser struct {
	location *time.Location
	trim     int
}

func (p *squidParser) Parse(ctx context.Context, line string) (*models.LogRecord, error) {
	if line == "" || line[0] == '#' {
		return nil, ErrHeaderRecord
	}
	c := newFieldCursor(line)
	rec := &models.LogRecord{}

	epoch := int64(models.LeadingInt(c.field()))
	rec.DateTime = timefmt.Format(time.Unix(epoch, 0).In(p.location), clfTimeLayout)

	c.token() // elapsed
	c.skipSeparators()
	rec.Hostname = bounded(ctx, "hostname", c.next(), models.MaxHost, line)

	action := c.field()
	if i := strings.IndexByte(action, '/'); i >= 0 {
		rec.RespCode = models.LeadingInt(action[i+1:])
	}

	if size := c.token(); size != "" && isDigit(size[0]) {
		rec.XferSize = models.LeadingUint(size)
	}

	method := c.token()
	c.skipSeparators()
	url := c.next()
	if p.trim > 0 {
		url = trimURLSegments(url, p.trim)
	}
	request := `"` + method + ` ` + url + `"`
	rec.URL = bounded(ctx, "request", request, models.MaxURL, line)

	rec.Ident = strings.TrimRight(c.field(), " ")
	rec.Ident, _ = models.Truncate(rec.Ident, models.MaxIdent)
	if c.atEnd() {
		return nil, ErrMalformedRecord
	}
	return rec, nil
}

// trimURLSegments keeps scheme, host and the first depth-1 path segments of an absolute URL.
// The copy stops in front of the (depth+2)th slash.
func trimURLSegments(url string, depth int) string {
	slashes := depth + 2
	for i := 0; i < len(url); i++ {
		if i+1 < len(url) && url[i+1] == '/' {
			slashes--
			if slashes == 0 {
				return url[:i+1]
			}
		}
	}
	return url
}
