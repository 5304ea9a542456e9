package normalizers

import (
	"context"
	"strings"

	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/loggers"

	"github.com/mileusna/useragent"
)

const (
	InvalidURL      = "/INVALID-URL"
	InvalidHostname = "Invalid"
	UnknownHostname = "Unknown"
	defaultIndex    = "index."
)

//go:generate mockgen -source=field_normalizer.go -destination=./mocks/field_normalizer_mock.go -package=mocks
type FieldNormalizer interface {
	// NormalizeRequest rewrites the URL, referrer, agent and ident of a parsed record in place and
	// fills SearchStr with the query part of the referrer.
	NormalizeRequest(ctx context.Context, rec *models.LogRecord)
	// NormalizeHostname lowercases and validates a hostname. original is the name before DNS
	// resolution and is restored when the resolved name turns out to be unusable.
	NormalizeHostname(host, original string) string
}

type Options struct {
	LogType       models.LogType
	StripCGI      bool
	NormalizeURLs bool
	DefaultIndex  bool
	IndexAliases  []string
	MangleAgents  int
	AgentFamily   bool
}

type fieldNormalizer struct {
	logType      models.LogType
	stripCGI     bool
	normalize    bool
	indexAliases []string
	mangleLevel  int
	agentFamily  bool
}

func NewFieldNormalizer(opts Options) FieldNormalizer {
	aliases := make([]string, 0, len(opts.IndexAliases)+1)
	for _, a := range opts.IndexAliases {
		if a = strings.TrimSpace(a); a != "" {
			aliases = append(aliases, a)
		}
	}
	if opts.DefaultIndex {
		aliases = append(aliases, defaultIndex)
	}
	return &fieldNormalizer{
		logType:      opts.LogType,
		stripCGI:     opts.StripCGI,
		normalize:    opts.NormalizeURLs,
		indexAliases: aliases,
		mangleLevel:  opts.MangleAgents,
		agentFamily:  opts.AgentFamily,
	}
}

func (n *fieldNormalizer) NormalizeRequest(ctx context.Context, rec *models.LogRecord) {
	rec.URL = n.stripIndexAlias(n.normalizeURL(rec.URL, rec.RespCode))

	rec.Referrer, rec.SearchStr = splitReferrer(fixReferrer(Unescape(rec.Referrer)))
	rec.Referrer = lowercaseReferrerHost(rec.Referrer)

	if n.mangleLevel > 0 {
		rec.Agent = MangleAgent(rec.Agent, n.mangleLevel)
	}

	rec.Referrer = truncateKey(ctx, "referrer", rec.Referrer, models.MaxRefKey)
	rec.URL = truncateKey(ctx, "url", rec.URL, models.MaxURLKey)

	rec.Agent = fixAgent(rec.Agent)
	if n.agentFamily && rec.Agent != "" {
		rec.Agent = agentFamily(rec.Agent)
	}
	rec.Ident = Unescape(fixIdent(rec.Ident))
}

// normalizeURL extracts the path from a quoted request line such as "GET /a/b HTTP/1.1".
func (n *fieldNormalizer) normalizeURL(request string, respCode int) string {
	u := Unescape(request)

	var url string
	if len(u) > 1 && u[1] == '-' {
		url = InvalidURL
	} else {
		url = u
		if sp := strings.IndexByte(u, ' '); sp >= 0 {
			j := sp
			for j < len(u) && u[j] == ' ' {
				j++
			}
			for j+1 < len(u) && u[j] == '/' && u[j+1] == '/' {
				j++
			}
			url = u[j:]
			if q := strings.IndexByte(url, '"'); q >= 0 {
				url = url[:q]
			}
		}
	}

	for i := 0; i < len(url); i++ {
		if !isURLChar(url[i], n.stripCGI) {
			url = url[:i]
			break
		}
	}
	if url == "" {
		return "/"
	}

	if n.logType != models.LogCLF || respCode == 404 || !n.normalize {
		if k := strings.Index(url, "://"); k >= 0 && k < 6 {
			url = asciiLower(url[:k]) + url[k:]
		}
		return url
	}

	if k := strings.Index(url, "://"); k >= 0 && k < 6 {
		if s := strings.IndexByte(url[k+3:], '/'); s >= 0 {
			url = url[k+3+s:]
		} else {
			url = url[k+2:]
		}
	}
	for {
		i := strings.Index(url, "/./")
		if i < 0 {
			break
		}
		url = url[:i] + url[i+2:]
	}
	if url == "" || url[0] != '/' {
		switch respCode {
		case 200, 206, 304:
			url = "/"
		default:
			url = InvalidURL
		}
	}
	return strings.TrimRight(url, "?")
}

// stripIndexAlias removes the first configured alias found directly after a '/'. Only the first
// occurrence of each alias is considered. A kept query string survives the cut.
func (n *fieldNormalizer) stripIndexAlias(url string) string {
	for _, alias := range n.indexAliases {
		i := strings.Index(url, alias)
		if i <= 0 || url[i-1] != '/' {
			continue
		}
		if !n.stripCGI {
			if q := strings.IndexByte(url[i:], '?'); q >= 0 {
				return url[:i] + url[i+q:]
			}
		}
		return url[:i]
	}
	return url
}

// fixReferrer removes the surrounding quotes and cuts at the first control character or '<'.
// Unquoted values are returned unchanged.
func fixReferrer(ref string) string {
	if ref == "" || ref[0] != '"' {
		return ref
	}
	body := ref[1:]
	for i := 0; i < len(body); i++ {
		if ch := body[i]; ch < 32 || ch == 127 || ch == '<' {
			return body[:i]
		}
	}
	if body == "" {
		return ""
	}
	return body[:len(body)-1]
}

// splitReferrer separates the query part of a referrer. An emptied referrer becomes "-".
func splitReferrer(ref string) (string, string) {
	if ref == "" {
		return ref, ""
	}
	var query string
	for i := 0; i < len(ref); i++ {
		if !isURLChar(ref[i], true) {
			query, _ = models.Truncate(ref[i:], models.MaxSearch+1)
			ref = ref[:i]
			break
		}
	}
	if ref == "" {
		ref = "-"
	}
	return ref, query
}

// lowercaseReferrerHost lowercases the scheme and host of an http style referrer.
func lowercaseReferrerHost(ref string) string {
	if ref == "" || (ref[0] != 'h' && ref[0] != 'H') {
		return ref
	}
	i := strings.IndexByte(ref, '/')
	if i < 0 {
		return asciiLower(ref)
	}
	j := i
	if j+1 < len(ref) && ref[j+1] == '/' {
		j += 2
	}
	end := strings.IndexByte(ref[j:], '/')
	if end < 0 {
		return asciiLower(ref)
	}
	return asciiLower(ref[:j+end]) + ref[j+end:]
}

// fixAgent drops the enclosing quotes or parentheses and cuts at control characters and angle brackets.
func fixAgent(agent string) string {
	if agent != "" && (agent[0] == '"' || agent[0] == '(') {
		if agent = agent[1:]; agent != "" {
			agent = agent[:len(agent)-1]
		}
	}
	for i := 0; i < len(agent); i++ {
		if ch := agent[i]; ch < 32 || ch == 127 || ch == '<' || ch == '>' {
			return agent[:i]
		}
	}
	return agent
}

func fixIdent(ident string) string {
	if ident == "" {
		return "-"
	}
	for i := 0; i < len(ident); i++ {
		if ident[i] < 32 || ident[i] == '"' {
			return ident[:i]
		}
	}
	return ident
}

// agentFamily reduces an agent to its browser or bot family, keeping unknown agents as they are.
func agentFamily(ua string) string {
	parsed := useragent.Parse(ua)
	if parsed.Name != "" {
		return parsed.Name
	}
	return ua
}

func (n *fieldNormalizer) NormalizeHostname(host, original string) string {
	if host == "" {
		return UnknownHostname
	}
	if !isAlnum(host[0]) && host[0] != ':' {
		return InvalidHostname
	}
	b := []byte(host)
	dots := 0
	for i, ch := range b {
		if ch >= 'A' && ch <= 'Z' {
			b[i] = ch + 'a' - 'A'
			continue
		}
		if ch == '.' {
			dots++
		}
		if isAlnum(ch) || ch == '.' || ch == '-' || ch == ':' || (ch == '_' && dots == 0) {
			continue
		}
		if original != "" && host != original {
			return original
		}
		return InvalidHostname
	}
	if !isAlnum(b[len(b)-1]) {
		return InvalidHostname
	}
	return string(b)
}

// truncateKey cuts value to bound and warns with the value as it was before the cut.
func truncateKey(ctx context.Context, field, value string, bound int) string {
	cut, truncated := models.Truncate(value, bound)
	if truncated {
		metricKeyTruncatedTotal.WithLabelValues(field).Inc()
		loggers.Ctx(ctx).Warn().
			Str(loggers.FieldName, field).
			Int("length", len(value)).
			Str("value", value).
			Msg("oversized field truncated")
	}
	return cut
}
