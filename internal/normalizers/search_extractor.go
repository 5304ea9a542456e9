package normalizers

import (
	"strings"

	"weblog-analyzer/internal/classifiers"
)

// DefaultSearchEngines is used when no engine is configured. The name of each entry is the query
// variable carrying the search terms.
var DefaultSearchEngines = []classifiers.GroupPattern{
	{Pattern: ".google.", Name: "q="},
	{Pattern: "yahoo.com", Name: "p="},
	{Pattern: "altavista.com", Name: "q="},
	{Pattern: "aolsearch.", Name: "query="},
	{Pattern: "ask.co", Name: "q="},
	{Pattern: "eureka.com", Name: "q="},
	{Pattern: "lycos.com", Name: "query="},
	{Pattern: "hotbot.com", Name: "MT="},
	{Pattern: "msn.com", Name: "q="},
	{Pattern: "infoseek.com", Name: "qt="},
	{Pattern: "webcrawler", Name: "searchText="},
	{Pattern: "excite", Name: "search="},
	{Pattern: "netscape.com", Name: "query="},
	{Pattern: "mamma.com", Name: "query="},
	{Pattern: "alltheweb.com", Name: "q="},
	{Pattern: "northernlight.com", Name: "qr="},
}

// maxQueryVar bounds the query variable name searched for.
const maxQueryVar = 78

// SearchExtractor pulls search terms out of search engine referrers.
type SearchExtractor struct {
	engines         classifiers.GroupList
	caseInsensitive bool
}

func NewSearchExtractor(engines []classifiers.GroupPattern, caseInsensitive bool) *SearchExtractor {
	if len(engines) == 0 {
		engines = DefaultSearchEngines
	}
	return &SearchExtractor{
		engines:         classifiers.NewGroupList(engines),
		caseInsensitive: caseInsensitive,
	}
}

// Extract returns the search phrase carried by query when referrer belongs to a known engine.
// Plus signs become spaces, runs of spaces collapse and quotes, commas and '?' are dropped.
func (e *SearchExtractor) Extract(referrer, query string) (string, bool) {
	key, ok := e.engines.Match(referrer)
	if !ok {
		return "", false
	}
	if len(key) > maxQueryVar {
		key = key[:maxQueryVar]
	}
	start := strings.Index(query, "?"+key)
	if start < 0 {
		if start = strings.Index(query, "&"+key); start < 0 {
			return "", false
		}
	}
	rest := query[start:]
	if eq := strings.IndexByte(rest, '='); eq >= 0 {
		rest = rest[eq+1:]
	} else {
		rest = ""
	}

	buf := make([]byte, 0, len(rest))
	spaced := false
	for i := 0; i < len(rest) && rest[i] != '&'; i++ {
		ch := rest[i]
		switch ch {
		case '"', ',', '?':
			continue
		case '+':
			ch = ' '
		}
		if spaced && ch == ' ' {
			continue
		}
		spaced = ch == ' '
		if e.caseInsensitive && ch >= 'A' && ch <= 'Z' {
			ch += 'a' - 'A'
		}
		buf = append(buf, ch)
	}

	phrase := strings.TrimFunc(string(buf), isCSpace)
	if phrase == "" {
		return "", false
	}
	out := []byte(phrase)
	for i, ch := range out {
		if ch < 32 || ch == 127 {
			out[i] = '_'
		}
	}
	return string(out), true
}

func isCSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
