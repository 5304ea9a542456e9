package normalizers

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"weblog-analyzer/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultNormalizer() FieldNormalizer {
	return NewFieldNormalizer(Options{
		LogType:       models.LogCLF,
		StripCGI:      true,
		NormalizeURLs: true,
		DefaultIndex:  true,
	})
}

func TestUnescape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "/a%20b", want: "/a b"},
		{in: "/100%", want: "/100%"},
		{in: "/%zz", want: "/%zz"},
		{in: "/%0a", want: "/_"},
		{in: "/%7F", want: "/_"},
		{in: "/end%4", want: "/end"},
		{in: "plain", want: "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Unescape(tt.in), tt.in)
	}
}

func TestFieldNormalizer_NormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     Options
		request  string
		respCode int
		want     string
	}{
		{name: "index alias stripped", request: `"GET /index.html"`, respCode: 200, want: "/"},
		{name: "nested index alias", request: `"GET /docs/index.htm"`, respCode: 200, want: "/docs/"},
		{name: "alias not after slash", request: `"GET /myindex.html"`, respCode: 200, want: "/myindex.html"},
		{name: "cgi stripped", request: `"GET /search.cgi?q=go"`, respCode: 200, want: "/search.cgi"},
		{name: "dash request", request: `"-"`, respCode: 400, want: InvalidURL},
		{name: "no path", request: `"GET"`, respCode: 400, want: "/"},
		{name: "duplicate slashes", request: `"GET //a/b.html"`, respCode: 200, want: "/a/b.html"},
		{name: "dot segments", request: `"GET /a/./b/./c.gif"`, respCode: 200, want: "/a/b/c.gif"},
		{name: "absolute url", request: `"GET http://www.example.com/x.html"`, respCode: 200, want: "/x.html"},
		{name: "absolute url without path", request: `"GET http://www.example.com"`, respCode: 200, want: "/www.example.com"},
		{name: "relative ok", request: `"GET foo.html"`, respCode: 200, want: "/"},
		{name: "relative error", request: `"GET foo.html"`, respCode: 500, want: InvalidURL},
		{name: "escaped path", request: `"GET /a%20b.html"`, respCode: 200, want: "/a b.html"},
		{name: "not found keeps scheme lowercased", request: `"GET HTTP://Example.com/x"`, respCode: 404, want: "http://Example.com/x"},
		{
			name:     "cgi kept",
			opts:     Options{LogType: models.LogCLF, NormalizeURLs: true, DefaultIndex: true},
			request:  `"GET /dir/index.php?id=7"`,
			respCode: 200,
			want:     "/dir/?id=7",
		},
		{
			name:     "trailing question marks dropped",
			opts:     Options{LogType: models.LogCLF, NormalizeURLs: true},
			request:  `"GET /a.html??"`,
			respCode: 200,
			want:     "/a.html",
		},
		{
			name:     "configured alias",
			opts:     Options{LogType: models.LogCLF, StripCGI: true, NormalizeURLs: true, IndexAliases: []string{"default.asp"}},
			request:  `"GET /shop/default.asp"`,
			respCode: 200,
			want:     "/shop/",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			n := newDefaultNormalizer()
			if tt.opts.LogType != "" {
				n = NewFieldNormalizer(tt.opts)
			}
			rec := &models.LogRecord{URL: tt.request, RespCode: tt.respCode}
			n.NormalizeRequest(context.Background(), rec)
			assert.Equal(t, tt.want, rec.URL)
		})
	}
}

func TestFieldNormalizer_Referrer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		referrer  string
		wantRef   string
		wantQuery string
	}{
		{name: "direct", referrer: `"-"`, wantRef: "-"},
		{name: "empty", referrer: "", wantRef: ""},
		{name: "query split", referrer: `"http://www.google.com/search?q=go+lang"`, wantRef: "http://www.google.com/search", wantQuery: "?q=go+lang"},
		{name: "host lowercased", referrer: `"HTTP://WWW.Example.COM/Path/A.html"`, wantRef: "http://www.example.com/Path/A.html"},
		{name: "cut at angle bracket", referrer: `"http://a.com/<script>"`, wantRef: "http://a.com/"},
		{name: "only query", referrer: `"?x=1"`, wantRef: "-", wantQuery: "?x=1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := &models.LogRecord{URL: `"GET /"`, RespCode: 200, Referrer: tt.referrer}
			newDefaultNormalizer().NormalizeRequest(context.Background(), rec)
			assert.Equal(t, tt.wantRef, rec.Referrer)
			assert.Equal(t, tt.wantQuery, rec.SearchStr)
		})
	}
}

func TestFieldNormalizer_AgentAndIdent(t *testing.T) {
	t.Parallel()

	rec := &models.LogRecord{URL: `"GET /"`, RespCode: 200, Agent: `"TestAgent/1.0"`, Ident: ""}
	newDefaultNormalizer().NormalizeRequest(context.Background(), rec)
	assert.Equal(t, "TestAgent/1.0", rec.Agent)
	assert.Equal(t, "-", rec.Ident)

	rec = &models.LogRecord{URL: `"GET /"`, RespCode: 200, Agent: `"Bad<agent>"`, Ident: `jo%41n"x`}
	newDefaultNormalizer().NormalizeRequest(context.Background(), rec)
	assert.Equal(t, "Bad", rec.Agent)
	assert.Equal(t, "joAn", rec.Ident)
}

func TestFieldNormalizer_TruncatesKeys(t *testing.T) {
	t.Parallel()

	long := make([]byte, models.MaxURLKey+50)
	for i := range long {
		long[i] = 'a'
	}
	rec := &models.LogRecord{URL: `"GET /` + string(long) + `"`, RespCode: 200}
	newDefaultNormalizer().NormalizeRequest(context.Background(), rec)
	assert.Len(t, rec.URL, models.MaxURLKey-1)
}

func TestFieldNormalizer_TruncationWarningKeepsOriginal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())

	path := "/" + strings.Repeat("b", models.MaxURLKey+20)
	rec := &models.LogRecord{URL: `"GET ` + path + `"`, RespCode: 200}
	newDefaultNormalizer().NormalizeRequest(ctx, rec)

	var entry struct {
		Field  string `json:"field"`
		Length int    `json:"length"`
		Value  string `json:"value"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "url", entry.Field)
	assert.Equal(t, len(path), entry.Length)
	assert.Equal(t, path, entry.Value)
	assert.Len(t, rec.URL, models.MaxURLKey-1)
}

func TestFieldNormalizer_NormalizeHostname(t *testing.T) {
	t.Parallel()

	n := newDefaultNormalizer()
	tests := []struct {
		name     string
		host     string
		original string
		want     string
	}{
		{name: "lowercased", host: "WWW.Example.COM", original: "WWW.Example.COM", want: "www.example.com"},
		{name: "ipv4", host: "1.2.3.4", original: "1.2.3.4", want: "1.2.3.4"},
		{name: "ipv6", host: "::1", original: "::1", want: "::1"},
		{name: "leading underscore label", host: "my_host.example.com", original: "my_host.example.com", want: "my_host.example.com"},
		{name: "underscore after dot", host: "a.b_c.com", original: "a.b_c.com", want: InvalidHostname},
		{name: "bad first char", host: "-host", original: "-host", want: InvalidHostname},
		{name: "trailing dot", host: "host.", original: "host.", want: InvalidHostname},
		{name: "resolved name falls back", host: "bad!name.com", original: "10.0.0.1", want: "10.0.0.1"},
		{name: "empty", host: "", original: "", want: UnknownHostname},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, n.NormalizeHostname(tt.host, tt.original), tt.name)
	}
}
