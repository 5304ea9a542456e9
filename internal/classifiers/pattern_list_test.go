package classifiers

import (
	"testing"

	"weblog-analyzer/internal/models"
	"weblog-analyzer/internal/shared/configs"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		s       string
		pattern string
		want    bool
	}{
		{name: "suffix match", s: "www.example.com", pattern: "*.example.com", want: true},
		{name: "suffix miss", s: "www.example.org", pattern: "*.example.com", want: false},
		{name: "prefix match", s: "/images/logo.gif", pattern: "/images/*", want: true},
		{name: "prefix miss", s: "/img/logo.gif", pattern: "/images/*", want: false},
		{name: "both ends is substring", s: "Mozilla/5.0 Googlebot/2.1", pattern: "*bot*", want: true},
		{name: "both ends miss", s: "Mozilla/5.0", pattern: "*bot*", want: false},
		{name: "plain is substring", s: "/cgi-bin/search.pl", pattern: "cgi-bin", want: true},
		{name: "plain miss", s: "/index.html", pattern: "cgi-bin", want: false},
		{name: "lone star", s: "anything", pattern: "*", want: true},
		{name: "empty pattern", s: "anything", pattern: "", want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Match(tt.s, tt.pattern))
		})
	}
}

func TestPatternList_FirstMatchWins(t *testing.T) {
	t.Parallel()

	l := NewPatternList([]string{"  ", "*.gif", "/images/*"})
	assert.Len(t, l, 2)

	p, ok := l.Match("/images/a.gif")
	assert.True(t, ok)
	assert.Equal(t, "*.gif", p)

	_, ok = l.Match("/index.html")
	assert.False(t, ok)
}

func TestGroupList_Match(t *testing.T) {
	t.Parallel()

	l := NewGroupList([]GroupPattern{
		{Pattern: "*.google.com", Name: "Google"},
		{Pattern: "*.example.com"},
		{Pattern: "", Name: "skipped"},
	})
	assert.Len(t, l, 2)

	name, ok := l.Match("www.google.com")
	assert.True(t, ok)
	assert.Equal(t, "Google", name)

	name, ok = l.Match("a.example.com")
	assert.True(t, ok)
	assert.Equal(t, "*.example.com", name)

	_, ok = l.Match("example.net")
	assert.False(t, ok)
}

func TestLists_IncludeOverridesIgnore(t *testing.T) {
	t.Parallel()

	lists := NewLists(configs.ListsConfig{
		Ignore: configs.EntityPatterns{
			Sites:  []string{"*.internal", "10.0.0.1"},
			Agents: []string{"*bot*"},
		},
		Include: configs.EntityPatterns{
			Sites: []string{"keep.internal"},
		},
	}, false)

	tests := []struct {
		name string
		rec  *models.LogRecord
		want bool
	}{
		{name: "include wins", rec: &models.LogRecord{Hostname: "keep.internal"}, want: false},
		{name: "ignored site", rec: &models.LogRecord{Hostname: "db.internal"}, want: true},
		{name: "second pattern ignored", rec: &models.LogRecord{Hostname: "10.0.0.1"}, want: true},
		{name: "ignored agent", rec: &models.LogRecord{Hostname: "a.com", Agent: "Googlebot/2.1"}, want: true},
		{name: "not listed", rec: &models.LogRecord{Hostname: "a.com", Agent: "Firefox"}, want: false},
		{name: "include wins over agent", rec: &models.LogRecord{Hostname: "keep.internal", Agent: "Googlebot"}, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lists.Ignored(tt.rec))
		})
	}
}

func TestLists_SiteHidden(t *testing.T) {
	t.Parallel()

	lists := NewLists(configs.ListsConfig{Hide: configs.EntityPatterns{Sites: []string{"*.local"}}}, false)
	assert.True(t, lists.SiteHidden("pc.local"))
	assert.False(t, lists.SiteHidden("example.com"))

	all := NewLists(configs.ListsConfig{}, true)
	assert.True(t, all.SiteHidden("example.com"))
}
