package normalizers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMangleAgent(t *testing.T) {
	t.Parallel()

	const msie = `"Mozilla/4.0 (compatible; MSIE 6.0; Windows NT 5.1)"`
	const firefox = `"Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/120.0"`

	tests := []struct {
		name  string
		agent string
		level int
		want  string
	}{
		{name: "msie level 1", agent: msie, level: 1, want: "MSIE 6.0 (Windows NT 5.1)"},
		{name: "msie level 2", agent: msie, level: 2, want: "MSIE 6.0"},
		{name: "msie level 5", agent: msie, level: 5, want: "MSIE 6"},
		{name: "mozilla level 1", agent: firefox, level: 1, want: "Mozilla/5.0 (X11)"},
		{name: "mozilla level 5", agent: firefox, level: 5, want: "Mozilla/5"},
		{name: "opera level 2", agent: `"Opera/9.80 (Windows NT 6.1) Presto/2.12"`, level: 2, want: "Opera 9.80"},
		{name: "empty compatible", agent: `"Mozilla/3.01 (compatible;)"`, level: 1, want: `"Mozilla/3.01 (compatible;)"`},
		{name: "unknown flavour", agent: `"curl/8.0"`, level: 1, want: `"curl/8.0"`},
		{name: "disabled", agent: msie, level: 0, want: msie},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MangleAgent(tt.agent, tt.level))
		})
	}
}

func TestAgentFamily(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Firefox", agentFamily("Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:123.0) Gecko/20100101 Firefox/123.0"))
}
