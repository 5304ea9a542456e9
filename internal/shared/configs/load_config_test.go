package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webalizer.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "clf", cfg.Input.LogType)
	assert.Equal(t, []string{"-"}, cfg.Input.Files)
	assert.Equal(t, "webalizer.hist", cfg.Output.HistoryName)
	assert.Equal(t, "webalizer.current", cfg.Output.StateName)
	assert.True(t, cfg.Output.Report)
	assert.Equal(t, 120, cfg.History.Months)
	assert.Equal(t, 1800, cfg.Analysis.VisitTimeout)
	assert.True(t, cfg.Analysis.StripCGI)
	assert.True(t, cfg.Analysis.NormalizeURLs)
	assert.True(t, cfg.Analysis.DefaultIndex)
	assert.True(t, cfg.Analysis.SearchCaseInsensitive)
	assert.Equal(t, 30, cfg.Analysis.TopReferrers)
	assert.Equal(t, 15, cfg.Analysis.TopAgents)
	assert.Equal(t, 20, cfg.Analysis.TopSearch)
	assert.Equal(t, 7, cfg.DNS.CacheTTLDays)
	assert.Equal(t, 0, cfg.DNS.Workers)
	assert.Equal(t, 0, cfg.Server.Port)
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	path := writeConfig(t, `log:
  verbosity: debug
input:
  log_type: squid
  files: ["/var/log/squid/*.log"]
  trim_squid_url: 2
output:
  dir: ./out
  dump: [sites, search]
history:
  months: 24
incremental:
  enabled: true
analysis:
  visit_timeout: 900
  strip_cgi: false
  page_types: [htm*, php]
  search_engines:
    - pattern: .google.
      query: q=
lists:
  ignore:
    sites: ["*.internal"]
  group:
    referrers:
      - pattern: "*.example.com"
        name: Example Sites
dns:
  cache_file: dns.db
  workers: 5
server:
  port: 8080
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Verbosity)
	assert.Equal(t, "squid", cfg.Input.LogType)
	assert.Equal(t, 2, cfg.Input.TrimSquidURL)
	assert.Equal(t, "./out", cfg.Output.Dir)
	assert.Equal(t, []string{"sites", "search"}, cfg.Output.Dump)
	assert.Equal(t, 24, cfg.History.Months)
	assert.True(t, cfg.Incremental.Enabled)
	assert.Equal(t, 900, cfg.Analysis.VisitTimeout)
	assert.False(t, cfg.Analysis.StripCGI)
	assert.Equal(t, []string{"htm*", "php"}, cfg.Analysis.PageTypes)
	require.Len(t, cfg.Analysis.SearchEngines, 1)
	assert.Equal(t, "q=", cfg.Analysis.SearchEngines[0].Query)
	assert.Equal(t, []string{"*.internal"}, cfg.Lists.Ignore.Sites)
	require.Len(t, cfg.Lists.Group.Referrers, 1)
	assert.Equal(t, "Example Sites", cfg.Lists.Group.Referrers[0].Name)
	assert.Equal(t, 5, cfg.DNS.Workers)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		contains string
	}{
		{name: "unknown log type", body: "input:\n  log_type: nginx\n", contains: "input.logtype (oneof"},
		{name: "history too long", body: "history:\n  months: 121\n", contains: "history.months (max=120)"},
		{name: "bad dump table", body: "output:\n  dump: [pages]\n", contains: "output.dump[0] (oneof"},
		{name: "too many dns workers", body: "dns:\n  cache_file: a.db\n  workers: 101\n", contains: "dns.workers (max=100)"},
		{name: "dns workers without cache", body: "dns:\n  workers: 2\n", contains: "dns.cachefile (required)"},
		{name: "bad glob", body: "input:\n  files: [\"/var/log/[a-\"]\n", contains: "input.files[0] (logglob)"},
		{name: "invalid port", body: "server:\n  port: 70000\n", contains: "server.port (max=65535)"},
		{name: "mangle level", body: "analysis:\n  mangle_agents: 6\n", contains: "analysis.mangleagents (max=5)"},
		{name: "group without pattern", body: "lists:\n  group:\n    sites:\n      - name: Foo\n", contains: "pattern (required)"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.body), nil)
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"), nil)
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "analysis:\n  visit_timeout: 900\ninput:\n  log_type: ftp\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("visit-timeout", 0, "")
	flags.String("log-type", "", "")
	flags.Bool("incremental", false, "")
	flags.Bool("no-report", false, "")
	require.NoError(t, flags.Parse([]string{"--visit-timeout=60", "--incremental", "--no-report"}))

	cfg, err := LoadConfig(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Analysis.VisitTimeout)
	assert.Equal(t, "ftp", cfg.Input.LogType, "unchanged flag must not override the file")
	assert.True(t, cfg.Incremental.Enabled)
	assert.False(t, cfg.Output.Report)
}
