package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"weblog-analyzer/internal/reports"
	"weblog-analyzer/internal/shared/configs"
	"weblog-analyzer/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clf(host, ts, url string) string {
	return fmt.Sprintf(`%s - - [%s -0000] "GET %s HTTP/1.1" 200 2048 "-" "TestAgent/1.0"`, host, ts, url)
}

func testConfig(t *testing.T, dir string, files ...string) *configs.Config {
	t.Helper()
	cfg, err := configs.LoadConfig("", nil)
	require.NoError(t, err)
	cfg.Output.Dir = dir
	cfg.Input.GMTTime = true
	cfg.Input.Files = files
	cfg.Log.Verbosity = "quiet"
	return cfg
}

func writeLog(t *testing.T, path string, lines ...string) {
	t.Helper()
	writeFile(t, path, []byte(strings.Join(lines, "\n")+"\n"))
}

func runApp(t *testing.T, cfg *configs.Config, opts ...Option) (*RunSummary, error) {
	t.Helper()
	application, err := New(cfg, append([]Option{WithLogOutput(io.Discard)}, opts...)...)
	require.NoError(t, err)
	return application.Run(context.Background())
}

// historyLines indexes the history file by its "month year" prefix.
func historyLines(t *testing.T, path string) (map[string]string, []string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.True(t, strings.HasPrefix(lines[0], "# Webalizer"), "header: %q", lines[0])

	byMonth := make(map[string]string)
	for _, line := range lines[1:] {
		f := strings.Fields(line)
		byMonth[f[0]+" "+f[1]] = line
	}
	return byMonth, lines[1:]
}

func TestRun_TwoMonths(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "access.log")
	writeLog(t, logPath,
		clf("1.2.3.4", "10/Jan/2024:10:00:00", "/"),
		clf("5.6.7.8", "10/Jan/2024:10:05:00", "/about.html"),
		"this is not a log line",
		clf("1.2.3.4", "02/Feb/2024:08:00:00", "/"),
	)
	cfg := testConfig(t, dir, filepath.Join(dir, "logs", "*.log"))

	summary, err := runApp(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), summary.Result.Total)
	assert.Equal(t, uint64(1), summary.Result.Bad)
	assert.Zero(t, summary.Result.Ignored)
	assert.NotEmpty(t, summary.RunID)

	byMonth, lines := historyLines(t, filepath.Join(dir, cfg.Output.HistoryName))
	assert.True(t, strings.HasPrefix(lines[0], "2 2024 "), "newest month first")
	assert.True(t, strings.HasPrefix(byMonth["1 2024"], "1 2024 2 2 2 4 10 10 "), byMonth["1 2024"])
	assert.True(t, strings.HasPrefix(byMonth["2 2024"], "2 2024 1 1 1 2 2 2 "), byMonth["2 2024"])

	for _, name := range []string{"usage_202401.txt", "usage_202402.txt"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "Usage statistics for")
	}
	_, err = os.Stat(filepath.Join(dir, cfg.Output.StateName))
	assert.True(t, errors.Is(err, os.ErrNotExist), "no state file outside incremental mode")
}

func TestRun_Incremental(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "access.log")
	day1 := clf("1.2.3.4", "10/Jan/2024:10:00:00", "/")
	day2 := clf("5.6.7.8", "11/Jan/2024:10:00:00", "/")

	writeLog(t, logPath, day1, day2)
	cfg := testConfig(t, dir, logPath)
	cfg.Incremental.Enabled = true

	_, err := runApp(t, cfg)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, cfg.Output.StateName))
	require.NoError(t, err, "state saved")

	// The rotated log repeats the records already counted.
	writeLog(t, logPath, day1, day2, clf("9.9.9.9", "12/Jan/2024:10:00:00", "/"))
	summary, err := runApp(t, cfg)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), summary.Result.Total)
	assert.Equal(t, uint64(2), summary.Result.Ignored)

	byMonth, _ := historyLines(t, filepath.Join(dir, cfg.Output.HistoryName))
	assert.True(t, strings.HasPrefix(byMonth["1 2024"], "1 2024 3 3 3 "), byMonth["1 2024"])
}

func TestRun_Stdin(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := testConfig(t, dir, stdinName)
	cfg.Output.Report = false
	log := clf("1.2.3.4", "10/Jan/2024:10:00:00", "/") + "\n"

	summary, err := runApp(t, cfg, WithStdin(strings.NewReader(log)))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), summary.Result.Total)

	_, err = os.Stat(filepath.Join(dir, "usage_202401.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "reports disabled")
}

func TestRun_NoValidRecords(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "access.log")
	writeLog(t, logPath, "garbage", "more garbage")
	cfg := testConfig(t, dir, logPath)

	summary, err := runApp(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoValidRecords)
	assert.Equal(t, svcerrors.ExitNoRecords, svcerrors.ExitCodeOf(err))
	require.NotNil(t, summary)
	assert.Equal(t, uint64(2), summary.Result.Bad)

	_, err = os.Stat(filepath.Join(dir, cfg.Output.HistoryName))
	assert.True(t, errors.Is(err, os.ErrNotExist), "history untouched")
}

func TestRun_ResolvesHosts(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "access.log")
	writeLog(t, logPath,
		clf("10.0.0.1", "10/Jan/2024:10:00:00", "/"),
		clf("10.0.0.1", "10/Jan/2024:10:01:00", "/"),
		clf("10.0.0.2", "10/Jan/2024:10:02:00", "/"),
	)
	cfg := testConfig(t, dir, logPath)
	cfg.Output.Report = false
	cfg.Output.Dump = []string{reports.DumpSites}
	cfg.DNS.Workers = 2
	cfg.DNS.CacheFile = filepath.Join(dir, "dns_cache.db")
	cfg.DNS.CacheIPs = true

	var queries atomic.Int32
	lookup := func(_ context.Context, addr string) ([]string, error) {
		queries.Add(1)
		if addr == "10.0.0.1" {
			return []string{"Host.Example.com."}, nil
		}
		return nil, errors.New("no such host")
	}

	_, err := runApp(t, cfg, WithAddrLookup(lookup))
	require.NoError(t, err)
	assert.Equal(t, int32(2), queries.Load())

	data, err := os.ReadFile(filepath.Join(dir, reports.DumpKey(reports.DumpSites, 2024, 1, "")))
	require.NoError(t, err)
	assert.Contains(t, string(data), "\thost.example.com\n")
	assert.Contains(t, string(data), "\t10.0.0.2\n")

	// A second run finds both addresses fresh in the cache.
	_, err = runApp(t, cfg, WithAddrLookup(lookup))
	require.NoError(t, err)
	assert.Equal(t, int32(2), queries.Load())
}

func TestRun_UnavailableCacheDisablesDNS(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "access.log")
	writeLog(t, logPath, clf("10.0.0.1", "10/Jan/2024:10:00:00", "/"))
	cfg := testConfig(t, dir, logPath)
	cfg.Output.Report = false
	cfg.DNS.Workers = 1
	cfg.DNS.CacheFile = filepath.Join(dir, "missing", "dns_cache.db")

	lookup := func(context.Context, string) ([]string, error) {
		t.Error("lookup must not run without a cache")
		return nil, nil
	}
	summary, err := runApp(t, cfg, WithAddrLookup(lookup))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), summary.Result.Total)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "access.log")
	writeLog(t, logPath, clf("1.2.3.4", "10/Jan/2024:10:00:00", "/"))
	cfg := testConfig(t, dir, logPath)

	application, err := New(cfg, WithLogOutput(io.Discard))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = application.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_InvalidLogLevel(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t, t.TempDir(), stdinName)
	cfg.Log.Level = "chatty"

	_, err := New(cfg, WithLogOutput(io.Discard))
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeInvalidConfig, svcErr.Code)
}
