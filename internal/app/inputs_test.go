package app

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"weblog-analyzer/internal/shared/svcerrors"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = "1.2.3.4 - - [10/Jan/2024:00:00:00 -0000] \"GET / HTTP/1.1\" 200 100\n"

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func TestExpandInputs(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "access.log"), []byte(sampleLog))
	writeFile(t, filepath.Join(dir, "access.log.1"), []byte(sampleLog))
	writeFile(t, filepath.Join(dir, "old", "access.log.gz"), []byte("x"))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "access.log.d"), 0o755))

	tests := []struct {
		name     string
		patterns []string
		want     []string
		wantCode string
	}{
		{
			name:     "stdin and literal paths kept as given",
			patterns: []string{"-", filepath.Join(dir, "missing.log")},
			want:     []string{"-", filepath.Join(dir, "missing.log")},
		},
		{
			name:     "glob matches files only",
			patterns: []string{filepath.Join(dir, "access.log*")},
			want:     []string{filepath.Join(dir, "access.log"), filepath.Join(dir, "access.log.1")},
		},
		{
			name:     "double star descends",
			patterns: []string{filepath.Join(dir, "**", "*.gz")},
			want:     []string{filepath.Join(dir, "old", "access.log.gz")},
		},
		{
			name:     "no match",
			patterns: []string{filepath.Join(dir, "*.zst")},
			wantCode: codeNoInputMatched,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := expandInputs(tt.patterns)
			if tt.wantCode != "" {
				svcErr, ok := svcerrors.AsServiceError(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantCode, svcErr.Code)
				assert.Equal(t, svcerrors.ExitUsage, svcErr.ExitCode)
				return
			}
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func zstded(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestOpenLogSource(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{name: "plain", file: "access.log", data: []byte(sampleLog)},
		{name: "gzip", file: "access.log.gz", data: gzipped(t, sampleLog)},
		{name: "zstd", file: "access.log.ZST", data: zstded(t, sampleLog)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(dir, tt.file)
			writeFile(t, path, tt.data)

			rc, err := openLogSource(path, nil)
			require.NoError(t, err)
			defer rc.Close()
			got, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, sampleLog, string(got))
		})
	}
}

func TestOpenLogSource_Stdin(t *testing.T) {
	t.Parallel()
	rc, err := openLogSource(stdinName, strings.NewReader(sampleLog))
	require.NoError(t, err)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleLog, string(got))
	assert.NoError(t, rc.Close())
}

func TestOpenLogSource_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	target := filepath.Join(dir, "access.log")
	writeFile(t, target, []byte(sampleLog))
	link := filepath.Join(dir, "current.log")
	require.NoError(t, os.Symlink(target, link))
	writeFile(t, filepath.Join(dir, "broken.gz"), []byte("not gzip"))

	tests := []struct {
		name     string
		path     string
		wantCode string
	}{
		{name: "symlink refused", path: link, wantCode: codeLogSymlink},
		{name: "missing file", path: filepath.Join(dir, "missing.log"), wantCode: codeLogOpenFailed},
		{name: "corrupt gzip", path: filepath.Join(dir, "broken.gz"), wantCode: codeInternalDecoder},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := openLogSource(tt.path, nil)
			svcErr, ok := svcerrors.AsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, svcErr.Code)
		})
	}
}
