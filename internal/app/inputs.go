package app

import (
	"compress/bzip2"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// stdinName selects standard input in input.files.
const stdinName = "-"

// expandInputs resolves glob patterns in order. Literal paths are kept even when missing so that
// opening them reports the real error. A pattern matching nothing is an error.
func expandInputs(patterns []string) ([]string, error) {
	var out []string
	for _, pattern := range patterns {
		if pattern == stdinName || !strings.ContainsAny(pattern, "*?[{") {
			out = append(out, pattern)
			continue
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
		if err != nil {
			return nil, errLogOpenFailed(pattern, err)
		}
		if len(matches) == 0 {
			return nil, errNoInputMatched(pattern)
		}
		out = append(out, matches...)
	}
	return out, nil
}

// isRegular reports whether name is a seekable input the DNS pre-pass can read twice.
func isRegular(name string) bool {
	return name != stdinName
}

type readCloser struct {
	io.Reader
	close func() error
}

func (rc readCloser) Close() error { return rc.close() }

// openLogSource opens a log file, decompressing .gz, .zst and .bz2 files. Symbolic links are refused.
func openLogSource(name string, stdin io.Reader) (io.ReadCloser, error) {
	if name == stdinName {
		return io.NopCloser(stdin), nil
	}

	info, err := os.Lstat(name)
	if err != nil {
		return nil, errLogOpenFailed(name, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return nil, errLogSymlink(name)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, errLogOpenFailed(name, err)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		gz, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, errInternalDecoder(name, err)
		}
		return readCloser{Reader: gz, close: func() error {
			_ = gz.Close()
			return f.Close()
		}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, errInternalDecoder(name, err)
		}
		return readCloser{Reader: zr, close: func() error {
			zr.Close()
			return f.Close()
		}}, nil
	case ".bz2":
		return readCloser{Reader: bzip2.NewReader(f), close: f.Close}, nil
	}
	return f, nil
}
