package parsers

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"weblog-analyzer/internal/models"
)

// LineReader splits a log stream into lines that fit the line buffer.
type LineReader struct {
	br *bufio.Reader
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{br: bufio.NewReaderSize(r, models.MaxLine)}
}

// Next returns the next line without its terminator. A line that, terminator included, fills the
// buffer less one byte is consumed to its end and reported as overlong with an empty text. Next returns io.EOF once the input is
// exhausted.
func (lr *LineReader) Next() (string, bool, error) {
	b, err := lr.br.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = lr.br.ReadSlice('\n')
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", false, err
		}
		return "", true, nil
	}
	if err != nil && (!errors.Is(err, io.EOF) || len(b) == 0) {
		return "", false, err
	}
	// The length check counts the terminator, so the longest accepted text is MaxLine-3 bytes.
	if len(b) >= models.MaxLine-1 {
		return "", true, nil
	}
	return strings.TrimRight(string(b), "\r\n"), false, nil
}
