package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when a read is abandoned because its context
// ended.
var ErrInputCancelled = errors.New("input canceled")

type line struct {
	err  error
	text string
}

// LineReader reads lines from an io.Reader without blocking callers past
// their context. A single goroutine owns the underlying reader, so a line
// that arrives after a cancelled read is kept for the next one.
type LineReader struct {
	src   *bufio.Reader
	lines chan line
	once  sync.Once
}

// NewLineReader creates a reader over r.
func NewLineReader(r io.Reader) *LineReader {
	if r == nil {
		panic("reader cannot be nil")
	}
	return &LineReader{
		src:   bufio.NewReader(r),
		lines: make(chan line, 1),
	}
}

func (r *LineReader) pump() {
	for {
		text, err := r.src.ReadString('\n')
		if err == io.EOF && text != "" {
			// Final line without a newline.
			r.lines <- line{text: text}
			continue
		}
		r.lines <- line{text: text, err: err}
		if err != nil {
			return
		}
	}
}

// ReadLine returns the next line with surrounding whitespace trimmed. It
// returns io.EOF once the input is exhausted.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	r.once.Do(func() { go r.pump() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case l, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			// Keep reporting the terminal error.
			close(r.lines)
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}
