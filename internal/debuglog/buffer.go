// Package debuglog captures diagnostic output into a bounded, lock-guarded
// line buffer and shows it in a scrollable system window.
package debuglog

import (
	"bytes"
	"strings"
	"sync"

	"charm.land/log/v2"

	"github.com/Gaurav-Gosain/termwm/internal/pool"
)

// DefaultMaxLines bounds the buffer when no limit is given.
const DefaultMaxLines = 2000

// Buffer is a bounded ring of log lines. Writers may be on any goroutine;
// the UI drains it once per frame with Snapshot.
type Buffer struct {
	mu       sync.Mutex
	lines    []string
	partial  []byte
	maxLines int
	seq      uint64
}

// NewBuffer returns a buffer that keeps at most maxLines lines.
func NewBuffer(maxLines int) *Buffer {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	return &Buffer{maxLines: maxLines}
}

// Write implements io.Writer. Output is split on newlines; a trailing
// partial line is held until its newline arrives.
func (b *Buffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	scratch := pool.GetByteSlice()
	defer pool.PutByteSlice(scratch)
	*scratch = append(append(*scratch, b.partial...), p...)

	data := *scratch
	for {
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			break
		}
		b.appendLine(string(data[:idx]))
		data = data[idx+1:]
	}
	b.partial = append([]byte(nil), data...)
	return len(p), nil
}

// AppendLine adds a complete line.
func (b *Buffer) AppendLine(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.appendLine(line)
}

func (b *Buffer) appendLine(line string) {
	line = strings.TrimRight(line, "\r")
	b.lines = append(b.lines, line)
	if over := len(b.lines) - b.maxLines; over > 0 {
		b.lines = append(b.lines[:0], b.lines[over:]...)
	}
	b.seq++
}

// Snapshot returns a copy of the buffered lines and a sequence number that
// changes whenever a line is added.
func (b *Buffer) Snapshot() ([]string, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out, b.seq
}

// Seq returns the current sequence number without copying lines.
func (b *Buffer) Seq() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.seq
}

// Len returns the number of complete lines held.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Clear drops all lines.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = b.lines[:0]
	b.partial = nil
	b.seq++
}

// NewLogger returns a structured logger that writes into buf.
func NewLogger(buf *Buffer, prefix string) *log.Logger {
	logger := log.NewWithOptions(buf, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          prefix,
		Level:           log.DebugLevel,
	})
	return logger
}
