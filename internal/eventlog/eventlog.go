// Package eventlog is the append-only, human-readable record of what every
// check cycle decided. It is domain state, distinct from the operational zap
// log: operators tail it, and nothing ever rewrites it.
package eventlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

const stampLayout = "2006-01-02 15:04:05"

// Log serializes appends so concurrent target workers cannot interleave
// lines. Append failures are counted, not fatal: a broken sink degrades the
// cycle, it does not abort it.
type Log struct {
	mu       sync.Mutex
	w        io.Writer
	closer   io.Closer
	now      func() time.Time
	warnings int
}

// New wraps any writer, e.g. a buffer in tests.
func New(w io.Writer) *Log {
	return &Log{w: w, now: time.Now}
}

// NewFileLog opens (or creates) an append-only log file.
func NewFileLog(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("event log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	return &Log{w: f, closer: f, now: time.Now}, nil
}

// Append writes "[timestamp] message" as one line. Entries keep call order.
func (l *Log) Append(message string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] %s\n", l.now().Format(stampLayout), message)
	if _, err := io.WriteString(l.w, line); err != nil {
		l.warnings++
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Warnings reports how many appends have failed since the log was opened.
// A non-zero value means the sink is broken and the event history has gaps.
func (l *Log) Warnings() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.warnings
}

func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
