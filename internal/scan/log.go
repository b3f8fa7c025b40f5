// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Log is the append-only processing log owned by one batch invocation.
// Every entry is timestamped at append time. Appends are safe for
// concurrent use by pipeline workers; each line stays internally
// coherent because callers include the item identifier in the message.
type Log struct {
	mu      sync.Mutex
	entries []string

	// w, when non-nil, receives each line as it is appended so
	// interactive callers can follow progress live.
	w io.Writer

	// now stamps entries; tests substitute a fixed clock.
	now func() time.Time
}

// NewLog creates a log that mirrors entries to w. A nil w disables
// mirroring.
func NewLog(w io.Writer) *Log {
	return &Log{w: w, now: time.Now}
}

// Printf appends a formatted, timestamped entry.
func (l *Log) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] %s", l.now().Format("15:04:05"), fmt.Sprintf(format, args...))
	l.entries = append(l.entries, line)
	if l.w != nil {
		fmt.Fprintln(l.w, line)
	}
}

// Entries returns a copy of the accumulated entries in append order.
func (l *Log) Entries() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}
