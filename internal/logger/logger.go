// Package logger keeps a bounded, in-memory log of machine events. Identical
// consecutive entries are collapsed into one with a repeat count, so a CPU
// stuck on a faulting instruction does not flood the log.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry is a single line in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	Repeated  int
}

func (e Entry) String() string {
	s := fmt.Sprintf("%s: %s", e.Tag, e.Detail)
	if e.Repeated > 0 {
		s += fmt.Sprintf(" (repeat x%d)", e.Repeated+1)
	}
	return s
}

// Logger is safe for use from the CPU goroutine and a UI goroutine at once.
type Logger struct {
	mu         sync.Mutex
	maxEntries int
	entries    []Entry
	echo       io.Writer
}

func New(maxEntries int) *Logger {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Logger{maxEntries: maxEntries}
}

// SetEcho writes every new entry to w as it is logged. nil turns echo off.
func (l *Logger) SetEcho(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.echo = w
}

func (l *Logger) Log(tag, detail string) {
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if n := len(l.entries); n > 0 && l.entries[n-1].Tag == tag && l.entries[n-1].Detail == detail {
		l.entries[n-1].Repeated++
		l.entries[n-1].Timestamp = now
	} else {
		l.entries = append(l.entries, Entry{Timestamp: now, Tag: tag, Detail: detail})
	}
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
	}

	if l.echo != nil {
		io.WriteString(l.echo, l.entries[len(l.entries)-1].String()+"\n")
	}
}

func (l *Logger) Logf(tag, format string, args ...any) {
	l.Log(tag, fmt.Sprintf(format, args...))
}

// Entries returns a copy of the log, oldest first.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := make([]Entry, len(l.entries))
	copy(c, l.entries)
	return c
}

func (l *Logger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = l.entries[:0]
}

// Write outputs every entry. It reports whether there was anything to write.
func (l *Logger) Write(w io.Writer) bool {
	entries := l.Entries()
	for _, e := range entries {
		io.WriteString(w, e.String()+"\n")
	}
	return len(entries) > 0
}

// Tail outputs the last n entries.
func (l *Logger) Tail(w io.Writer, n int) {
	entries := l.Entries()
	n = min(max(n, 0), len(entries))
	for _, e := range entries[len(entries)-n:] {
		io.WriteString(w, e.String()+"\n")
	}
}
