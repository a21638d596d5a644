package mocks

import (
	"context"
	"sync"

	"github.com/felixgeelhaar/sanaguide/internal/ports"
)

// Entry is one recorded log call.
type Entry struct {
	Level   ports.Level
	Message string
	Fields  []ports.Field
}

// Field returns the value of the named field and whether it was present.
func (e Entry) Field(key string) (interface{}, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Logger records every entry at or above its level.
type Logger struct {
	mu      *sync.Mutex
	entries *[]Entry
	fields  []ports.Field
	level   ports.Level
}

// NewLogger creates a recording logger at debug level.
func NewLogger() *Logger {
	return &Logger{mu: &sync.Mutex{}, entries: &[]Entry{}, level: ports.LevelDebug}
}

// Debug implements ports.Logger.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelDebug, msg, fields)
}

// Info implements ports.Logger.
func (l *Logger) Info(ctx context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelInfo, msg, fields)
}

// Warn implements ports.Logger.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelWarn, msg, fields)
}

// Error implements ports.Logger.
func (l *Logger) Error(ctx context.Context, msg string, fields ...ports.Field) {
	l.record(ports.LevelError, msg, fields)
}

// With returns a child that shares the recorded entries.
func (l *Logger) With(fields ...ports.Field) ports.Logger {
	merged := append(append([]ports.Field{}, l.fields...), fields...)
	return &Logger{mu: l.mu, entries: l.entries, fields: merged, level: l.level}
}

// Level implements ports.Logger.
func (l *Logger) Level() ports.Level {
	return l.level
}

// SetLevel implements ports.Logger.
func (l *Logger) SetLevel(level ports.Level) {
	l.level = level
}

// Entries returns a copy of everything recorded so far.
func (l *Logger) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), (*l.entries)...)
}

// EntriesAt returns the entries recorded at level.
func (l *Logger) EntriesAt(level ports.Level) []Entry {
	var out []Entry
	for _, e := range l.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (l *Logger) record(level ports.Level, msg string, fields []ports.Field) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	all := append(append([]ports.Field{}, l.fields...), fields...)
	*l.entries = append(*l.entries, Entry{Level: level, Message: msg, Fields: all})
}

var _ ports.Logger = (*Logger)(nil)
