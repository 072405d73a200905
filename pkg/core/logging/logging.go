// ============================================================================
// meinDENKWERK (mDW) - Cicero Dictation Enhancement
// ============================================================================
//
// Package:     logging
// Description: Structured leveled logging for Cicero components
// Author:      Mike Stoffels with Claude
// Created:     2026-02-18
// License:     MIT
// ============================================================================

package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string level to a Level, defaulting to info
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format represents the output format of a logger
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// Config holds logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
}

var (
	defaultMu     sync.RWMutex
	defaultConfig = Config{
		Level:  LevelInfo,
		Format: FormatText,
		Output: os.Stdout,
	}
)

// Configure sets the process-wide defaults used by New
func Configure(cfg Config) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	defaultConfig = cfg
}

// Logger is a named, leveled logger with structured key/value fields
type Logger struct {
	name   string
	level  Level
	format Format
	out    io.Writer
	mu     *sync.Mutex
	fields map[string]interface{}
}

// New creates a logger with the process-wide default configuration
func New(name string) *Logger {
	defaultMu.RLock()
	cfg := defaultConfig
	defaultMu.RUnlock()
	return NewWithConfig(name, cfg)
}

// NewWithConfig creates a logger with an explicit configuration
func NewWithConfig(name string, cfg Config) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return &Logger{
		name:   name,
		level:  cfg.Level,
		format: cfg.Format,
		out:    cfg.Output,
		mu:     &sync.Mutex{},
		fields: make(map[string]interface{}),
	}
}

// WithLevel returns a copy of the logger with the given level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// With returns a copy of the logger with additional permanent fields
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	clone := l.clone()
	mergeFields(clone.fields, keysAndValues...)
	return clone
}

func (l *Logger) clone() *Logger {
	fields := make(map[string]interface{}, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}
	return &Logger{
		name:   l.name,
		level:  l.level,
		format: l.format,
		out:    l.out,
		mu:     l.mu,
		fields: fields,
	}
}

// Debug logs a debug message with optional key/value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log(LevelDebug, msg, keysAndValues...)
}

// Info logs an info message with optional key/value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log(LevelInfo, msg, keysAndValues...)
}

// Warn logs a warning message with optional key/value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.log(LevelWarn, msg, keysAndValues...)
}

// Error logs an error message with optional key/value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.log(LevelError, msg, keysAndValues...)
}

func (l *Logger) log(level Level, msg string, keysAndValues ...interface{}) {
	if level < l.level {
		return
	}

	fields := make(map[string]interface{}, len(l.fields)+len(keysAndValues)/2)
	for k, v := range l.fields {
		fields[k] = v
	}
	mergeFields(fields, keysAndValues...)

	now := time.Now()

	var line []byte
	if l.format == FormatJSON {
		entry := map[string]interface{}{
			"timestamp": now.Format(time.RFC3339Nano),
			"level":     level.String(),
			"logger":    l.name,
			"message":   msg,
		}
		for k, v := range fields {
			if err, ok := v.(error); ok {
				entry[k] = err.Error()
				continue
			}
			entry[k] = v
		}
		data, err := json.Marshal(entry)
		if err != nil {
			data = []byte(fmt.Sprintf(`{"level":"error","logger":%q,"message":"log entry not serializable"}`, l.name))
		}
		line = append(data, '\n')
	} else {
		var b strings.Builder
		b.WriteString(now.Format("2006-01-02T15:04:05.000"))
		b.WriteString(" [")
		b.WriteString(strings.ToUpper(level.String()))
		b.WriteString("] ")
		b.WriteString(l.name)
		b.WriteString(": ")
		b.WriteString(msg)

		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(" ")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(fmt.Sprintf("%v", fields[k]))
		}
		b.WriteString("\n")
		line = []byte(b.String())
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Write(line)
}

// mergeFields folds variadic key/value pairs into a field map, skipping
// non-string keys and dangling values
func mergeFields(fields map[string]interface{}, keysAndValues ...interface{}) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
}
