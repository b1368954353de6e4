package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel is an ordered severity. Comparisons use the numeric rank, the
// string form is what LOG_LEVEL carries.
type LogLevel string

const (
	DEBUG LogLevel = "debug"
	INFO  LogLevel = "info"
	WARN  LogLevel = "warn"
	ERROR LogLevel = "error"
)

var levelRank = map[LogLevel]int{
	DEBUG: 0,
	INFO:  1,
	WARN:  2,
	ERROR: 3,
}

// Logger writes leveled, structured key/value events. Entries are either
// logfmt-style lines or one JSON object per line.
type Logger struct {
	mu      *sync.Mutex
	out     io.Writer
	level   LogLevel
	json    bool
	context []any
}

var (
	globalMu sync.Mutex
	global   *Logger
)

// Init configures the process-wide logger. A nil out discards everything,
// which the tests rely on.
func Init(level LogLevel, jsonFormat bool, out io.Writer) {
	if _, ok := levelRank[LogLevel(strings.ToLower(string(level)))]; !ok {
		level = INFO
	}
	if out == nil {
		out = io.Discard
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	global = &Logger{
		mu:    &sync.Mutex{},
		out:   out,
		level: LogLevel(strings.ToLower(string(level))),
		json:  jsonFormat,
	}
}

// GetLogger returns the process-wide logger, initializing a default one on
// first use.
func GetLogger() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		global = &Logger{mu: &sync.Mutex{}, out: os.Stdout, level: INFO}
	}
	return global
}

// New returns an independent logger, mainly for tests that want their own
// output capture.
func New(level LogLevel, jsonFormat bool, out io.Writer) *Logger {
	if out == nil {
		out = io.Discard
	}
	return &Logger{mu: &sync.Mutex{}, out: out, level: level, json: jsonFormat}
}

// WithContext returns a child logger that carries the given key/value pair on
// every entry.
func (l *Logger) WithContext(key string, value any) *Logger {
	child := &Logger{
		mu:    l.mu,
		out:   l.out,
		level: l.level,
		json:  l.json,
	}
	child.context = append(append(child.context, l.context...), key, value)
	return child
}

// WithContext is a convenience on the global logger.
func WithContext(key string, value any) *Logger {
	return GetLogger().WithContext(key, value)
}

func (l *Logger) Debug(event string, kv ...any) { l.log(DEBUG, event, kv) }
func (l *Logger) Info(event string, kv ...any)  { l.log(INFO, event, kv) }
func (l *Logger) Warn(event string, kv ...any)  { l.log(WARN, event, kv) }
func (l *Logger) Error(event string, kv ...any) { l.log(ERROR, event, kv) }

func (l *Logger) log(level LogLevel, event string, kv []any) {
	if levelRank[level] < levelRank[l.level] {
		return
	}

	pairs := make([]any, 0, len(l.context)+len(kv))
	pairs = append(pairs, l.context...)
	pairs = append(pairs, kv...)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.json {
		entry := map[string]any{
			"ts":    time.Now().Format(time.RFC3339),
			"level": string(level),
			"event": event,
		}
		for i := 0; i+1 < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				key = fmt.Sprint(pairs[i])
			}
			entry[key] = pairs[i+1]
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return
		}
		fmt.Fprintln(l.out, string(data))
		return
	}

	var b strings.Builder
	b.WriteString(time.Now().Format(time.RFC3339))
	b.WriteString(" [")
	b.WriteString(strings.ToUpper(string(level)))
	b.WriteString("] ")
	b.WriteString(event)
	for i := 0; i+1 < len(pairs); i += 2 {
		fmt.Fprintf(&b, " %v=%v", pairs[i], pairs[i+1])
	}
	fmt.Fprintln(l.out, b.String())
}
