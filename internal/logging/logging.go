// Package logging writes one JSON object per line, the format every component
// of the service logs in.
package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes JSON log lines stamped with a timestamp in a fixed location.
// It is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	loc *time.Location
}

// New returns a Logger writing to w. A nil loc means UTC.
func New(w io.Writer, loc *time.Location) *Logger {
	if loc == nil {
		loc = time.UTC
	}
	return &Logger{w: w, loc: loc}
}

var std = New(os.Stdout, time.UTC)

// Default returns the process-wide logger.
func Default() *Logger { return std }

// SetDefault replaces the process-wide logger.
func SetDefault(l *Logger) { std = l }

// Location returns the time zone used for timestamps.
func (l *Logger) Location() *time.Location { return l.loc }

// Log writes data as a single line. "ts" is always set; "level" defaults to
// "error" when status is "error" and "info" otherwise.
func (l *Logger) Log(data map[string]any) {
	data["ts"] = time.Now().In(l.loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		b, _ = json.Marshal(map[string]any{
			"ts":    data["ts"],
			"level": "error",
			"msg":   "log_marshal_failed",
			"error": err.Error(),
		})
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.w.Write(append(b, '\n'))
}

// Info logs msg with optional fields.
func (l *Logger) Info(msg string, fields map[string]any) {
	l.Log(with(fields, "info", msg))
}

// Warn logs msg with optional fields.
func (l *Logger) Warn(msg string, fields map[string]any) {
	l.Log(with(fields, "warn", msg))
}

// Error logs msg with err and optional fields.
func (l *Logger) Error(msg string, err error, fields map[string]any) {
	data := with(fields, "error", msg)
	if err != nil {
		data["error"] = err.Error()
	}
	l.Log(data)
}

func with(fields map[string]any, level, msg string) map[string]any {
	data := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		data[k] = v
	}
	data["level"] = level
	data["msg"] = msg
	return data
}
