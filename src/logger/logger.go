// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/H0llyW00dzZ/jssl-server/src/internal/helper/gc"
)

// Supported values for the --log-format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger defines the interface for logging operations.
// It provides methods for formatted output and output redirection.
//
// Every server component receives a Logger instead of writing to stdout
// directly, so the same connection events can be rendered as plain lines for
// an operator or as JSON for log collectors.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// New returns the logger for the given format name, writing to w.
// An empty format selects [FormatText]; a nil w selects stdout.
func New(format string, w io.Writer) (Logger, error) {
	if w == nil {
		w = os.Stdout
	}

	switch strings.ToLower(format) {
	case "", FormatText:
		l := NewCLILogger()
		l.SetOutput(w)
		return l, nil
	case FormatJSON:
		return NewJSONLogger(w, false), nil
	default:
		return nil, fmt.Errorf("logger: unknown format %q (want %q or %q)", format, FormatText, FormatJSON)
	}
}

// Discard returns a Logger that drops every entry.
func Discard() Logger { return NewJSONLogger(io.Discard, true) }

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// JSONLogger implements Logger with one JSON object per line.
// Each entry has the shape {"level":"info","message":"..."}.
//
// JSONLogger is safe for concurrent use by multiple goroutines.
type JSONLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// entry is the wire shape of a JSONLogger line.
type entry struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// NewJSONLogger creates a new structured logger.
// A nil writer discards output; silent suppresses every entry.
func NewJSONLogger(writer io.Writer, silent bool) *JSONLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &JSONLogger{
		writer: writer,
		silent: silent,
	}
}

// Printf formats and logs a structured message.
func (j *JSONLogger) Printf(format string, v ...any) {
	if j.silent {
		return
	}
	j.write(fmt.Sprintf(format, v...))
}

// Println logs a structured message. Operands are joined with spaces,
// matching fmt.Sprintln without the trailing newline.
func (j *JSONLogger) Println(v ...any) {
	if j.silent {
		return
	}
	msg := fmt.Sprintln(v...)
	j.write(strings.TrimSuffix(msg, "\n"))
}

// write encodes msg into a pooled buffer and emits it as a single Write call
// so concurrent entries never interleave.
func (j *JSONLogger) write(msg string) {
	buf := gc.Default.Get()
	defer func() {
		buf.Reset()
		gc.Default.Put(buf)
	}()

	// Encode appends the trailing newline.
	if err := json.NewEncoder(buf).Encode(entry{Level: "info", Message: msg}); err != nil {
		return
	}

	j.mu.Lock()
	j.writer.Write(buf.Bytes())
	j.mu.Unlock()
}

// SetOutput sets the output destination for the JSON logger.
// A nil writer discards subsequent entries.
func (j *JSONLogger) SetOutput(w io.Writer) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if w == nil {
		j.writer = io.Discard
	} else {
		j.writer = w
	}
}

// StdLog adapts l to a [log.Logger], for APIs such as http.Server.ErrorLog
// that only accept the standard type.
func StdLog(l Logger) *log.Logger {
	return log.New(lineWriter{l}, "", 0)
}

// lineWriter forwards each write to the wrapped Logger as one line.
type lineWriter struct{ l Logger }

func (w lineWriter) Write(p []byte) (int, error) {
	w.l.Println(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
