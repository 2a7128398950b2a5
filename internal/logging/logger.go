package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Field is a single structured logging attribute.
type Field struct {
	Key   string
	Value any
}

// String creates a string-valued field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int-valued field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Uint64 creates a uint64-valued field.
func Uint64(key string, value uint64) Field { return Field{Key: key, Value: value} }

// Float64 creates a float64-valued field.
func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

// Err creates an error field under the conventional "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the logging interface used throughout the application.
// Two implementations are provided: a zerolog-backed structured logger and
// an adapter over the standard library logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Error(msg string, err error, fields ...Field)
	Printf(format string, v ...any)
	Println(v ...any)
}

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps an existing zerolog logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// NewLogger creates a structured logger writing to w, tagged with the
// given component name.
func NewLogger(w io.Writer, component string) *ZerologAdapter {
	zl := zerolog.New(w).With().Timestamp().Str("component", component).Logger()
	return &ZerologAdapter{logger: zl}
}

// NewDefaultLogger creates the standard application logger on stderr.
func NewDefaultLogger() *ZerologAdapter {
	return NewLogger(os.Stderr, "zzcalc")
}

// Debug logs a message at debug level.
func (a *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(a.logger.Debug(), fields).Msg(msg)
}

// Info logs a message at info level.
func (a *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(a.logger.Info(), fields).Msg(msg)
}

// Error logs a message at error level with its cause.
func (a *ZerologAdapter) Error(msg string, err error, fields ...Field) {
	applyFields(a.logger.Error().Err(err), fields).Msg(msg)
}

// Printf logs a formatted message at info level, for components that
// expect a standard-library style logger.
func (a *ZerologAdapter) Printf(format string, v ...any) {
	a.logger.Info().Msg(fmt.Sprintf(format, v...))
}

// Println logs its arguments at info level.
func (a *ZerologAdapter) Println(v ...any) {
	a.logger.Info().Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}

func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case uint64:
			e = e.Uint64(f.Key, v)
		case float64:
			e = e.Float64(f.Key, v)
		case bool:
			e = e.Bool(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// StdLoggerAdapter implements Logger on top of the standard library logger,
// for environments where structured JSON output is not wanted.
type StdLoggerAdapter struct {
	logger *log.Logger
}

// NewStdLoggerAdapter wraps a standard library logger.
func NewStdLoggerAdapter(l *log.Logger) *StdLoggerAdapter {
	return &StdLoggerAdapter{logger: l}
}

// Debug logs a message with a [DEBUG] prefix.
func (a *StdLoggerAdapter) Debug(msg string, fields ...Field) {
	a.logger.Printf("[DEBUG] %s%s", msg, formatFields(fields))
}

// Info logs a message with an [INFO] prefix.
func (a *StdLoggerAdapter) Info(msg string, fields ...Field) {
	a.logger.Printf("[INFO] %s%s", msg, formatFields(fields))
}

// Error logs a message with an [ERROR] prefix and its cause.
func (a *StdLoggerAdapter) Error(msg string, err error, fields ...Field) {
	a.logger.Printf("[ERROR] %s: %v%s", msg, err, formatFields(fields))
}

// Printf forwards to the underlying logger.
func (a *StdLoggerAdapter) Printf(format string, v ...any) {
	a.logger.Printf(format, v...)
}

// Println forwards to the underlying logger.
func (a *StdLoggerAdapter) Println(v ...any) {
	a.logger.Println(v...)
}

func formatFields(fields []Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}
