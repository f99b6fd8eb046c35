// Package logger provides structured, context-aware logging for the client.
package logger

import (
	"context"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// Level mirrors zerolog's level scale so callers never import zerolog directly.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelDisabled
)

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// LoggerInterface is the logging surface used throughout the module.
// The `c`-suffixed variants accept an explicit caller-skip so wrapper
// helpers can attribute log lines to their caller rather than themselves.
type LoggerInterface interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)
	Debugc(ctx context.Context, caller int, msg string, args ...any)
	Infoc(ctx context.Context, caller int, msg string, args ...any)
	Warnc(ctx context.Context, caller int, msg string, args ...any)
	Errorc(ctx context.Context, caller int, msg string, args ...any)
}

// Logger wraps a zerolog.Logger to satisfy LoggerInterface.
type Logger struct {
	zl zerolog.Logger
}

// Option configures a Logger.
type Option func(*zerolog.Context)

// WithField attaches a static field to every line the logger emits.
func WithField(key string, value any) Option {
	return func(c *zerolog.Context) {
		*c = c.Interface(key, value)
	}
}

// WithCaller adds the file:line of the log call site to every line.
func WithCaller() Option {
	return func(c *zerolog.Context) {
		*c = c.Caller()
	}
}

// New builds a Logger writing to w at the given level, tagged with name.
func New(w io.Writer, level Level, name string, opts ...Option) *Logger {
	if w == nil {
		w = os.Stderr
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	base := zerolog.New(w).With().Timestamp().Str("component", name)
	for _, o := range opts {
		o(&base)
	}
	return &Logger{zl: base.Logger().Level(level.zerolog())}
}

func (l *Logger) with(ctx context.Context, lvl zerolog.Level, skip int, msg string, args []any) {
	ev := l.zl.WithLevel(lvl)
	if traceID := traceIDFromContext(ctx); traceID != "" {
		ev = ev.Str("trace_id", traceID)
	}
	if skip > 0 {
		if _, file, line, ok := runtime.Caller(skip + 1); ok {
			ev = ev.Str("caller", shortCaller(file, line))
		}
	}
	ev = appendArgs(ev, args)
	ev.Msg(msg)
}

func (l *Logger) Debug(ctx context.Context, msg string, args ...any) { l.with(ctx, zerolog.DebugLevel, 0, msg, args) }
func (l *Logger) Info(ctx context.Context, msg string, args ...any)  { l.with(ctx, zerolog.InfoLevel, 0, msg, args) }
func (l *Logger) Warn(ctx context.Context, msg string, args ...any)  { l.with(ctx, zerolog.WarnLevel, 0, msg, args) }
func (l *Logger) Error(ctx context.Context, msg string, args ...any) { l.with(ctx, zerolog.ErrorLevel, 0, msg, args) }

func (l *Logger) Debugc(ctx context.Context, caller int, msg string, args ...any) {
	l.with(ctx, zerolog.DebugLevel, caller, msg, args)
}
func (l *Logger) Infoc(ctx context.Context, caller int, msg string, args ...any) {
	l.with(ctx, zerolog.InfoLevel, caller, msg, args)
}
func (l *Logger) Warnc(ctx context.Context, caller int, msg string, args ...any) {
	l.with(ctx, zerolog.WarnLevel, caller, msg, args)
}
func (l *Logger) Errorc(ctx context.Context, caller int, msg string, args ...any) {
	l.with(ctx, zerolog.ErrorLevel, caller, msg, args)
}

// appendArgs interprets args as alternating key/value pairs, matching the
// slog-style call convention used at every log call site in this module.
func appendArgs(ev *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, args[i+1])
	}
	return ev
}

type traceIDKey struct{}

// ContextWithTraceID attaches a trace id that Logger will surface on every line.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func traceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

func shortCaller(file string, line int) string {
	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	return short + ":" + itoa(line)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

var _ LoggerInterface = (*Logger)(nil)
