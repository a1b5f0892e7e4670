package logging

import (
	"context"
	"sort"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"
)

// Fields represents structured logging fields.
type Fields map[string]interface{}

// Logger is the logging surface handed to each component. Implementations
// must be safe for concurrent use.
type Logger interface {
	Debug(ctx context.Context, msg string, fields Fields)
	Info(ctx context.Context, msg string, fields Fields)
	Warn(ctx context.Context, msg string, fields Fields)
	Error(ctx context.Context, err error, fields Fields)
}

type logxLogger struct {
	name string
}

// New returns a Logger backed by go-zero's logx. Every entry carries a
// logger=<name> field.
func New(name string) Logger {
	return &logxLogger{name: name}
}

// SetLevel adjusts the process-wide logx level.
func SetLevel(level string) {
	logx.SetLevel(ParseLevel(level))
}

func (l *logxLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.entry(ctx, fields).Debug(msg)
}

func (l *logxLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.entry(ctx, fields).Info(msg)
}

func (l *logxLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.entry(ctx, fields).Slow(msg)
}

func (l *logxLogger) Error(ctx context.Context, err error, fields Fields) {
	l.entry(ctx, fields).Error(err.Error())
}

func (l *logxLogger) entry(ctx context.Context, fields Fields) logx.Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	return logx.WithContext(ctx).WithFields(toLogFields(l.name, fields)...)
}

func toLogFields(name string, fields Fields) []logx.LogField {
	out := make([]logx.LogField, 0, len(fields)+1)
	if name != "" {
		out = append(out, logx.Field("logger", name))
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, logx.Field(k, fields[k]))
	}
	return out
}

// ParseLevel maps a textual level to a logx level, defaulting to info.
func ParseLevel(level string) uint32 {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logx.DebugLevel
	case "info":
		return logx.InfoLevel
	case "error":
		return logx.ErrorLevel
	case "severe", "fatal":
		return logx.SevereLevel
	default:
		return logx.InfoLevel
	}
}

type discard struct{}

// Discard returns a Logger that drops everything.
func Discard() Logger { return discard{} }

func (discard) Debug(context.Context, string, Fields) {}
func (discard) Info(context.Context, string, Fields)  {}
func (discard) Warn(context.Context, string, Fields)  {}
func (discard) Error(context.Context, error, Fields)  {}
