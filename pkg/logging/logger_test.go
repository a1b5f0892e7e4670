package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/logx"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := logx.Reset()
	logx.SetWriter(logx.NewWriter(&buf))
	t.Cleanup(func() {
		logx.Reset()
		if prev != nil {
			logx.SetWriter(prev)
		}
	})
	return &buf
}

func TestLoggerWritesNameAndFields(t *testing.T) {
	buf := captureLogs(t)
	logger := New("binance")

	logger.Info(context.Background(), "account loaded", Fields{"path": "/fapi/v2/account"})

	out := buf.String()
	require.Contains(t, out, "account loaded")
	require.Contains(t, out, "binance")
	require.Contains(t, out, "/fapi/v2/account")
}

func TestLoggerMethods(t *testing.T) {
	captureLogs(t)
	logger := New("test")
	ctx := context.Background()

	require.NotPanics(t, func() {
		logger.Debug(ctx, "debug message", Fields{"key": "value"})
		logger.Info(ctx, "info message", nil)
		logger.Warn(ctx, "warning message", Fields{})
		logger.Error(ctx, errors.New("boom"), Fields{"key": 42})
		logger.Info(nil, "nil context", nil)
	})
}

func TestDiscard(t *testing.T) {
	require.Implements(t, (*Logger)(nil), Discard())
	require.NotPanics(t, func() {
		Discard().Error(context.Background(), errors.New("ignored"), nil)
	})
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, ParseLevel("debug"), ParseLevel("  DEBUG "))
	require.Equal(t, ParseLevel("severe"), ParseLevel("fatal"))
	require.Equal(t, ParseLevel("info"), ParseLevel("invalid"))
	require.Equal(t, ParseLevel("info"), ParseLevel(""))
	require.Equal(t, uint32(logx.ErrorLevel), ParseLevel("error"))
}

func TestToLogFieldsSorted(t *testing.T) {
	fields := toLogFields("binance", Fields{"b": 2, "a": 1})
	require.Len(t, fields, 3)
	require.Equal(t, "logger", fields[0].Key)
	require.Equal(t, "a", fields[1].Key)
	require.Equal(t, "b", fields[2].Key)
}
