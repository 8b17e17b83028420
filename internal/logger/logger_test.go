package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	t.Cleanup(func() { log = nil })
	return logs
}

func TestCtxInfo_AttachesRequestAndUserID(t *testing.T) {
	logs := observe(t)

	ctx := WithUserID(WithRequestID(context.Background(), "req-1"), "user-9")
	CtxInfo(ctx, "plan listed", "count", 4)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "plan listed", entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-9", fields["user_id"])
	assert.EqualValues(t, 4, fields["count"])
}

func TestFromContext_WithoutValues(t *testing.T) {
	logs := observe(t)

	FromContext(context.Background()).Infow("bare")

	require.Equal(t, 1, logs.Len())
	_, hasRequestID := logs.All()[0].ContextMap()["request_id"]
	assert.False(t, hasRequestID)
}

func TestCtxWithError_LogsAtErrorLevel(t *testing.T) {
	logs := observe(t)

	CtxWithError(context.Background(), "insert failed", errors.New("boom"), "table", "plans")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	assert.Equal(t, "boom", entry.ContextMap()["error"])
	assert.Equal(t, "plans", entry.ContextMap()["table"])
}

func TestDBLog_Levels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level zapcore.Level
	}{
		{name: "success is debug", err: nil, level: zapcore.DebugLevel},
		{name: "failure is error", err: errors.New("timeout"), level: zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := observe(t)
			DBLog("SELECT", "plans", 0, tt.err)
			require.Equal(t, 1, logs.Len())
			assert.Equal(t, tt.level, logs.All()[0].Level)
		})
	}
}
