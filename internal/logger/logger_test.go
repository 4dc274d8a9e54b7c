package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KretovDmitry/fallback-shortener/internal/config"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	cfg := config.NewForTest()

	l, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, l)

	cfg.Logger.Level = "loud"
	_, err = New(cfg)
	assert.Error(t, err)
}

func TestLogger_WithRequest(t *testing.T) {
	l, logs := NewForTest()

	req := httptest.NewRequest(http.MethodGet, "/stats", http.NoBody)
	req.Header.Set("X-Request-ID", "req-1")
	req.Header.Set("X-Correlation-ID", "corr-1")

	ctx := WithRequest(context.Background(), req)
	assert.Equal(t, "req-1", RequestID(ctx))

	l.With(ctx, "code", "abc123").Info("resolved")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "corr-1", fields["correlation_id"])
	assert.Equal(t, "abc123", fields["code"])
}

func TestLogger_WithRequestGeneratesID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)

	ctx := WithRequest(context.Background(), req)

	assert.Len(t, RequestID(ctx), 36)
}

func TestLogger_SQLLevels(t *testing.T) {
	l, logs := NewForTest()

	l.Log(context.Background(), sqldblogger.LevelError, "exec", map[string]interface{}{"query": "SELECT 1"})
	l.Log(context.Background(), sqldblogger.LevelInfo, "query", nil)
	l.Log(context.Background(), sqldblogger.LevelDebug, "ping", nil)

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "SELECT 1", entries[0].ContextMap()["query"])
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.DebugLevel, entries[2].Level)
}
