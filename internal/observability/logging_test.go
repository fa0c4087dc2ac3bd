package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/config"
)

func TestNewLoggerLevel(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "WARN"}, config.AppConfig{Name: "case-service", Env: "test"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.WarnLevel))

	fallback, err := NewLogger(config.LoggerConfig{Level: "chatty", Format: "console"}, config.AppConfig{Env: "development"})
	require.NoError(t, err)
	assert.True(t, fallback.Core().Enabled(zap.InfoLevel))
	assert.False(t, fallback.Core().Enabled(zap.DebugLevel))
}

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/cases", "GET", 200, 0)
	m.RecordError("/drafts/:id/submit", "POST", "VALIDATION_FAILED")
	m.RecordEvent("case_submitted")
	m.RecordEvent("case_submitted")

	snap := m.Snapshot()
	assert.Equal(t, int64(2), snap["events"]["case_submitted"])
	assert.Equal(t, int64(1), snap["errors"]["/drafts/:id/submit|POST|VALIDATION_FAILED"])
	assert.Len(t, snap["requests"], 1)

	var nilMetrics *Metrics
	nilMetrics.RecordEvent("ignored")
	assert.Nil(t, nilMetrics.Snapshot())
}
