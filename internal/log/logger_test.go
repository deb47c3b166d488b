package log

import (
	"testing"

	"orgchart/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger_Level(t *testing.T) {
	conf := &config.Configuration{Log: config.Log{Level: "warn"}}
	logger, err := NewLogger(conf)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.InfoLevel))
	assert.True(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestNewLogger_DefaultsToInfo(t *testing.T) {
	logger, err := NewLogger(&config.Configuration{})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.InfoLevel))
	assert.False(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNewLogger_Invalid(t *testing.T) {
	_, err := NewLogger(&config.Configuration{Log: config.Log{Level: "loud"}})
	assert.ErrorContains(t, err, "LOG__LEVEL")

	_, err = NewLogger(&config.Configuration{Log: config.Log{Format: "xml"}})
	assert.ErrorContains(t, err, "LOG__FORMAT")
}
