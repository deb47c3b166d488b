package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthService(t *testing.T) {
	s := NewHealthService()
	assert.True(t, s.IsLive())
	assert.False(t, s.IsReady())
	assert.Nil(t, s.Readiness().BuiltAt)

	// 第一次就失敗：仍未 ready
	s.MarkBuildFailed(errors.New("mongo down"))
	assert.False(t, s.IsReady())
	assert.Equal(t, "mongo down", s.Readiness().LastError)

	builtAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.MarkBuilt("cache", 42, builtAt)
	got := s.Readiness()
	assert.True(t, got.Ready)
	assert.Equal(t, "cache", got.Source)
	assert.Equal(t, 42, got.Nodes)
	require.NotNil(t, got.BuiltAt)
	assert.Equal(t, builtAt, *got.BuiltAt)
	assert.Empty(t, got.LastError)

	// 之後的失敗不影響 ready
	s.MarkBuildFailed(errors.New("timeout"))
	assert.True(t, s.IsReady())
	assert.Equal(t, 42, s.Readiness().Nodes)

	s.SetReady(false)
	assert.False(t, s.Readiness().Ready)
}
