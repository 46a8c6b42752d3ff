package logging

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		l := New(level)
		require.NotNil(t, l)
		require.NotNil(t, l.Logger)
	}
}

func TestNewFallsBackToInfo(t *testing.T) {
	l := New("not-a-level")
	assert.False(t, l.Enabled(nil, slog.LevelDebug))
	assert.True(t, l.Enabled(nil, slog.LevelInfo))
}

func TestDefault(t *testing.T) {
	l := Default()
	require.NotNil(t, l)
	assert.True(t, l.Enabled(nil, slog.LevelInfo))
}
