package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		env           string
		expectedLevel slog.Level
	}{
		{
			name:          "local environment",
			env:           "local",
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "dev environment",
			env:           "dev",
			expectedLevel: slog.LevelDebug,
		},
		{
			name:          "prod environment",
			env:           "prod",
			expectedLevel: slog.LevelInfo,
		},
		{
			name:          "unknown env falls back to pretty",
			env:           "",
			expectedLevel: slog.LevelDebug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.env)
			require.NotNil(t, log)

			ctx := context.Background()
			assert.Equal(t, tt.expectedLevel <= slog.LevelDebug, log.Enabled(ctx, slog.LevelDebug))
			assert.True(t, log.Enabled(ctx, slog.LevelInfo))
		})
	}
}

func TestSetupPrettySlog(t *testing.T) {
	log := setupPrettySlog()
	require.NotNil(t, log)
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
}

func TestDiscard(t *testing.T) {
	log := Discard()
	require.NotNil(t, log)
	// Не должен паниковать при записи
	log.Info("тестовое сообщение", "key", "value")
}
