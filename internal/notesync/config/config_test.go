package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesync/internal/notesync/config"
	"notesync/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, "localhost:50051", cfg.GRPC.AuthService.GetAddress())
	assert.Equal(t, 5*time.Second, cfg.GRPC.RequestTimeout)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Redis.ProfileTTL)
	assert.Equal(t, 64, cfg.Notifications.Capacity)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("NOTESYNC_HTTP_PORT", "9090")
	t.Setenv("NOTESYNC_GRPC_AUTH_HOST", "auth.internal")
	t.Setenv("NOTESYNC_GRPC_AUTH_PORT", "7001")
	t.Setenv("NOTESYNC_GRPC_NOTES_HOST", "notes.internal")
	t.Setenv("NOTESYNC_GRPC_NOTES_CONNECT_TIMEOUT", "2s")
	t.Setenv("NOTESYNC_REDIS_ENABLED", "true")
	t.Setenv("NOTESYNC_REDIS_HOST", "cache")
	t.Setenv("NOTESYNC_RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("NOTESYNC_BREAKER_OPEN_TIMEOUT", "30s")
	t.Setenv("NOTESYNC_LOGGER_MODE", "development")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "auth.internal:7001", cfg.GRPC.AuthService.GetAddress())
	assert.Equal(t, "notes.internal:50051", cfg.GRPC.NotesService.GetAddress())
	assert.Equal(t, 2*time.Second, cfg.GRPC.NotesService.ConnectTimeout)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache:6379", cfg.Redis.GetAddress())
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())

	retry := cfg.Resilience.Retry()
	assert.Equal(t, 5, retry.MaxAttempts)
	assert.NotNil(t, retry.ShouldRetry)

	breaker := cfg.Resilience.CircuitBreaker()
	assert.Equal(t, 30*time.Second, breaker.Timeout)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("NOTESYNC_HTTP_PORT", "not-a-port")

	cfg, err := config.Load(context.Background())
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), config.ErrFailedLoadConfig)
}
