package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"notesync/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)
			})
		}
	}
}

func TestLogger_AddsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := logger.Wrap(zap.New(core))

	ctx := logger.NewRequestIDContext(context.Background(), "req-42")
	log.Info(ctx, "with id", zap.String("k", "v"))
	log.Debug(context.Background(), "without id")

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "req-42", entries[0].ContextMap()[logger.RequestID])
	assert.Equal(t, "v", entries[0].ContextMap()["k"])
	_, ok := entries[1].ContextMap()[logger.RequestID]
	assert.False(t, ok)
}

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := logger.Wrap(zap.New(core)).With(zap.String("method", "Refresh"))

	log.Warn(context.Background(), "stale list response")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Refresh", logs.All()[0].ContextMap()["method"])
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestContext(t *testing.T) {
	t.Run("logger stored in context wins", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		log := logger.Wrap(zap.New(core))
		ctx := logger.NewContext(context.Background(), log)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, log, got)

		logger.Log(ctx).Info(ctx, "hello")
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("missing logger", func(t *testing.T) {
		_, err := logger.FromContext(context.Background())
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})

	t.Run("global logger used when context is empty", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		logger.SetGlobalLogger(logger.Wrap(zap.New(core)))
		t.Cleanup(func() { logger.SetGlobalLogger(nil) })

		logger.Log(context.Background()).Info(context.Background(), "global")
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("fallback is never nil", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		assert.NotNil(t, logger.Log(context.Background()))
	})
}

func TestRequestID(t *testing.T) {
	ctx := logger.NewRequestIDContext(context.Background(), "")
	id, ok := logger.GetRequestID(ctx)
	require.True(t, ok)
	assert.Len(t, id, 36)

	_, ok = logger.GetRequestID(context.Background())
	assert.False(t, ok)

	assert.NotEqual(t, logger.GenerateRequestID(), logger.GenerateRequestID())
}
