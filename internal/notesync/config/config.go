// Package config содержит конфигурацию клиента синхронизации заметок.
package config

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	pkgconfig "notesync/pkg/config"
	"notesync/pkg/logger"
)

const (
	LogLoadingConfig    = "Loading notesync configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"

	// EnvFileVariable переменная с путем к необязательному .env файлу.
	EnvFileVariable = "NOTESYNC_ENV_FILE"
)

// Config полная конфигурация клиента.
type Config struct {
	HTTP          HTTPConfig
	GRPC          GRPCClientConfig
	Redis         RedisConfig
	Resilience    ResilienceConfig
	Notifications NotificationsConfig
	Logging       LoggingConfig
	Shutdown      ShutdownConfig
}

// Load читает конфигурацию из переменных окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogLoadingConfig)

	cfg, err := pkgconfig.Load[Config](ctx, "notesync", os.Getenv(EnvFileVariable))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_address", cfg.HTTP.GetAddress()),
		zap.String("auth_service_address", cfg.GRPC.AuthService.GetAddress()),
		zap.String("notes_service_address", cfg.GRPC.NotesService.GetAddress()),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("redis_address", cfg.Redis.GetAddress()),
		zap.Duration("profile_ttl", cfg.Redis.ProfileTTL),
		zap.Int("retry_max_attempts", cfg.Resilience.MaxAttempts),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("shutdown_timeout", cfg.Shutdown.Timeout))

	return cfg, nil
}
