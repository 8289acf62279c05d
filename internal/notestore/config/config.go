// Package config содержит конфигурацию хранилища заметок для локальной разработки.
package config

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	pkgconfig "notesync/pkg/config"
	"notesync/pkg/logger"
)

const (
	LogLoadingConfig    = "Loading note store configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"

	// EnvFileVariable переменная с путем к необязательному .env файлу.
	EnvFileVariable = "NOTESTORE_ENV_FILE"
)

// Config конфигурация хранилища.
type Config struct {
	GRPC     GRPCConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	Logging  LoggingConfig
	Shutdown ShutdownConfig
}

// Драйверы хранения.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// StorageConfig выбор хранилища.
type StorageConfig struct {
	Driver string `env:"NOTESTORE_STORAGE_DRIVER" env-default:"memory"`
}

// PostgresConfig настройки подключения к Postgres.
type PostgresConfig struct {
	Host     string `env:"NOTESTORE_POSTGRES_HOST" env-default:"localhost"`
	Port     int    `env:"NOTESTORE_POSTGRES_PORT" env-default:"5432"`
	User     string `env:"NOTESTORE_POSTGRES_USER" env-default:"postgres"`
	Password string `env:"NOTESTORE_POSTGRES_PASSWORD" env-default:"postgres"`
	Database string `env:"NOTESTORE_POSTGRES_DB" env-default:"notes"`
	MinConn  int    `env:"NOTESTORE_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn  int    `env:"NOTESTORE_POSTGRES_MAX_CONN" env-default:"10"`
}

// GetConnectionURL возвращает URL подключения для пула и миграций.
func (p *PostgresConfig) GetConnectionURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, strconv.Itoa(p.Port)),
		Path:     p.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// GRPCConfig адрес gRPC-сервера.
type GRPCConfig struct {
	Host string `env:"NOTESTORE_GRPC_HOST" env-default:"0.0.0.0"`
	Port int    `env:"NOTESTORE_GRPC_PORT" env-default:"50051"`
}

// GetAddress возвращает host:port.
func (c *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig параметры токенов и хэширования паролей.
type JWTConfig struct {
	SecretKey       string        `env:"NOTESTORE_JWT_SECRET_KEY" env-default:"dev-secret-change-me"`
	AccessTokenTTL  time.Duration `env:"NOTESTORE_JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"NOTESTORE_JWT_REFRESH_TOKEN_TTL" env-default:"24h"`
	BCryptCost      int           `env:"NOTESTORE_BCRYPT_COST" env-default:"10"`
}

// LoggingConfig уровень и режим логирования.
type LoggingConfig struct {
	Level string `env:"NOTESTORE_LOGGER_LEVEL" env-default:"info"`
	Mode  string `env:"NOTESTORE_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment возвращает режим логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == string(logger.Production) {
		return logger.Production
	}
	return logger.Development
}

// ShutdownConfig таймаут корректного завершения.
type ShutdownConfig struct {
	Timeout time.Duration `env:"NOTESTORE_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load читает конфигурацию из окружения.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogLoadingConfig)

	cfg, err := pkgconfig.Load[Config](ctx, "notestore", os.Getenv(EnvFileVariable))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("grpc_address", cfg.GRPC.GetAddress()),
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Duration("access_token_ttl", cfg.JWT.AccessTokenTTL),
		zap.Duration("refresh_token_ttl", cfg.JWT.RefreshTokenTTL),
		zap.String("log_level", cfg.Logging.Level))

	return cfg, nil
}
