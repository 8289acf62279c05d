package config

import (
	"time"

	"notesync/pkg/logger"
)

// LoggingConfig конфигурация логирования.
type LoggingConfig struct {
	Level string `env:"NOTESYNC_LOGGER_LEVEL" env-default:"info"`
	Mode  string `env:"NOTESYNC_LOGGER_MODE" env-default:"production"`
}

// GetEnvironment возвращает режим работы логгера.
func (c *LoggingConfig) GetEnvironment() logger.Environment {
	if c.Mode == string(logger.Development) {
		return logger.Development
	}
	return logger.Production
}

// NotificationsConfig емкость ленты уведомлений.
type NotificationsConfig struct {
	Capacity int `env:"NOTESYNC_NOTIFICATIONS_CAPACITY" env-default:"64"`
}

// ShutdownConfig таймаут корректного завершения.
type ShutdownConfig struct {
	Timeout time.Duration `env:"NOTESYNC_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5s"`
}
