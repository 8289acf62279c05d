package config

import (
	"time"

	"notesync/internal/notesync/resilience"
)

// ResilienceConfig параметры повторов и circuit breaker для вызовов хранилища.
type ResilienceConfig struct {
	MaxAttempts      int           `env:"NOTESYNC_RETRY_MAX_ATTEMPTS" env-default:"3"`
	InitialBackoff   time.Duration `env:"NOTESYNC_RETRY_INITIAL_BACKOFF" env-default:"100ms"`
	MaxBackoff       time.Duration `env:"NOTESYNC_RETRY_MAX_BACKOFF" env-default:"1s"`
	BackoffFactor    float64       `env:"NOTESYNC_RETRY_BACKOFF_FACTOR" env-default:"2"`
	ErrorThreshold   int           `env:"NOTESYNC_BREAKER_ERROR_THRESHOLD" env-default:"5"`
	SuccessThreshold int           `env:"NOTESYNC_BREAKER_SUCCESS_THRESHOLD" env-default:"2"`
	OpenTimeout      time.Duration `env:"NOTESYNC_BREAKER_OPEN_TIMEOUT" env-default:"10s"`
}

// Retry возвращает настройки повторов.
func (c *ResilienceConfig) Retry() resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = c.MaxAttempts
	cfg.InitialBackoff = c.InitialBackoff
	cfg.MaxBackoff = c.MaxBackoff
	cfg.BackoffFactor = c.BackoffFactor
	return cfg
}

// CircuitBreaker возвращает настройки circuit breaker.
func (c *ResilienceConfig) CircuitBreaker() resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig()
	cfg.ErrorThreshold = c.ErrorThreshold
	cfg.SuccessThreshold = c.SuccessThreshold
	cfg.Timeout = c.OpenTimeout
	return cfg
}
