package config

import (
	"net"
	"strconv"
	"time"
)

// RedisConfig кэш профилей. Выключенный кэш заменяется no-op реализацией.
type RedisConfig struct {
	Enabled         bool          `env:"NOTESYNC_REDIS_ENABLED" env-default:"false"`
	Host            string        `env:"NOTESYNC_REDIS_HOST" env-default:"localhost"`
	Port            int           `env:"NOTESYNC_REDIS_PORT" env-default:"6379"`
	Password        string        `env:"NOTESYNC_REDIS_PASSWORD" env-default:""`
	DB              int           `env:"NOTESYNC_REDIS_DB" env-default:"0"`
	ConnectTimeout  time.Duration `env:"NOTESYNC_REDIS_CONNECT_TIMEOUT" env-default:"5s"`
	ReadTimeout     time.Duration `env:"NOTESYNC_REDIS_READ_TIMEOUT" env-default:"3s"`
	WriteTimeout    time.Duration `env:"NOTESYNC_REDIS_WRITE_TIMEOUT" env-default:"3s"`
	PoolSize        int           `env:"NOTESYNC_REDIS_POOL_SIZE" env-default:"10"`
	MinIdle         int           `env:"NOTESYNC_REDIS_MIN_IDLE" env-default:"2"`
	IdleTimeout     time.Duration `env:"NOTESYNC_REDIS_IDLE_TIMEOUT" env-default:"5m"`
	MaxConnLifetime time.Duration `env:"NOTESYNC_REDIS_MAX_CONN_LIFETIME" env-default:"1h"`
	ProfileTTL      time.Duration `env:"NOTESYNC_REDIS_PROFILE_TTL" env-default:"15m"`
}

// GetAddress возвращает адрес Redis.
func (c *RedisConfig) GetAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
