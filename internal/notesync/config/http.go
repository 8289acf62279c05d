package config

import (
	"fmt"
	"time"
)

// HTTPConfig локальный HTTP-интерфейс для слоя отображения.
type HTTPConfig struct {
	Host         string        `env:"NOTESYNC_HTTP_HOST" env-default:"127.0.0.1"`
	Port         int           `env:"NOTESYNC_HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"NOTESYNC_HTTP_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout time.Duration `env:"NOTESYNC_HTTP_WRITE_TIMEOUT" env-default:"10s"`
}

// GetAddress возвращает адрес HTTP сервера.
func (c *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
