// Package cache определяет интерфейс кэша профилей.
package cache

import (
	"context"
	"time"
)

// Cache строковое хранилище ключ-значение с временем жизни.
// Get возвращает пустую строку без ошибки, если ключа нет.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)

	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error

	Close() error
}
