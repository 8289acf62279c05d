package cache

import (
	"context"
	"time"
)

// NopCache ничего не хранит. Используется, когда Redis выключен.
type NopCache struct{}

// NewNopCache создает пустой кэш.
func NewNopCache() NopCache {
	return NopCache{}
}

func (NopCache) Get(context.Context, string) (string, error) { return "", nil }

func (NopCache) Set(context.Context, string, string, time.Duration) error { return nil }

func (NopCache) Delete(context.Context, string) error { return nil }

func (NopCache) Close() error { return nil }
