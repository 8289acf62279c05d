// Package notify содержит ленту уведомлений пользователя.
package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"notesync/internal/notesync/domain/entities"
	"notesync/pkg/logger"
)

const (
	LogNotificationQueued  = "notification queued"
	LogNotificationDropped = "feed full, oldest notification dropped"

	defaultCapacity = 64
)

// Feed ограниченная лента уведомлений. При переполнении вытесняются самые старые.
type Feed struct {
	mu       sync.Mutex
	items    []entities.Notification
	capacity int
}

// NewFeed создает ленту заданной емкости.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Feed{capacity: capacity}
}

// Notify добавляет уведомление в ленту.
func (f *Feed) Notify(ctx context.Context, n entities.Notification) {
	if n.At.IsZero() {
		n.At = time.Now().UTC()
	}

	log := logger.Log(ctx)
	log.Info(ctx, LogNotificationQueued,
		zap.Stringer("kind", n.Kind),
		zap.String("message", n.Message))

	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.items) == f.capacity {
		log.Debug(ctx, LogNotificationDropped, zap.String("message", f.items[0].Message))
		copy(f.items, f.items[1:])
		f.items = f.items[:len(f.items)-1]
	}
	f.items = append(f.items, n)
}

// Drain возвращает накопленные уведомления в порядке поступления и очищает ленту.
func (f *Feed) Drain() []entities.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := f.items
	f.items = nil
	if out == nil {
		return []entities.Notification{}
	}
	return out
}

// Len возвращает число уведомлений в ленте.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.items)
}
