// Package services определяет интерфейсы между компонентами ядра синхронизации.
package services

import (
	"context"

	"notesync/internal/notesync/domain/entities"
)

// SessionSource наблюдаемое состояние сессии.
type SessionSource interface {
	State() entities.SessionState

	// Subscribe регистрирует слушателя и возвращает функцию отписки.
	Subscribe(listener func(entities.SessionState)) (unsubscribe func())
}

// NoteGateway операции над заметками в удаленном хранилище. Ошибки не возвращаются,
// любой сбой приводится к Err с понятным сообщением.
type NoteGateway interface {
	List(ctx context.Context, ownerID string) entities.Result[[]entities.Note]

	Create(ctx context.Context, ownerID, text string) entities.Result[entities.Note]

	Update(ctx context.Context, noteID, text string) entities.Result[entities.Note]

	Delete(ctx context.Context, noteID string) entities.Result[entities.Void]
}

// Notifier канал уведомлений пользователя.
type Notifier interface {
	Notify(ctx context.Context, n entities.Notification)
}

// SessionService операции Session Store, доступные слою отображения.
type SessionService interface {
	SessionSource

	Login(ctx context.Context, email, password string) entities.Result[entities.Void]

	Register(ctx context.Context, email, password string) entities.Result[entities.Void]

	Logout(ctx context.Context)
}

// NoteSynchronizer контракт синхронизатора для слоя отображения.
type NoteSynchronizer interface {
	Snapshot() entities.Snapshot

	Refresh(ctx context.Context, ownerID string) error

	Add(ctx context.Context, ownerID, text string) error

	Edit(ctx context.Context, noteID, text string) error

	Remove(ctx context.Context, noteID string) error
}

// NotificationFeed лента уведомлений, которую вычитывает слой отображения.
type NotificationFeed interface {
	Drain() []entities.Notification
}

// AccessGate проверка доступа к операциям над заметками.
type AccessGate interface {
	Allow() error
}
