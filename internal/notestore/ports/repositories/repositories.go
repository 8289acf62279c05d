// Package repositories определяет интерфейсы хранилищ.
package repositories

import (
	"context"

	"notesync/internal/notestore/domain/entities"
)

// UserRepository хранилище пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}

// TokenRepository хранилище refresh-токенов.
type TokenRepository interface {
	Store(ctx context.Context, token *entities.RefreshToken) error
	Find(ctx context.Context, token string) (*entities.RefreshToken, error)
	Revoke(ctx context.Context, token string) error
}

// NoteRepository хранилище заметок.
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) (*entities.Note, error)
	GetByID(ctx context.Context, id string) (*entities.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, id string) error
}
