// Package postgres содержит хранилища хранилища заметок поверх Postgres.
package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"notesync/internal/notestore/ports/repositories"
)

// Pool часть pgxpool.Pool, нужная хранилищам.
type Pool interface {
	QueryRow(ctx context.Context, query string, args ...any) pgx.Row
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
}

// RepositoryFactory создает хранилища поверх одного пула.
type RepositoryFactory struct {
	users  repositories.UserRepository
	tokens repositories.TokenRepository
	notes  repositories.NoteRepository
}

// NewRepositoryFactory создает фабрику.
func NewRepositoryFactory(pool Pool) *RepositoryFactory {
	return &RepositoryFactory{
		users:  NewUserRepository(pool),
		tokens: NewTokenRepository(pool),
		notes:  NewNoteRepository(pool),
	}
}

func (f *RepositoryFactory) UserRepository() repositories.UserRepository   { return f.users }
func (f *RepositoryFactory) TokenRepository() repositories.TokenRepository { return f.tokens }
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository   { return f.notes }
