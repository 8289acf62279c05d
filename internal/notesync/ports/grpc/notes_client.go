package grpc

import (
	"context"

	notesv1 "notesync/pkg/api/notes/v1"
)

// TokenSource отдает текущий токен доступа. Пустая строка означает отсутствие сессии.
type TokenSource interface {
	AccessToken() string
}

// NotesServiceClient клиент сервиса заметок. Каждый вызов аутентифицируется
// токеном из TokenSource.
type NotesServiceClient interface {
	ListNotes(ctx context.Context, ownerID string) ([]*notesv1.Note, error)

	CreateNote(ctx context.Context, ownerID, text string) (*notesv1.Note, error)

	UpdateNote(ctx context.Context, noteID, text string) (*notesv1.Note, error)

	DeleteNote(ctx context.Context, noteID string) error

	Close() error
}
