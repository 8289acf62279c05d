package app

import (
	"context"
	"fmt"
	"time"

	"notesync/internal/notestore/domain/entities"
	"notesync/internal/notestore/ports/repositories"
	"notesync/internal/notestore/ports/services"
)

// NoteUseCase операции над заметками от имени владельца токена.
type NoteUseCase struct {
	notes    repositories.NoteRepository
	tokenSvc services.TokenService
}

// NewNoteUseCase создает NoteUseCase.
func NewNoteUseCase(notes repositories.NoteRepository, tokenSvc services.TokenService) *NoteUseCase {
	return &NoteUseCase{notes: notes, tokenSvc: tokenSvc}
}

// Authenticate возвращает ID владельца токена.
func (uc *NoteUseCase) Authenticate(ctx context.Context, token string) (string, error) {
	return uc.tokenSvc.ValidateAccessToken(ctx, token)
}

// ListNotes возвращает заметки ownerID. Чужой ownerID запрещен.
func (uc *NoteUseCase) ListNotes(ctx context.Context, userID, ownerID string) ([]*entities.Note, error) {
	if ownerID != "" && ownerID != userID {
		return nil, entities.ErrForeignOwner
	}

	notes, err := uc.notes.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// CreateNote создает заметку владельца токена.
func (uc *NoteUseCase) CreateNote(ctx context.Context, userID, ownerID, text string) (*entities.Note, error) {
	if ownerID != "" && ownerID != userID {
		return nil, entities.ErrForeignOwner
	}

	if err := entities.ValidateText(text); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note, err := uc.notes.Create(ctx, &entities.Note{
		OwnerID:   userID,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return note, nil
}

// UpdateNote заменяет текст заметки.
func (uc *NoteUseCase) UpdateNote(ctx context.Context, userID, noteID, text string) (*entities.Note, error) {
	if err := entities.ValidateText(text); err != nil {
		return nil, err
	}

	note, err := uc.owned(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	note.Text = text
	note.UpdatedAt = time.Now().UTC()
	if err := uc.notes.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

// DeleteNote удаляет заметку.
func (uc *NoteUseCase) DeleteNote(ctx context.Context, userID, noteID string) error {
	if _, err := uc.owned(ctx, userID, noteID); err != nil {
		return err
	}
	if err := uc.notes.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (uc *NoteUseCase) owned(ctx context.Context, userID, noteID string) (*entities.Note, error) {
	note, err := uc.notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	// Чужая заметка неотличима от отсутствующей.
	if note.OwnerID != userID {
		return nil, entities.ErrNoteNotFound
	}
	return note, nil
}
