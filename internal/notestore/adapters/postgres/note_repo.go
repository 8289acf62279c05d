package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"notesync/internal/notestore/domain/entities"
	"notesync/internal/notestore/ports/repositories"
	"notesync/pkg/logger"
)

// NoteRepository хранит заметки в таблице notes. Порядок выдачи задается колонкой seq.
type NoteRepository struct {
	pool Pool
}

// NewNoteRepository создает хранилище заметок.
func NewNoteRepository(pool Pool) repositories.NoteRepository {
	return &NoteRepository{pool: pool}
}

// Create сохраняет заметку и присваивает ей ID.
func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Create"))

	query := `
        INSERT INTO notes (id, owner_id, text, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5)
    `

	created := *note
	created.ID = uuid.NewString()
	if _, err := r.pool.Exec(ctx, query,
		created.ID, created.OwnerID, created.Text, created.CreatedAt, created.UpdatedAt); err != nil {
		log.Error(ctx, "error creating note", zap.Error(err))
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	return &created, nil
}

// GetByID возвращает заметку.
func (r *NoteRepository) GetByID(ctx context.Context, id string) (*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "GetByID"))

	query := `
        SELECT id, owner_id, text, created_at, updated_at
        FROM notes
        WHERE id = $1
    `

	var note entities.Note
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&note.ID,
		&note.OwnerID,
		&note.Text,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "note not found", zap.String("note_id", id))
			return nil, entities.ErrNoteNotFound
		}
		log.Error(ctx, "error querying note", zap.Error(err))
		return nil, fmt.Errorf("error querying note: %w", err)
	}

	return &note, nil
}

// ListByOwner возвращает заметки владельца в порядке создания.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entities.Note, error) {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "ListByOwner"))

	query := `
        SELECT id, owner_id, text, created_at, updated_at
        FROM notes
        WHERE owner_id = $1
        ORDER BY seq
    `

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		log.Error(ctx, "error listing notes", zap.Error(err))
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	defer rows.Close()

	notes := make([]*entities.Note, 0)
	for rows.Next() {
		var note entities.Note
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Text, &note.CreatedAt, &note.UpdatedAt); err != nil {
			log.Error(ctx, "error scanning note", zap.Error(err))
			return nil, fmt.Errorf("error scanning note: %w", err)
		}
		notes = append(notes, &note)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating notes", zap.Error(err))
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}

// Update заменяет текст и время изменения заметки.
func (r *NoteRepository) Update(ctx context.Context, note *entities.Note) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Update"))

	query := `
        UPDATE notes
        SET text = $2, updated_at = $3
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, note.ID, note.Text, note.UpdatedAt)
	if err != nil {
		log.Error(ctx, "error updating note", zap.Error(err))
		return fmt.Errorf("error updating note: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found for update", zap.String("note_id", note.ID))
		return entities.ErrNoteNotFound
	}
	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "note"), zap.String("method", "Delete"))

	query := `
        DELETE FROM notes
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting note", zap.Error(err))
		return fmt.Errorf("error deleting note: %w", err)
	}
	if result.RowsAffected() == 0 {
		log.Debug(ctx, "note not found for deletion", zap.String("note_id", id))
		return entities.ErrNoteNotFound
	}
	return nil
}
