// Package memory содержит хранилища в памяти процесса.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"notesync/internal/notestore/domain/entities"
	"notesync/internal/notestore/ports/repositories"
)

// UserRepository хранит пользователей в map.
type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entities.User
	byEmail map[string]string
}

// NewUserRepository создает пустое хранилище пользователей.
func NewUserRepository() repositories.UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entities.User),
		byEmail: make(map[string]string),
	}
}

// Create сохраняет пользователя и присваивает ему ID.
func (r *UserRepository) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, ok := r.byEmail[email]; ok {
		return nil, entities.ErrEmailAlreadyExists
	}

	stored := *user
	stored.ID = uuid.NewString()
	r.byID[stored.ID] = &stored
	r.byEmail[email] = stored.ID

	out := stored
	return &out, nil
}

// FindByID ищет пользователя по ID.
func (r *UserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	out := *user
	return &out, nil
}

// FindByEmail ищет пользователя по email без учета регистра.
func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	out := *r.byID[id]
	return &out, nil
}

// TokenRepository хранит refresh-токены.
type TokenRepository struct {
	mu     sync.Mutex
	tokens map[string]*entities.RefreshToken
}

// NewTokenRepository создает пустое хранилище токенов.
func NewTokenRepository() repositories.TokenRepository {
	return &TokenRepository{tokens: make(map[string]*entities.RefreshToken)}
}

// Store сохраняет токен.
func (r *TokenRepository) Store(_ context.Context, token *entities.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *token
	r.tokens[token.Token] = &stored
	return nil
}

// Find возвращает токен.
func (r *TokenRepository) Find(_ context.Context, token string) (*entities.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[token]
	if !ok {
		return nil, entities.ErrTokenNotFound
	}
	out := *stored
	return &out, nil
}

// Revoke помечает токен отозванным.
func (r *TokenRepository) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tokens[token]
	if !ok {
		return entities.ErrTokenNotFound
	}
	stored.Revoked = true
	return nil
}

// NoteRepository хранит заметки.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[string]*entities.Note
	seq   map[string]uint64
	next  uint64
}

// NewNoteRepository создает пустое хранилище заметок.
func NewNoteRepository() repositories.NoteRepository {
	return &NoteRepository{
		notes: make(map[string]*entities.Note),
		seq:   make(map[string]uint64),
	}
}

// Create сохраняет заметку и присваивает ей ID.
func (r *NoteRepository) Create(_ context.Context, note *entities.Note) (*entities.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *note
	stored.ID = uuid.NewString()
	r.next++
	r.notes[stored.ID] = &stored
	r.seq[stored.ID] = r.next

	out := stored
	return &out, nil
}

// GetByID возвращает заметку.
func (r *NoteRepository) GetByID(_ context.Context, id string) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	out := *note
	return &out, nil
}

// ListByOwner возвращает заметки владельца в порядке создания.
func (r *NoteRepository) ListByOwner(_ context.Context, ownerID string) ([]*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]*entities.Note, 0)
	for _, note := range r.notes {
		if note.OwnerID == ownerID {
			out := *note
			notes = append(notes, &out)
		}
	}
	sort.Slice(notes, func(i, j int) bool {
		return r.seq[notes[i].ID] < r.seq[notes[j].ID]
	})
	return notes, nil
}

// Update заменяет сохраненную заметку.
func (r *NoteRepository) Update(_ context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[note.ID]; !ok {
		return entities.ErrNoteNotFound
	}
	stored := *note
	r.notes[note.ID] = &stored
	return nil
}

// Delete удаляет заметку.
func (r *NoteRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return entities.ErrNoteNotFound
	}
	delete(r.notes, id)
	delete(r.seq, id)
	return nil
}

// RepositoryFactory набор хранилищ в памяти.
type RepositoryFactory struct {
	users  repositories.UserRepository
	tokens repositories.TokenRepository
	notes  repositories.NoteRepository
}

// NewRepositoryFactory создает пустые хранилища.
func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{
		users:  NewUserRepository(),
		tokens: NewTokenRepository(),
		notes:  NewNoteRepository(),
	}
}

func (f *RepositoryFactory) UserRepository() repositories.UserRepository   { return f.users }
func (f *RepositoryFactory) TokenRepository() repositories.TokenRepository { return f.tokens }
func (f *RepositoryFactory) NoteRepository() repositories.NoteRepository   { return f.notes }
