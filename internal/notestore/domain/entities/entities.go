// Package entities содержит сущности хранилища заметок.
package entities

import (
	"errors"
	"strings"
	"time"
)

// Ошибки домена.
var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must contain at least 8 characters")
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmptyNoteText      = errors.New("note text cannot be empty")
	ErrNoteNotFound       = errors.New("note not found")
	ErrForeignOwner       = errors.New("note belongs to another user")
	ErrTokenNotFound      = errors.New("refresh token not found")
	ErrTokenRevoked       = errors.New("refresh token revoked")
)

// MinPasswordLength минимальная длина пароля.
const MinPasswordLength = 8

// User учетная запись.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Note заметка пользователя.
type Note struct {
	ID        string
	OwnerID   string
	Text      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RefreshToken выданный refresh-токен.
type RefreshToken struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	Revoked   bool
}

// ValidateText проверяет, что текст не пуст после обрезки пробелов.
// Сам текст сохраняется как есть.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyNoteText
	}
	return nil
}
