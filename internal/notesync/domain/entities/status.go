package entities

import (
	"errors"
	"time"
)

var (
	// ErrValidation текст не прошел локальную проверку, удаленный вызов не выполнялся.
	ErrValidation = errors.New("validation error")
	// ErrRemote удаленный вызов завершился ошибкой.
	ErrRemote = errors.New("remote error")
)

// OperationError ошибка операции с сообщением для пользователя. Unwrap возвращает
// ErrValidation или ErrRemote.
type OperationError struct {
	Kind    error
	Message string
}

func (e *OperationError) Error() string {
	return e.Kind.Error() + ": " + e.Message
}

func (e *OperationError) Unwrap() error {
	return e.Kind
}

// ValidationError ошибка локальной проверки.
func ValidationError(message string) error {
	return &OperationError{Kind: ErrValidation, Message: message}
}

// RemoteError ошибка удаленного вызова.
func RemoteError(message string) error {
	return &OperationError{Kind: ErrRemote, Message: message}
}

// SyncKind стадия синхронизации коллекции.
type SyncKind int

const (
	SyncIdle SyncKind = iota
	SyncLoading
	SyncError
)

func (k SyncKind) String() string {
	switch k {
	case SyncIdle:
		return "idle"
	case SyncLoading:
		return "loading"
	case SyncError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText кодирует стадию строкой.
func (k SyncKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SyncStatus статус синхронизатора. Message заполнен только для SyncError.
type SyncStatus struct {
	Kind    SyncKind `json:"kind"`
	Message string   `json:"message,omitempty"`
}

// Snapshot представление коллекции для слоя отображения.
type Snapshot struct {
	Notes  []Note     `json:"notes"`
	Status SyncStatus `json:"status"`
}

// NotificationKind тип уведомления.
type NotificationKind int

const (
	NotificationValidation NotificationKind = iota
	NotificationRemote
	NotificationRedirect
)

func (k NotificationKind) String() string {
	switch k {
	case NotificationValidation:
		return "validation"
	case NotificationRemote:
		return "remote"
	case NotificationRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// MarshalText кодирует тип строкой.
func (k NotificationKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Notification сообщение для пользователя.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
	At      time.Time        `json:"at"`
}
