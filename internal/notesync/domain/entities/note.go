// Package entities содержит доменные типы клиента синхронизации заметок.
package entities

import (
	"strings"
	"time"
)

// MsgEmptyNoteText сообщение об ошибке валидации пустого текста заметки.
const MsgEmptyNoteText = "Note text cannot be empty"

// Note заметка. ID назначается удаленным хранилищем и не меняется.
type Note struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsBlank сообщает, что текст пуст после удаления пробелов.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}
