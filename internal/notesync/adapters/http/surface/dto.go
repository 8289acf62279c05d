// Package surface содержит HTTP-обработчики, через которые слой отображения
// читает состояние ядра и передает намерения пользователя.
package surface

// CredentialsRequest тело запросов входа и регистрации.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// NoteTextRequest тело запросов создания и изменения заметки.
type NoteTextRequest struct {
	Text string `json:"text"`
}
