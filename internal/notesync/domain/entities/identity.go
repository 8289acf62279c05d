package entities

// Identity аутентифицированный пользователь.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionKind стадия разрешения сессии.
type SessionKind int

const (
	SessionUnresolved SessionKind = iota
	SessionResolving
	SessionAuthenticated
	SessionAnonymous
)

func (k SessionKind) String() string {
	switch k {
	case SessionUnresolved:
		return "unresolved"
	case SessionResolving:
		return "resolving"
	case SessionAuthenticated:
		return "authenticated"
	case SessionAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// MarshalText кодирует стадию строкой.
func (k SessionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// SessionState состояние Session Store. Identity заполнена только в SessionAuthenticated.
type SessionState struct {
	Kind     SessionKind `json:"state"`
	Identity *Identity   `json:"identity,omitempty"`
}

// Resolving возвращает состояние разрешения сессии.
func Resolving() SessionState {
	return SessionState{Kind: SessionResolving}
}

// Authenticated возвращает состояние с пользователем.
func Authenticated(id Identity) SessionState {
	return SessionState{Kind: SessionAuthenticated, Identity: &id}
}

// Anonymous возвращает состояние без пользователя.
func Anonymous() SessionState {
	return SessionState{Kind: SessionAnonymous}
}

// OwnerID возвращает ID пользователя или пустую строку.
func (s SessionState) OwnerID() string {
	if s.Identity == nil {
		return ""
	}
	return s.Identity.ID
}
