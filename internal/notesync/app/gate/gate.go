// Package gate реализует Access Gate: пропускает операции над заметками только
// при разрешенной сессии и один раз сигнализирует о переходе на страницу входа.
package gate

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"notesync/internal/notesync/domain/entities"
	"notesync/internal/notesync/ports/services"
	"notesync/pkg/logger"
)

const (
	// RedirectPath адрес страницы входа для слоя отображения.
	RedirectPath = "/auth"

	MsgAuthenticationRequired = "Please sign in to continue"

	LogRedirectEmitted = "redirect to authentication emitted"
)

var (
	// ErrSessionResolving сессия еще разрешается, операции заблокированы.
	ErrSessionResolving = errors.New("session is being resolved")
	// ErrAuthenticationRequired пользователь не вошел в систему.
	ErrAuthenticationRequired = errors.New("authentication required")
)

// Decision решение шлюза для текущего состояния сессии.
type Decision int

const (
	DecisionLoading Decision = iota
	DecisionPermit
	DecisionRedirect
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionPermit:
		return "permit"
	case DecisionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Gate Access Gate.
type Gate struct {
	session  services.SessionSource
	notifier services.Notifier

	mu          sync.Mutex
	last        entities.SessionKind
	unsubscribe func()
}

// New создает шлюз. До Start шлюз не наблюдает сессию, но Decide и Allow работают.
func New(session services.SessionSource, notifier services.Notifier) *Gate {
	return &Gate{
		session:  session,
		notifier: notifier,
		last:     entities.SessionUnresolved,
	}
}

// Start подписывается на Session Store и сразу оценивает текущее состояние.
func (g *Gate) Start(ctx context.Context) {
	unsubscribe := g.session.Subscribe(func(state entities.SessionState) {
		g.observe(ctx, state)
	})

	g.mu.Lock()
	g.unsubscribe = unsubscribe
	g.mu.Unlock()

	g.observe(ctx, g.session.State())
}

// Stop отписывается от Session Store.
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}

// Decide возвращает решение для текущего состояния сессии.
func (g *Gate) Decide() Decision {
	switch g.session.State().Kind {
	case entities.SessionAuthenticated:
		return DecisionPermit
	case entities.SessionAnonymous:
		return DecisionRedirect
	default:
		return DecisionLoading
	}
}

// Allow возвращает nil, если операции над заметками разрешены.
func (g *Gate) Allow() error {
	switch g.Decide() {
	case DecisionPermit:
		return nil
	case DecisionRedirect:
		return ErrAuthenticationRequired
	default:
		return ErrSessionResolving
	}
}

// observe отправляет Redirect один раз на каждый переход в Anonymous.
func (g *Gate) observe(ctx context.Context, state entities.SessionState) {
	g.mu.Lock()
	entered := state.Kind == entities.SessionAnonymous && g.last != entities.SessionAnonymous
	g.last = state.Kind
	g.mu.Unlock()

	if !entered {
		return
	}

	logger.Log(ctx).Info(ctx, LogRedirectEmitted, zap.String("path", RedirectPath))
	g.notifier.Notify(ctx, entities.Notification{
		Kind:    entities.NotificationRedirect,
		Message: MsgAuthenticationRequired,
	})
}
