package surface

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesync/internal/notesync/adapters/http/middleware"
	"notesync/internal/notesync/domain/entities"
	"notesync/internal/notesync/ports/services"
	"notesync/pkg/logger"
)

const (
	LogHandlerLogin    = "handling login request"
	LogHandlerRegister = "handling register request"
	LogHandlerLogout   = "handling logout request"
)

// SessionHandler обработчики Session Store.
type SessionHandler struct {
	session services.SessionService
}

// NewSessionHandler создает обработчик.
func NewSessionHandler(session services.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

// State возвращает состояние сессии.
func (h *SessionHandler) State(c fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.session.State())
}

// Login входит в систему.
func (h *SessionHandler) Login(c fiber.Ctx) error {
	return h.authenticate(c, LogHandlerLogin, fiber.StatusUnauthorized, h.session.Login)
}

// Register регистрирует пользователя и входит в систему.
func (h *SessionHandler) Register(c fiber.Ctx) error {
	return h.authenticate(c, LogHandlerRegister, fiber.StatusBadRequest, h.session.Register)
}

// Logout выходит из системы. Всегда успешен.
func (h *SessionHandler) Logout(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogHandlerLogout)

	h.session.Logout(ctx)
	return respond(c, fiber.StatusOK, h.session.State())
}

func (h *SessionHandler) authenticate(
	c fiber.Ctx,
	logMsg string,
	failureStatus int,
	action func(ctx context.Context, email, password string) entities.Result[entities.Void],
) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx).With(zap.String("handler", "SessionHandler"))
	log.Debug(ctx, logMsg)

	var req CredentialsRequest
	if err := c.Bind().Body(&req); err != nil {
		log.Debug(ctx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondError(c, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	result := action(ctx, req.Email, req.Password)
	if !result.IsOk() {
		return respondError(c, failureStatus, result.Message())
	}
	return respond(c, fiber.StatusOK, h.session.State())
}
