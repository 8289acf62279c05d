package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesync/internal/notesync/app/gate"
	"notesync/internal/notesync/ports/services"
	"notesync/pkg/logger"
)

const (
	MsgSessionResolving = "Session is loading, try again shortly"

	LogGateBlocked = "note operation blocked by access gate"
)

// NewGateMiddleware пропускает запрос только при разрешенной сессии.
// Resolving дает 503, Anonymous дает 401 с адресом страницы входа.
func NewGateMiddleware(accessGate services.AccessGate) fiber.Handler {
	return func(c fiber.Ctx) error {
		err := accessGate.Allow()
		if err == nil {
			return c.Next()
		}

		ctx := RequestContext(c)
		logger.Log(ctx).Debug(ctx, LogGateBlocked, zap.Error(err))

		if errors.Is(err, gate.ErrAuthenticationRequired) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    gate.MsgAuthenticationRequired,
				"redirect": gate.RedirectPath,
			})
		}

		c.Set(fiber.HeaderRetryAfter, "1")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": MsgSessionResolving,
		})
	}
}
