// Package middleware содержит промежуточное ПО HTTP-интерфейса.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"notesync/pkg/logger"
)

// LocalRequestContext ключ Locals с контекстом запроса, содержащим request_id.
const LocalRequestContext = "requestContext"

// HeaderRequestID заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// RequestContext возвращает контекст запроса. Без NewRequestIDMiddleware
// возвращается контекст fiber.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(LocalRequestContext).(context.Context); ok {
		return ctx
	}
	var base context.Context = c.Context()
	return base
}

// NewRequestIDMiddleware кладет в контекст request_id из заголовка или новый.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		var base context.Context = c.Context()
		ctx := logger.NewRequestIDContext(base, c.Get(HeaderRequestID))

		requestID, _ := logger.GetRequestID(ctx)
		c.Set(HeaderRequestID, requestID)
		c.Locals(LocalRequestContext, ctx)

		return c.Next()
	}
}
