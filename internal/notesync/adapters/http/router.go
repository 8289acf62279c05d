// Package http собирает HTTP-интерфейс клиента для слоя отображения.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notesync/internal/notesync/adapters/http/middleware"
	"notesync/internal/notesync/adapters/http/surface"
	"notesync/internal/notesync/ports/services"
)

// Dependencies компоненты ядра, которые обслуживает HTTP-интерфейс.
type Dependencies struct {
	Session       services.SessionService
	Notes         services.NoteSynchronizer
	Notifications services.NotificationFeed
	Gate          services.AccessGate
}

// SetupRouter регистрирует маршруты.
func SetupRouter(app *fiber.App, deps Dependencies) {
	sessionHandler := surface.NewSessionHandler(deps.Session)
	notesHandler := surface.NewNotesHandler(deps.Session, deps.Notes)
	notificationsHandler := surface.NewNotificationsHandler(deps.Notifications)

	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	apiV1 := app.Group("/api/v1")

	sessionRoutes := apiV1.Group("/session")
	sessionRoutes.Get("/", sessionHandler.State)
	sessionRoutes.Post("/login", sessionHandler.Login)
	sessionRoutes.Post("/register", sessionHandler.Register)
	sessionRoutes.Post("/logout", sessionHandler.Logout)

	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Use(middleware.NewGateMiddleware(deps.Gate))
	notesRoutes.Get("/", notesHandler.Snapshot)
	notesRoutes.Post("/refresh", notesHandler.Refresh)
	notesRoutes.Post("/", notesHandler.Add)
	notesRoutes.Patch("/:note_id", notesHandler.Edit)
	notesRoutes.Delete("/:note_id", notesHandler.Remove)

	apiV1.Get("/notifications", notificationsHandler.Drain)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
