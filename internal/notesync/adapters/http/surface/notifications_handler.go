package surface

import (
	"github.com/gofiber/fiber/v3"

	"notesync/internal/notesync/ports/services"
)

// NotificationsHandler отдает накопленные уведомления.
type NotificationsHandler struct {
	feed services.NotificationFeed
}

// NewNotificationsHandler создает обработчик.
func NewNotificationsHandler(feed services.NotificationFeed) *NotificationsHandler {
	return &NotificationsHandler{feed: feed}
}

// Drain возвращает уведомления и очищает ленту.
func (h *NotificationsHandler) Drain(c fiber.Ctx) error {
	return respond(c, fiber.StatusOK, fiber.Map{"notifications": h.feed.Drain()})
}
