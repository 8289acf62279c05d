package surface

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"notesync/internal/notesync/domain/entities"
)

const (
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgNoIdentity         = "no authenticated identity"
)

func respond(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func respondError(c fiber.Ctx, status int, message string) error {
	return respond(c, status, fiber.Map{"error": message})
}

// respondOperation переводит результат операции синхронизатора в ответ со снимком коллекции.
func respondOperation(c fiber.Ctx, err error, okStatus int, snapshot entities.Snapshot) error {
	if err == nil {
		return respond(c, okStatus, snapshot)
	}

	message := err.Error()
	var opErr *entities.OperationError
	if errors.As(err, &opErr) {
		message = opErr.Message
	}

	status := fiber.StatusBadGateway
	if errors.Is(err, entities.ErrValidation) {
		status = fiber.StatusUnprocessableEntity
	}
	return respond(c, status, fiber.Map{
		"error":  message,
		"notes":  snapshot.Notes,
		"status": snapshot.Status,
	})
}
