package surface

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notesync/internal/notesync/adapters/http/middleware"
	"notesync/internal/notesync/ports/services"
	"notesync/pkg/logger"
)

const (
	LogHandlerRefresh = "handling refresh request"
	LogHandlerAdd     = "handling add note request"
	LogHandlerEdit    = "handling edit note request"
	LogHandlerRemove  = "handling remove note request"
)

// NotesHandler обработчики Note Synchronizer. Маршруты закрыты Access Gate.
type NotesHandler struct {
	session services.SessionSource
	notes   services.NoteSynchronizer
}

// NewNotesHandler создает обработчик.
func NewNotesHandler(session services.SessionSource, notes services.NoteSynchronizer) *NotesHandler {
	return &NotesHandler{session: session, notes: notes}
}

// Snapshot возвращает коллекцию и статус.
func (h *NotesHandler) Snapshot(c fiber.Ctx) error {
	return respond(c, fiber.StatusOK, h.notes.Snapshot())
}

// Refresh перезагружает коллекцию текущего пользователя.
func (h *NotesHandler) Refresh(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogHandlerRefresh)

	ownerID := h.session.State().OwnerID()
	if ownerID == "" {
		return respondError(c, fiber.StatusUnauthorized, ErrMsgNoIdentity)
	}

	err := h.notes.Refresh(ctx, ownerID)
	return respondOperation(c, err, fiber.StatusOK, h.notes.Snapshot())
}

// Add создает заметку.
func (h *NotesHandler) Add(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx).With(zap.String("handler", "NotesHandler.Add"))
	log.Debug(ctx, LogHandlerAdd)

	var req NoteTextRequest
	if err := c.Bind().Body(&req); err != nil {
		log.Debug(ctx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondError(c, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	ownerID := h.session.State().OwnerID()
	if ownerID == "" {
		return respondError(c, fiber.StatusUnauthorized, ErrMsgNoIdentity)
	}

	err := h.notes.Add(ctx, ownerID, req.Text)
	return respondOperation(c, err, fiber.StatusCreated, h.notes.Snapshot())
}

// Edit меняет текст заметки.
func (h *NotesHandler) Edit(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	log := logger.Log(ctx).With(zap.String("handler", "NotesHandler.Edit"))
	log.Debug(ctx, LogHandlerEdit)

	noteID := c.Params("note_id")
	if noteID == "" {
		return respondError(c, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	var req NoteTextRequest
	if err := c.Bind().Body(&req); err != nil {
		log.Debug(ctx, ErrMsgInvalidRequestBody, zap.Error(err))
		return respondError(c, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	err := h.notes.Edit(ctx, noteID, req.Text)
	return respondOperation(c, err, fiber.StatusOK, h.notes.Snapshot())
}

// Remove удаляет заметку.
func (h *NotesHandler) Remove(c fiber.Ctx) error {
	ctx := middleware.RequestContext(c)
	logger.Log(ctx).Debug(ctx, LogHandlerRemove)

	noteID := c.Params("note_id")
	if noteID == "" {
		return respondError(c, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	err := h.notes.Remove(ctx, noteID)
	return respondOperation(c, err, fiber.StatusOK, h.notes.Snapshot())
}
