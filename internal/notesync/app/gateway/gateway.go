// Package gateway реализует Remote Note Gateway: переводит операции над заметками
// в вызовы удаленного хранилища и приводит любой исход к entities.Result.
package gateway

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"notesync/internal/notesync/app/errmsg"
	"notesync/internal/notesync/domain/entities"
	grpcPort "notesync/internal/notesync/ports/grpc"
	"notesync/internal/notesync/resilience"
	notesv1 "notesync/pkg/api/notes/v1"
	"notesync/pkg/logger"
)

const (
	LogMethodList   = "List"
	LogMethodCreate = "Create"
	LogMethodUpdate = "Update"
	LogMethodDelete = "Delete"

	LogRemoteCallFailed = "remote note call failed"
	LogBlankText        = "blank note text rejected before remote call"
)

// ErrEmptyPayload хранилище подтвердило вызов, но не вернуло заметку.
var ErrEmptyPayload = errors.New("remote store returned no note")

// NoteGateway адаптер удаленного хранилища заметок. Состояния не хранит.
type NoteGateway struct {
	client     grpcPort.NotesServiceClient
	resilience *resilience.ServiceResilience
}

// New создает шлюз.
func New(client grpcPort.NotesServiceClient, res *resilience.ServiceResilience) *NoteGateway {
	return &NoteGateway{client: client, resilience: res}
}

// List возвращает заметки владельца в порядке, заданном хранилищем.
func (g *NoteGateway) List(ctx context.Context, ownerID string) entities.Result[[]entities.Note] {
	notes, err := resilience.Execute(ctx, g.resilience, LogMethodList, func() ([]*notesv1.Note, error) {
		return g.client.ListNotes(ctx, ownerID)
	})
	if err != nil {
		return failure[[]entities.Note](ctx, LogMethodList, err)
	}

	out := make([]entities.Note, 0, len(notes))
	for _, n := range notes {
		if n == nil {
			continue
		}
		out = append(out, fromProto(n))
	}
	return entities.Ok(out)
}

// Create создает заметку. Повторов нет: повторная отправка могла бы создать дубликат.
func (g *NoteGateway) Create(ctx context.Context, ownerID, text string) entities.Result[entities.Note] {
	if entities.IsBlank(text) {
		logger.Log(ctx).Debug(ctx, LogBlankText, zap.String("method", LogMethodCreate))
		return entities.Err[entities.Note](entities.MsgEmptyNoteText)
	}

	note, err := resilience.ExecuteOnce(ctx, g.resilience, LogMethodCreate, func() (*notesv1.Note, error) {
		return g.client.CreateNote(ctx, ownerID, text)
	})
	if err != nil {
		return failure[entities.Note](ctx, LogMethodCreate, err)
	}
	if note == nil {
		return failure[entities.Note](ctx, LogMethodCreate, ErrEmptyPayload)
	}
	return entities.Ok(fromProto(note))
}

// Update заменяет текст заметки.
func (g *NoteGateway) Update(ctx context.Context, noteID, text string) entities.Result[entities.Note] {
	if entities.IsBlank(text) {
		logger.Log(ctx).Debug(ctx, LogBlankText, zap.String("method", LogMethodUpdate))
		return entities.Err[entities.Note](entities.MsgEmptyNoteText)
	}

	note, err := resilience.Execute(ctx, g.resilience, LogMethodUpdate, func() (*notesv1.Note, error) {
		return g.client.UpdateNote(ctx, noteID, text)
	})
	if err != nil {
		return failure[entities.Note](ctx, LogMethodUpdate, err)
	}
	if note == nil {
		return failure[entities.Note](ctx, LogMethodUpdate, ErrEmptyPayload)
	}
	return entities.Ok(fromProto(note))
}

// Delete удаляет заметку. Повторов нет: повтор после потерянного ответа вернул бы NotFound.
func (g *NoteGateway) Delete(ctx context.Context, noteID string) entities.Result[entities.Void] {
	err := g.resilience.ExecuteWithBreaker(ctx, LogMethodDelete, func() error {
		return g.client.DeleteNote(ctx, noteID)
	})
	if err != nil {
		return failure[entities.Void](ctx, LogMethodDelete, err)
	}
	return entities.Ok(entities.Void{})
}

func failure[T any](ctx context.Context, method string, err error) entities.Result[T] {
	message := errmsg.Describe(err)
	logger.Log(ctx).Warn(ctx, LogRemoteCallFailed,
		zap.String("method", method),
		zap.String("message", message),
		zap.Error(err))
	return entities.Err[T](message)
}

func fromProto(n *notesv1.Note) entities.Note {
	return entities.Note{
		ID:        n.NoteID,
		OwnerID:   n.OwnerID,
		Text:      n.Text,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}
