package grpc

import (
	"context"

	"notesync/internal/notestore/app"
	"notesync/internal/notestore/domain/entities"
	notesv1 "notesync/pkg/api/notes/v1"
)

// NoteHandler обслуживает notes.v1.NoteService.
type NoteHandler struct {
	notesv1.UnimplementedNoteServiceServer
	notes *app.NoteUseCase
}

// NewNoteHandler создает обработчик.
func NewNoteHandler(notes *app.NoteUseCase) *NoteHandler {
	return &NoteHandler{notes: notes}
}

func (h *NoteHandler) caller(ctx context.Context) (string, error) {
	token, err := ExtractToken(ctx)
	if err != nil {
		return "", toStatus(err)
	}
	userID, err := h.notes.Authenticate(ctx, token)
	if err != nil {
		return "", toStatus(err)
	}
	return userID, nil
}

// ListNotes возвращает заметки владельца.
func (h *NoteHandler) ListNotes(ctx context.Context, req *notesv1.ListNotesRequest) (*notesv1.ListNotesResponse, error) {
	userID, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := h.notes.ListNotes(ctx, userID, req.OwnerID)
	if err != nil {
		return nil, toStatus(err)
	}

	resp := &notesv1.ListNotesResponse{Notes: make([]*notesv1.Note, 0, len(notes))}
	for _, note := range notes {
		resp.Notes = append(resp.Notes, toProto(note))
	}
	return resp, nil
}

// CreateNote создает заметку.
func (h *NoteHandler) CreateNote(ctx context.Context, req *notesv1.CreateNoteRequest) (*notesv1.NoteResponse, error) {
	userID, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	note, err := h.notes.CreateNote(ctx, userID, req.OwnerID, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	return &notesv1.NoteResponse{Note: toProto(note)}, nil
}

// UpdateNote заменяет текст заметки.
func (h *NoteHandler) UpdateNote(ctx context.Context, req *notesv1.UpdateNoteRequest) (*notesv1.NoteResponse, error) {
	userID, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	note, err := h.notes.UpdateNote(ctx, userID, req.NoteID, req.Text)
	if err != nil {
		return nil, toStatus(err)
	}
	return &notesv1.NoteResponse{Note: toProto(note)}, nil
}

// DeleteNote удаляет заметку.
func (h *NoteHandler) DeleteNote(ctx context.Context, req *notesv1.DeleteNoteRequest) (*notesv1.Empty, error) {
	userID, err := h.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := h.notes.DeleteNote(ctx, userID, req.NoteID); err != nil {
		return nil, toStatus(err)
	}
	return &notesv1.Empty{}, nil
}

func toProto(note *entities.Note) *notesv1.Note {
	return &notesv1.Note{
		NoteID:    note.ID,
		OwnerID:   note.OwnerID,
		Text:      note.Text,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}
