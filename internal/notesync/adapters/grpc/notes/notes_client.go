// Package notes содержит клиент сервиса заметок удаленного хранилища.
package notes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"notesync/internal/notesync/config"
	grpcPort "notesync/internal/notesync/ports/grpc"
	notesv1 "notesync/pkg/api/notes/v1"
	"notesync/pkg/logger"
)

const (
	LogMethodListNotes  = "ListNotes"
	LogMethodCreateNote = "CreateNote"
	LogMethodUpdateNote = "UpdateNote"
	LogMethodDeleteNote = "DeleteNote"

	ErrorFailedToConnect    = "failed to connect to notes service"
	ErrorFailedToListNotes  = "failed to list notes"
	ErrorFailedToCreateNote = "failed to create note"
	ErrorFailedToUpdateNote = "failed to update note"
	ErrorFailedToDeleteNote = "failed to delete note"

	msgNoSession = "No active session"
)

// ErrNotesServiceConnectionTimeout сервис заметок не стал доступен за ConnectTimeout.
var ErrNotesServiceConnectionTimeout = errors.New("connection timeout: failed to connect to notes service")

// Client клиент сервиса заметок. Токен доступа берется из TokenSource на каждый вызов.
type Client struct {
	notesClient    notesv1.NoteServiceClient
	tokens         grpcPort.TokenSource
	requestTimeout time.Duration
	conn           *grpc.ClientConn
}

// NewNotesClient подключается к сервису заметок и ждет готовности соединения.
func NewNotesClient(ctx context.Context, cfg *config.GRPCClientConfig, tokens grpcPort.TokenSource) (*Client, error) {
	conn, err := grpc.NewClient(
		cfg.NotesService.GetAddress(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToConnect, err)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.NotesService.ConnectTimeout)
	defer cancel()

	conn.Connect()
	for {
		state := conn.GetState()
		if state == connectivity.Ready {
			break
		}
		if !conn.WaitForStateChange(ctx, state) {
			if closeErr := conn.Close(); closeErr != nil {
				return nil, fmt.Errorf("failed to close connection: %w", closeErr)
			}
			return nil, ErrNotesServiceConnectionTimeout
		}
	}

	client := NewNotesClientWithConn(conn, tokens, cfg.RequestTimeout)
	client.conn = conn
	return client, nil
}

// NewNotesClientWithConn создает клиент поверх готового соединения.
// Нулевой requestTimeout отключает собственный таймаут вызова.
func NewNotesClientWithConn(cc grpc.ClientConnInterface, tokens grpcPort.TokenSource, requestTimeout time.Duration) *Client {
	return &Client{
		notesClient:    notesv1.NewNoteServiceClient(cc),
		tokens:         tokens,
		requestTimeout: requestTimeout,
	}
}

// authorized добавляет токен в метаданные. Без токена вызов не выполняется.
func (c *Client) authorized(ctx context.Context) (context.Context, context.CancelFunc, error) {
	token := c.tokens.AccessToken()
	if token == "" {
		return nil, nil, status.Error(codes.Unauthenticated, msgNoSession)
	}

	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
	if c.requestTimeout > 0 {
		ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
		return ctx, cancel, nil
	}
	return ctx, func() {}, nil
}

// ListNotes возвращает заметки владельца в порядке создания.
func (c *Client) ListNotes(ctx context.Context, ownerID string) ([]*notesv1.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodListNotes), zap.String("owner_id", ownerID))

	callCtx, cancel, err := c.authorized(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToListNotes, err)
	}
	defer cancel()

	resp, err := c.notesClient.ListNotes(callCtx, &notesv1.ListNotesRequest{OwnerID: ownerID})
	if err != nil {
		log.Warn(ctx, ErrorFailedToListNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToListNotes, err)
	}

	return resp.Notes, nil
}

// CreateNote создает заметку.
func (c *Client) CreateNote(ctx context.Context, ownerID, text string) (*notesv1.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodCreateNote), zap.String("owner_id", ownerID))

	callCtx, cancel, err := c.authorized(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToCreateNote, err)
	}
	defer cancel()

	resp, err := c.notesClient.CreateNote(callCtx, &notesv1.CreateNoteRequest{OwnerID: ownerID, Text: text})
	if err != nil {
		log.Warn(ctx, ErrorFailedToCreateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToCreateNote, err)
	}

	return resp.Note, nil
}

// UpdateNote заменяет текст заметки.
func (c *Client) UpdateNote(ctx context.Context, noteID, text string) (*notesv1.Note, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodUpdateNote), zap.String("note_id", noteID))

	callCtx, cancel, err := c.authorized(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrorFailedToUpdateNote, err)
	}
	defer cancel()

	resp, err := c.notesClient.UpdateNote(callCtx, &notesv1.UpdateNoteRequest{NoteID: noteID, Text: text})
	if err != nil {
		log.Warn(ctx, ErrorFailedToUpdateNote, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrorFailedToUpdateNote, err)
	}

	return resp.Note, nil
}

// DeleteNote удаляет заметку.
func (c *Client) DeleteNote(ctx context.Context, noteID string) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodDeleteNote), zap.String("note_id", noteID))

	callCtx, cancel, err := c.authorized(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToDeleteNote, err)
	}
	defer cancel()

	if _, err := c.notesClient.DeleteNote(callCtx, &notesv1.DeleteNoteRequest{NoteID: noteID}); err != nil {
		log.Warn(ctx, ErrorFailedToDeleteNote, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToDeleteNote, err)
	}

	return nil
}

// Close закрывает собственное соединение клиента.
func (c *Client) Close() error {
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			return fmt.Errorf("failed to close grpc connection: %w", err)
		}
	}
	return nil
}
