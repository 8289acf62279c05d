package gateway_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"notesync/internal/notestore/storetest"
	"notesync/internal/notesync/adapters/grpc/notes"
	"notesync/internal/notesync/app/errmsg"
	"notesync/internal/notesync/app/gateway"
	"notesync/internal/notesync/domain/entities"
	"notesync/internal/notesync/resilience"
	notesv1 "notesync/pkg/api/notes/v1"
)

type mockNotesClient struct {
	mock.Mock
}

func (m *mockNotesClient) ListNotes(ctx context.Context, ownerID string) ([]*notesv1.Note, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notesv1.Note), args.Error(1)
}

func (m *mockNotesClient) CreateNote(ctx context.Context, ownerID, text string) (*notesv1.Note, error) {
	args := m.Called(ctx, ownerID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesv1.Note), args.Error(1)
}

func (m *mockNotesClient) UpdateNote(ctx context.Context, noteID, text string) (*notesv1.Note, error) {
	args := m.Called(ctx, noteID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notesv1.Note), args.Error(1)
}

func (m *mockNotesClient) DeleteNote(ctx context.Context, noteID string) error {
	args := m.Called(ctx, noteID)
	return args.Error(0)
}

func (m *mockNotesClient) Close() error {
	return nil
}

func newResilience() *resilience.ServiceResilience {
	retry := resilience.DefaultRetryConfig()
	retry.InitialBackoff = time.Millisecond
	retry.MaxBackoff = time.Millisecond
	return resilience.NewServiceResilience("notes", resilience.DefaultCircuitBreakerConfig(), retry)
}

func TestNoteGateway_List(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		setupMocks func(m *mockNotesClient)
		wantOk     bool
		wantNotes  []entities.Note
		wantMsg    string
	}{
		{
			name: "success",
			setupMocks: func(m *mockNotesClient) {
				m.On("ListNotes", mock.Anything, "u1").Return([]*notesv1.Note{
					{NoteID: "1", OwnerID: "u1", Text: "milk", CreatedAt: created, UpdatedAt: created},
					nil,
					{NoteID: "2", OwnerID: "u1", Text: "bread", CreatedAt: created, UpdatedAt: created},
				}, nil).Once()
			},
			wantOk: true,
			wantNotes: []entities.Note{
				{ID: "1", OwnerID: "u1", Text: "milk", CreatedAt: created, UpdatedAt: created},
				{ID: "2", OwnerID: "u1", Text: "bread", CreatedAt: created, UpdatedAt: created},
			},
		},
		{
			name: "empty list",
			setupMocks: func(m *mockNotesClient) {
				m.On("ListNotes", mock.Anything, "u1").Return([]*notesv1.Note{}, nil).Once()
			},
			wantOk:    true,
			wantNotes: []entities.Note{},
		},
		{
			name: "transient failure is retried",
			setupMocks: func(m *mockNotesClient) {
				m.On("ListNotes", mock.Anything, "u1").Return(nil, status.Error(codes.Unavailable, "down")).Once()
				m.On("ListNotes", mock.Anything, "u1").Return([]*notesv1.Note{{NoteID: "1", Text: "milk"}}, nil).Once()
			},
			wantOk:    true,
			wantNotes: []entities.Note{{ID: "1", Text: "milk"}},
		},
		{
			name: "expired session",
			setupMocks: func(m *mockNotesClient) {
				m.On("ListNotes", mock.Anything, "u1").Return(nil, status.Error(codes.Unauthenticated, "Session expired")).Once()
			},
			wantMsg: "Session expired",
		},
		{
			name: "network failure",
			setupMocks: func(m *mockNotesClient) {
				m.On("ListNotes", mock.Anything, "u1").Return(nil, status.Error(codes.Unavailable, "down")).Times(3)
			},
			wantMsg: errmsg.MsgUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockNotesClient)
			tt.setupMocks(client)
			gw := gateway.New(client, newResilience())

			result := gw.List(context.Background(), "u1")

			assert.Equal(t, tt.wantOk, result.IsOk())
			if tt.wantOk {
				assert.Equal(t, tt.wantNotes, result.Value())
			} else {
				assert.Equal(t, tt.wantMsg, result.Message())
			}
			client.AssertExpectations(t)
		})
	}
}

func TestNoteGateway_BlankTextNeverReachesRemote(t *testing.T) {
	client := new(mockNotesClient)
	gw := gateway.New(client, newResilience())
	ctx := context.Background()

	for _, text := range []string{"", "   ", "\n\t"} {
		created := gw.Create(ctx, "u1", text)
		assert.False(t, created.IsOk())
		assert.Equal(t, entities.MsgEmptyNoteText, created.Message())

		updated := gw.Update(ctx, "1", text)
		assert.False(t, updated.IsOk())
		assert.Equal(t, entities.MsgEmptyNoteText, updated.Message())
	}

	client.AssertNotCalled(t, "CreateNote", mock.Anything, mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "UpdateNote", mock.Anything, mock.Anything, mock.Anything)
}

func TestNoteGateway_CreateIsNotRetried(t *testing.T) {
	client := new(mockNotesClient)
	client.On("CreateNote", mock.Anything, "u1", "milk").Return(nil, status.Error(codes.Unavailable, "down")).Once()
	gw := gateway.New(client, newResilience())

	result := gw.Create(context.Background(), "u1", "milk")

	assert.False(t, result.IsOk())
	assert.Equal(t, errmsg.MsgUnavailable, result.Message())
	client.AssertNumberOfCalls(t, "CreateNote", 1)
}

func TestNoteGateway_Mutations(t *testing.T) {
	client := new(mockNotesClient)
	client.On("CreateNote", mock.Anything, "u1", "buy milk").
		Return(&notesv1.Note{NoteID: "7", OwnerID: "u1", Text: "buy milk"}, nil).Once()
	client.On("UpdateNote", mock.Anything, "7", "buy bread").
		Return(&notesv1.Note{NoteID: "7", OwnerID: "u1", Text: "buy bread"}, nil).Once()
	client.On("DeleteNote", mock.Anything, "7").Return(nil).Once()
	client.On("DeleteNote", mock.Anything, "8").Return(status.Error(codes.NotFound, "Note not found")).Once()
	client.On("UpdateNote", mock.Anything, "9", "x").Return(nil, errors.New("socket closed")).Times(3)

	gw := gateway.New(client, newResilience())
	ctx := context.Background()

	created := gw.Create(ctx, "u1", "buy milk")
	require.True(t, created.IsOk())
	assert.Equal(t, "7", created.Value().ID)

	updated := gw.Update(ctx, "7", "buy bread")
	require.True(t, updated.IsOk())
	assert.Equal(t, "buy bread", updated.Value().Text)

	assert.True(t, gw.Delete(ctx, "7").IsOk())

	missing := gw.Delete(ctx, "8")
	assert.False(t, missing.IsOk())
	assert.Equal(t, "Note not found", missing.Message())

	broken := gw.Update(ctx, "9", "x")
	assert.False(t, broken.IsOk())
	assert.NotEmpty(t, broken.Message())

	client.AssertExpectations(t)
}

func TestNoteGateway_EmptyPayload(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(m *mockNotesClient)
		call       func(gw *gateway.NoteGateway) entities.Result[entities.Note]
	}{
		{
			name: "create without note",
			setupMocks: func(m *mockNotesClient) {
				m.On("CreateNote", mock.Anything, "u1", "milk").Return(nil, nil).Once()
			},
			call: func(gw *gateway.NoteGateway) entities.Result[entities.Note] {
				return gw.Create(context.Background(), "u1", "milk")
			},
		},
		{
			name: "update without note",
			setupMocks: func(m *mockNotesClient) {
				m.On("UpdateNote", mock.Anything, "7", "bread").Return(nil, nil).Once()
			},
			call: func(gw *gateway.NoteGateway) entities.Result[entities.Note] {
				return gw.Update(context.Background(), "7", "bread")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mockNotesClient)
			tt.setupMocks(client)
			gw := gateway.New(client, newResilience())

			var result entities.Result[entities.Note]
			require.NotPanics(t, func() { result = tt.call(gw) })

			assert.False(t, result.IsOk())
			assert.Equal(t, errmsg.MsgUnexpected, result.Message())
			client.AssertExpectations(t)
		})
	}
}

type staticToken string

func (s staticToken) AccessToken() string { return string(s) }

func TestNoteGateway_AgainstStore(t *testing.T) {
	store := storetest.Start(t, storetest.Options{})
	ctx := context.Background()

	user, err := store.Auth.Register(ctx, "ann@example.com", "password123")
	require.NoError(t, err)
	pair, err := store.Auth.Login(ctx, "ann@example.com", "password123")
	require.NoError(t, err)

	client := notes.NewNotesClientWithConn(store.Conn, staticToken(pair.AccessToken), time.Second)
	gw := gateway.New(client, newResilience())

	created := gw.Create(ctx, user.ID, "buy milk")
	require.True(t, created.IsOk(), created.Message())

	list := gw.List(ctx, user.ID)
	require.True(t, list.IsOk())
	require.Len(t, list.Value(), 1)
	assert.Equal(t, created.Value().ID, list.Value()[0].ID)

	missing := gw.Update(ctx, "missing", "text")
	assert.Equal(t, "Note not found", missing.Message())

	foreign := gw.List(ctx, "someone-else")
	assert.False(t, foreign.IsOk())
	assert.Equal(t, "Notes of another user are not accessible", foreign.Message())
}
