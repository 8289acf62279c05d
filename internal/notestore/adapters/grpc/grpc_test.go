package grpc_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	grpcAdapter "notesync/internal/notestore/adapters/grpc"
	"notesync/internal/notestore/storetest"
	authv1 "notesync/pkg/api/auth/v1"
	notesv1 "notesync/pkg/api/notes/v1"
)

func withToken(ctx context.Context, token string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+token)
}

func TestHandlers_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := storetest.Start(t, storetest.Options{})
	auth := authv1.NewAuthServiceClient(store.Conn)
	notes := notesv1.NewNoteServiceClient(store.Conn)

	reg, err := auth.Register(ctx, &authv1.RegisterRequest{Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)
	require.NotEmpty(t, reg.UserID)

	_, err = auth.Register(ctx, &authv1.RegisterRequest{Email: "ann@example.com", Password: "password1"})
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	_, err = auth.Login(ctx, &authv1.LoginRequest{Email: "ann@example.com", Password: "nope-nope"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	tokens, err := auth.Login(ctx, &authv1.LoginRequest{Email: "ann@example.com", Password: "password1"})
	require.NoError(t, err)
	authed := withToken(ctx, tokens.AccessToken)

	profile, err := auth.GetUserProfile(authed, &authv1.Empty{})
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, profile.UserID)
	assert.Equal(t, "ann@example.com", profile.Email)

	_, err = notes.ListNotes(ctx, &notesv1.ListNotesRequest{OwnerID: reg.UserID})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	created, err := notes.CreateNote(authed, &notesv1.CreateNoteRequest{OwnerID: reg.UserID, Text: "buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", created.Note.Text)
	assert.Equal(t, reg.UserID, created.Note.OwnerID)

	_, err = notes.CreateNote(authed, &notesv1.CreateNoteRequest{OwnerID: reg.UserID, Text: "  "})
	st := status.Convert(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "Note text cannot be empty", st.Message())

	updated, err := notes.UpdateNote(authed, &notesv1.UpdateNoteRequest{NoteID: created.Note.NoteID, Text: "buy bread"})
	require.NoError(t, err)
	assert.Equal(t, "buy bread", updated.Note.Text)

	list, err := notes.ListNotes(authed, &notesv1.ListNotesRequest{OwnerID: reg.UserID})
	require.NoError(t, err)
	require.Len(t, list.Notes, 1)
	assert.Equal(t, created.Note.NoteID, list.Notes[0].NoteID)

	_, err = notes.ListNotes(authed, &notesv1.ListNotesRequest{OwnerID: "someone-else"})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = notes.DeleteNote(authed, &notesv1.DeleteNoteRequest{NoteID: created.Note.NoteID})
	require.NoError(t, err)

	_, err = notes.DeleteNote(authed, &notesv1.DeleteNoteRequest{NoteID: created.Note.NoteID})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = auth.Logout(ctx, &authv1.LogoutRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)

	_, err = auth.RefreshTokens(ctx, &authv1.RefreshTokensRequest{RefreshToken: tokens.RefreshToken})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name        string
		ctx         context.Context
		expected    string
		expectedErr error
	}{
		{
			name:        "no metadata",
			ctx:         context.Background(),
			expectedErr: grpcAdapter.ErrMetadataNotFound,
		},
		{
			name:        "no header",
			ctx:         metadata.NewIncomingContext(context.Background(), metadata.Pairs("x", "y")),
			expectedErr: grpcAdapter.ErrAuthHeaderNotFound,
		},
		{
			name:     "bearer prefix",
			ctx:      metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer abc")),
			expected: "abc",
		},
		{
			name:     "raw token",
			ctx:      metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "abc")),
			expected: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := grpcAdapter.ExtractToken(tt.ctx)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}
