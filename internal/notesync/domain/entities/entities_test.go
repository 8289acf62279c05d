package entities_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesync/internal/notesync/domain/entities"
)

func TestResult(t *testing.T) {
	ok := entities.Ok(entities.Note{ID: "7", Text: "buy milk"})
	assert.True(t, ok.IsOk())
	assert.Equal(t, "7", ok.Value().ID)
	assert.Empty(t, ok.Message())

	failed := entities.Err[entities.Note]("Note not found")
	assert.False(t, failed.IsOk())
	assert.Equal(t, "Note not found", failed.Message())
	assert.Empty(t, failed.Value().ID)
}

func TestIsBlank(t *testing.T) {
	assert.True(t, entities.IsBlank(""))
	assert.True(t, entities.IsBlank("   "))
	assert.True(t, entities.IsBlank("\t\n"))
	assert.False(t, entities.IsBlank(" milk "))
}

func TestSessionState(t *testing.T) {
	state := entities.Authenticated(entities.Identity{ID: "u1", Email: "a@b.c"})
	assert.Equal(t, entities.SessionAuthenticated, state.Kind)
	assert.Equal(t, "u1", state.OwnerID())

	assert.Empty(t, entities.Anonymous().OwnerID())
	assert.Nil(t, entities.Resolving().Identity)
}

func TestSnapshotJSON(t *testing.T) {
	snapshot := entities.Snapshot{
		Notes:  []entities.Note{},
		Status: entities.SyncStatus{Kind: entities.SyncError, Message: "Service unavailable"},
	}

	data, err := json.Marshal(snapshot)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"notes":[],"status":{"kind":"error","message":"Service unavailable"}}`,
		string(data))

	data, err = json.Marshal(entities.Anonymous())
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"anonymous"}`, string(data))
}

func TestOperationError(t *testing.T) {
	err := fmt.Errorf("edit: %w", entities.ValidationError(entities.MsgEmptyNoteText))

	assert.ErrorIs(t, err, entities.ErrValidation)
	assert.NotErrorIs(t, err, entities.ErrRemote)

	var opErr *entities.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, entities.MsgEmptyNoteText, opErr.Message)

	assert.ErrorIs(t, entities.RemoteError("Note not found"), entities.ErrRemote)
}
