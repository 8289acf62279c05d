package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notesync/internal/notestore/storetest"
	"notesync/internal/notesync/adapters/cache"
	"notesync/internal/notesync/adapters/grpc/auth"
	"notesync/internal/notesync/adapters/grpc/notes"
	httpAdapter "notesync/internal/notesync/adapters/http"
	"notesync/internal/notesync/adapters/notify"
	"notesync/internal/notesync/app/gate"
	"notesync/internal/notesync/app/gateway"
	"notesync/internal/notesync/app/session"
	"notesync/internal/notesync/app/synchronizer"
	"notesync/internal/notesync/domain/entities"
	"notesync/internal/notesync/resilience"
)

type harness struct {
	app     *fiber.App
	session *session.Store
	feed    *notify.Feed
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store := storetest.Start(t, storetest.Options{})
	ctx := context.Background()

	retry := resilience.DefaultRetryConfig()
	retry.InitialBackoff = time.Millisecond
	retry.MaxBackoff = time.Millisecond

	sessionStore := session.New(
		auth.NewAuthClientWithConn(store.Conn),
		cache.NewNopCache(),
		resilience.NewServiceResilience("auth", resilience.DefaultCircuitBreakerConfig(), retry),
		session.Options{},
	)
	notesClient := notes.NewNotesClientWithConn(store.Conn, sessionStore, time.Second)
	noteGateway := gateway.New(notesClient,
		resilience.NewServiceResilience("notes", resilience.DefaultCircuitBreakerConfig(), retry))

	feed := notify.NewFeed(32)
	sync := synchronizer.New(noteGateway, feed)
	sync.Start(ctx, sessionStore)
	t.Cleanup(sync.Stop)

	accessGate := gate.New(sessionStore, feed)
	accessGate.Start(ctx)
	t.Cleanup(accessGate.Stop)

	app := fiber.New()
	httpAdapter.SetupRouter(app, httpAdapter.Dependencies{
		Session:       sessionStore,
		Notes:         sync,
		Notifications: feed,
		Gate:          accessGate,
	})

	return &harness{app: app, session: sessionStore, feed: feed}
}

func (h *harness) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	decoded := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), string(raw))
	}
	return resp.StatusCode, decoded
}

func noteList(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()
	raw, ok := body["notes"].([]any)
	require.True(t, ok, "notes missing in %v", body)

	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		out = append(out, item.(map[string]any))
	}
	return out
}

func TestRouter_GateStates(t *testing.T) {
	h := newHarness(t)

	status, body := h.do(t, http.MethodGet, "/api/v1/notes", "")
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.NotEmpty(t, body["error"])

	h.session.ResolveSession(context.Background())

	status, body = h.do(t, http.MethodGet, "/api/v1/notes", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, gate.RedirectPath, body["redirect"])

	status, body = h.do(t, http.MethodGet, "/api/v1/session", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body["state"])

	status, _ = h.do(t, http.MethodGet, "/api/v1/unknown", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_NoteLifecycle(t *testing.T) {
	h := newHarness(t)
	h.session.ResolveSession(context.Background())

	status, body := h.do(t, http.MethodPost, "/api/v1/session/register",
		`{"email":"ann@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "authenticated", body["state"])

	assert.Eventually(t, func() bool {
		_, snapshot := h.do(t, http.MethodGet, "/api/v1/notes", "")
		syncStatus, ok := snapshot["status"].(map[string]any)
		return ok && syncStatus["kind"] == "idle"
	}, 2*time.Second, 10*time.Millisecond)

	status, body = h.do(t, http.MethodPost, "/api/v1/notes/refresh", "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Empty(t, noteList(t, body))

	status, body = h.do(t, http.MethodPost, "/api/v1/notes", `{"text":"buy milk"}`)
	require.Equal(t, http.StatusCreated, status, body)
	created := noteList(t, body)
	require.Len(t, created, 1)
	noteID := created[0]["id"].(string)
	assert.Equal(t, "buy milk", created[0]["text"])

	status, body = h.do(t, http.MethodPost, "/api/v1/notes", `{"text":"   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Len(t, noteList(t, body), 1)

	status, body = h.do(t, http.MethodPatch, "/api/v1/notes/"+noteID, `{"text":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, entities.MsgEmptyNoteText, body["error"])

	status, body = h.do(t, http.MethodPatch, "/api/v1/notes/"+noteID, `{"text":"buy bread"}`)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "buy bread", noteList(t, body)[0]["text"])

	status, body = h.do(t, http.MethodDelete, "/api/v1/notes/missing", "")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "Note not found", body["error"])
	assert.Len(t, noteList(t, body), 1)

	status, body = h.do(t, http.MethodDelete, "/api/v1/notes/"+noteID, "")
	require.Equal(t, http.StatusOK, status, body)
	assert.Empty(t, noteList(t, body))

	status, body = h.do(t, http.MethodGet, "/api/v1/notifications", "")
	require.Equal(t, http.StatusOK, status)
	kinds := []string{}
	for _, n := range body["notifications"].([]any) {
		kinds = append(kinds, n.(map[string]any)["kind"].(string))
	}
	assert.Contains(t, kinds, "redirect")
	assert.Contains(t, kinds, "validation")
	assert.Contains(t, kinds, "remote")

	status, body = h.do(t, http.MethodPost, "/api/v1/session/logout", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body["state"])

	status, _ = h.do(t, http.MethodGet, "/api/v1/notes", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRouter_SessionFailures(t *testing.T) {
	h := newHarness(t)
	h.session.ResolveSession(context.Background())

	status, body := h.do(t, http.MethodPost, "/api/v1/session/login",
		`{"email":"ann@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password", body["error"])

	status, body = h.do(t, http.MethodPost, "/api/v1/session/register",
		`{"email":"not-an-email","password":"password123"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid email address", body["error"])

	status, _ = h.do(t, http.MethodPost, "/api/v1/session/login", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, status)

	assert.Equal(t, entities.SessionAnonymous, h.session.State().Kind)
}
