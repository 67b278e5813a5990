package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrsumitborade/safe-earth-response/internal/chat"
)

type sessionBody struct {
	ID       string         `json:"id"`
	Messages []chat.Message `json:"messages"`
}

type sendBody struct {
	Reply    chat.Message   `json:"reply"`
	Messages []chat.Message `json:"messages"`
}

type upstreamErrorBody struct {
	Error           string         `json:"error"`
	CredentialReset bool           `json:"credential_reset"`
	Messages        []chat.Message `json:"messages"`
}

func assertNoSystemMessages(t *testing.T, msgs []chat.Message) {
	t.Helper()
	for _, m := range msgs {
		assert.NotEqual(t, chat.RoleSystem, m.Role)
	}
}

func TestChat_SessionLifecycle(t *testing.T) {
	s := setupTestServer(t)

	w := s.do(t, http.MethodPost, "/api/chat/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode[sessionBody](t, w)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, []chat.Message{{Role: chat.RoleAssistant, Content: chat.Greeting}}, created.Messages)

	w = s.do(t, http.MethodGet, "/api/chat/sessions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assertNoSystemMessages(t, decode[sessionBody](t, w).Messages)

	w = s.do(t, http.MethodGet, "/api/chat/sessions/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChat_SendRequiresCredential(t *testing.T) {
	s := setupTestServer(t)
	created := decode[sessionBody](t, s.do(t, http.MethodPost, "/api/chat/sessions", nil))
	path := "/api/chat/sessions/" + created.ID + "/messages"

	w := s.do(t, http.MethodPost, path, map[string]string{"content": "Where is the nearest shelter?"})
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)

	w = s.do(t, http.MethodGet, "/api/chat/credential", nil)
	assert.Equal(t, map[string]bool{"configured": false}, decode[map[string]bool](t, w))

	w = s.do(t, http.MethodPut, "/api/chat/credential", map[string]string{"api_key": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/chat/credential", map[string]string{"api_key": "sk-test"})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, path, map[string]string{"content": "Where is the nearest shelter?"})
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[sendBody](t, w)
	assert.Equal(t, "Head to the nearest shelter.", got.Reply.Content)
	require.Len(t, got.Messages, 3)
	assertNoSystemMessages(t, got.Messages)

	w = s.do(t, http.MethodDelete, "/api/chat/credential", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/chat/credential", nil)
	assert.Equal(t, map[string]bool{"configured": false}, decode[map[string]bool](t, w))
}

func TestChat_EmptyMessage(t *testing.T) {
	s := setupTestServer(t)
	created := decode[sessionBody](t, s.do(t, http.MethodPost, "/api/chat/sessions", nil))

	w := s.do(t, http.MethodPost, "/api/chat/sessions/"+created.ID+"/messages", map[string]string{"content": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChat_UpstreamFailureUsesFallback(t *testing.T) {
	s := setupTestServer(t)
	require.NoError(t, s.creds.Set(t.Context(), "sk-test"))
	s.completer.err = errors.New("dial tcp: connection refused")

	created := decode[sessionBody](t, s.do(t, http.MethodPost, "/api/chat/sessions", nil))
	w := s.do(t, http.MethodPost, "/api/chat/sessions/"+created.ID+"/messages", map[string]string{"content": "help"})
	require.Equal(t, http.StatusBadGateway, w.Code)

	got := decode[upstreamErrorBody](t, w)
	assert.False(t, got.CredentialReset)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, chat.FallbackReply, got.Messages[2].Content)
}

func TestChat_AuthFailureResetsCredential(t *testing.T) {
	s := setupTestServer(t)
	require.NoError(t, s.creds.Set(t.Context(), "sk-revoked"))
	s.completer.err = &chat.APIError{StatusCode: http.StatusUnauthorized, Message: "Incorrect API key provided"}

	created := decode[sessionBody](t, s.do(t, http.MethodPost, "/api/chat/sessions", nil))
	w := s.do(t, http.MethodPost, "/api/chat/sessions/"+created.ID+"/messages", map[string]string{"content": "help"})
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), `"credential_reset":true`)

	w = s.do(t, http.MethodGet, "/api/chat/credential", nil)
	assert.Equal(t, map[string]bool{"configured": false}, decode[map[string]bool](t, w))
}
