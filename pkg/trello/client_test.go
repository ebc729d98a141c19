package trello_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/moshloop/py-trello/pkg/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient starts a test server around the handler and returns a fully
// authenticated client pointed at it.
func newTestClient(t *testing.T, handler http.Handler) *trello.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return trello.New(&trello.Config{Key: "test-key", Token: "test-token", BaseURL: server.URL})
}

// countingHandler wraps a handler and counts how many requests reach it.
type countingHandler struct {
	http.Handler
	calls atomic.Int64
}

func counting(handler http.Handler) *countingHandler {
	return &countingHandler{Handler: handler}
}

func (h *countingHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	h.calls.Add(1)
	h.Handler.ServeHTTP(writer, request)
}

func writeJSON(t *testing.T, writer http.ResponseWriter, body string) {
	t.Helper()

	writer.Header().Set("Content-Type", "application/json")

	_, err := writer.Write([]byte(body))
	require.NoError(t, err)
}

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("token makes the client fully authenticated", func(t *testing.T) {
		t.Parallel()

		client := trello.NewWithToken("key", "token")
		assert.False(t, client.PublicOnly())
	})

	t.Run("key alone is public only", func(t *testing.T) {
		t.Parallel()

		client := trello.NewWithKey("key")
		assert.True(t, client.PublicOnly())
	})
}

func TestClient_ListBoards(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/members/me/boards", request.URL.Path)
		assert.Equal(t, "GET", request.Method)
		writeJSON(t, writer, `[
			{"id": "board-1", "name": "Work", "desc": "work things", "closed": false, "url": "https://trello.com/b/board-1"},
			{"id": "board-2", "name": "Home", "desc": "", "closed": true, "url": "https://trello.com/b/board-2"}
		]`)
	}))

	boards, err := client.ListBoards(context.Background())
	require.NoError(t, err)
	require.Len(t, boards, 2)

	assert.Equal(t, "board-1", boards[0].ID)
	assert.Equal(t, "Work", boards[0].Name)
	assert.Equal(t, "work things", boards[0].Description)
	assert.True(t, boards[1].Closed)
	assert.Nil(t, boards[0].Organization)
}

func TestClient_ListOrganizations(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/members/me/organizations", request.URL.Path)
		writeJSON(t, writer, `[{"id": "org-1", "name": "acme", "desc": "Acme Inc"}]`)
	}))

	orgs, err := client.ListOrganizations(context.Background())
	require.NoError(t, err)
	require.Len(t, orgs, 1)
	assert.Equal(t, "acme", orgs[0].Name)
	assert.Equal(t, "Acme Inc", orgs[0].Description)
}

func TestClient_GetOrganization(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/organizations/org-1", request.URL.Path)
		writeJSON(t, writer, `{"id": "org-1", "name": "acme", "url": "https://trello.com/acme"}`)
	}))

	org, err := client.GetOrganization(context.Background(), "org-1")
	require.NoError(t, err)
	assert.Equal(t, "acme", org.Name)
}

func TestClient_AddBoard(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/boards", request.URL.Path)

		var body map[string]string

		err := json.NewDecoder(request.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "New Board", body["name"])

		writeJSON(t, writer, `{"id": "board-new", "name": "New Board"}`)
	}))

	board, err := client.AddBoard(context.Background(), "New Board")
	require.NoError(t, err)
	assert.Equal(t, "board-new", board.ID)
	assert.Equal(t, "New Board", board.Name)
}

func TestClient_GetMember(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/members/johndoe", request.URL.Path)
		assert.Equal(t, "false", request.URL.Query().Get("badges"))
		writeJSON(t, writer, `{"id": "member-1", "username": "johndoe", "fullName": "John Doe", "initials": "JD"}`)
	}))

	member, err := client.GetMember(context.Background(), "johndoe")
	require.NoError(t, err)
	assert.Equal(t, "member-1", member.ID)
	assert.Equal(t, "John Doe", member.FullName)
}

func TestClient_GetCard(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/cards/card-1", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(t, writer, `{
			"id": "card-1", "name": "Fix the bug", "desc": "steps inside",
			"due": "2026-09-01T12:00:00.000Z", "idShort": 42,
			"idList": "list-1", "idBoard": "board-1"
		}`)
	})
	mux.HandleFunc("/lists/list-1", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(t, writer, `{"id": "list-1", "name": "Doing", "closed": false}`)
	})
	mux.HandleFunc("/boards/board-1", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(t, writer, `{"id": "board-1", "name": "Work", "closed": false}`)
	})

	handler := counting(mux)
	client := newTestClient(t, handler)

	card, err := client.GetCard(context.Background(), "card-1")
	require.NoError(t, err)

	// Card, list, and board are resolved in one fixed sequence.
	assert.Equal(t, int64(3), handler.calls.Load())

	assert.Equal(t, "Fix the bug", card.Name)
	assert.Equal(t, 42, card.ShortID)
	assert.Equal(t, "2026-09-01", card.Due)

	require.NotNil(t, card.List)
	assert.Equal(t, "Doing", card.List.Name)
	require.NotNil(t, card.List.Board)
	assert.Equal(t, "Work", card.List.Board.Name)
}

func TestClient_InfoForAllBoards(t *testing.T) {
	t.Parallel()
	t.Run("stashes the raw response", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/members/me/boards/all", request.URL.Path)
			assert.Equal(t, "all", request.URL.Query().Get("actions"))
			writeJSON(t, writer, `[{"id": "board-1", "actions": []}]`)
		}))

		err := client.InfoForAllBoards(context.Background(), "all")
		require.NoError(t, err)
		assert.JSONEq(t, `[{"id": "board-1", "actions": []}]`, string(client.AllInfo))
	})

	t.Run("no-op in public only mode", func(t *testing.T) {
		t.Parallel()

		handler := counting(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)

		client := trello.New(&trello.Config{Key: "test-key", BaseURL: server.URL})

		err := client.InfoForAllBoards(context.Background(), "all")
		require.NoError(t, err)
		assert.Equal(t, int64(0), handler.calls.Load())
		assert.Nil(t, client.AllInfo)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Hooks(t *testing.T) {
	t.Parallel()
	t.Run("list hooks with explicit token", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/tokens/other-token/webhooks", request.URL.Path)
			writeJSON(t, writer, `[{"id": "hook-1", "description": "sync", "idModel": "board-1", "callbackURL": "https://example.com/cb", "active": true}]`)
		}))

		hooks, err := client.ListHooks(context.Background(), "other-token")
		require.NoError(t, err)
		require.Len(t, hooks, 1)
		assert.Equal(t, "hook-1", hooks[0].ID)
		assert.Equal(t, "other-token", hooks[0].Token)
		assert.True(t, hooks[0].Active)
	})

	t.Run("list hooks falls back to the client token", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/tokens/test-token/webhooks", request.URL.Path)
			writeJSON(t, writer, `[]`)
		}))

		hooks, err := client.ListHooks(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, hooks)
	})

	t.Run("token required before any network call", func(t *testing.T) {
		t.Parallel()

		handler := counting(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)

		client := trello.New(&trello.Config{Key: "test-key", BaseURL: server.URL})

		_, err := client.ListHooks(context.Background(), "")
		require.Error(t, err)
		assert.True(t, trello.IsTokenRequired(err))

		_, err = client.CreateHook(context.Background(), "https://example.com/cb", "board-1", "sync", "")
		require.Error(t, err)
		assert.True(t, trello.IsTokenRequired(err))

		assert.Equal(t, int64(0), handler.calls.Load())
	})

	t.Run("create hook", func(t *testing.T) {
		t.Parallel()

		client := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "/tokens/test-token/webhooks", request.URL.Path)

			var body map[string]string

			err := json.NewDecoder(request.Body).Decode(&body)
			require.NoError(t, err)
			assert.Equal(t, "https://example.com/cb", body["callbackURL"])
			assert.Equal(t, "board-1", body["idModel"])
			assert.Equal(t, "board sync", body["description"])

			writeJSON(t, writer, `{"id": "hook-new", "idModel": "board-1", "callbackURL": "https://example.com/cb", "active": true}`)
		}))

		hook, err := client.CreateHook(context.Background(), "https://example.com/cb", "board-1", "board sync", "")
		require.NoError(t, err)
		assert.Equal(t, "hook-new", hook.ID)
		assert.Equal(t, "test-token", hook.Token)
	})

	t.Run("delete hook", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/tokens/test-token/webhooks", func(writer http.ResponseWriter, _ *http.Request) {
			writeJSON(t, writer, `[{"id": "hook-1"}]`)
		})
		mux.HandleFunc("/webhooks/hook-1", func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "DELETE", request.Method)
			writeJSON(t, writer, `{}`)
		})

		client := newTestClient(t, mux)

		hooks, err := client.ListHooks(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, hooks, 1)

		err = hooks[0].Delete(context.Background())
		require.NoError(t, err)
	})
}

func TestClient_ErrorPredicates(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/boards/secret", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/boards/missing", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	})

	client := newTestClient(t, mux)

	_, err := client.GetBoard(context.Background(), "secret")
	require.Error(t, err)
	assert.True(t, trello.IsUnauthorized(err))
	assert.True(t, trello.IsResourceUnavailable(err))

	_, err = client.GetBoard(context.Background(), "missing")
	require.Error(t, err)
	assert.False(t, trello.IsUnauthorized(err))
	assert.True(t, trello.IsResourceUnavailable(err))
	assert.False(t, trello.IsTokenRequired(err))
}
