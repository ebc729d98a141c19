package trello_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/moshloop/py-trello/pkg/trello"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBoard resolves a board named "Work" through the given mux, which
// must already be wired into a test client.
func newTestBoard(t *testing.T, mux *http.ServeMux) *trello.Board {
	t.Helper()

	mux.HandleFunc("GET /boards/board-1", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(t, writer, `{"id": "board-1", "name": "Work", "desc": "work things", "closed": false, "url": "https://trello.com/b/board-1"}`)
	})

	client := newTestClient(t, mux)

	board, err := client.GetBoard(context.Background(), "board-1")
	require.NoError(t, err)

	return board
}

func TestBoard_Fetch(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	board := newTestBoard(t, mux)

	board.Name = "stale"

	err := board.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Work", board.Name)
	assert.Equal(t, "work things", board.Description)
}

func TestBoard_CloseOpen(t *testing.T) {
	t.Parallel()
	t.Run("close mirrors after success", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("PUT /boards/board-1/closed", func(writer http.ResponseWriter, request *http.Request) {
			var body map[string]string

			err := json.NewDecoder(request.Body).Decode(&body)
			require.NoError(t, err)
			assert.Equal(t, "true", body["value"])

			writeJSON(t, writer, `{}`)
		})

		board := newTestBoard(t, mux)

		err := board.Close(context.Background())
		require.NoError(t, err)
		assert.True(t, board.Closed)
	})

	t.Run("open mirrors after success", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("PUT /boards/board-1/closed", func(writer http.ResponseWriter, request *http.Request) {
			var body map[string]string

			err := json.NewDecoder(request.Body).Decode(&body)
			require.NoError(t, err)
			assert.Equal(t, "false", body["value"])

			writeJSON(t, writer, `{}`)
		})

		board := newTestBoard(t, mux)
		board.Closed = true

		err := board.Open(context.Background())
		require.NoError(t, err)
		assert.False(t, board.Closed)
	})

	t.Run("failure leaves the flag untouched", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("PUT /boards/board-1/closed", func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusInternalServerError)
		})

		board := newTestBoard(t, mux)

		err := board.Close(context.Background())
		require.Error(t, err)
		assert.True(t, trello.IsResourceUnavailable(err))
		assert.False(t, board.Closed)
	})
}

func TestBoard_GetList(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /lists/list-1", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(t, writer, `{"id": "list-1", "name": "Doing", "closed": false}`)
	})

	board := newTestBoard(t, mux)

	list, err := board.GetList(context.Background(), "list-1")
	require.NoError(t, err)
	assert.Equal(t, "Doing", list.Name)
	assert.Same(t, board, list.Board)
}

func TestBoard_GetLists(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /boards/board-1/lists", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "none", request.URL.Query().Get("cards"))
		assert.Equal(t, "open", request.URL.Query().Get("filter"))
		writeJSON(t, writer, `[
			{"id": "list-1", "name": "To Do", "closed": false},
			{"id": "list-2", "name": "Doing", "closed": false}
		]`)
	})

	board := newTestBoard(t, mux)

	lists, err := board.OpenLists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, "To Do", lists[0].Name)
	assert.Same(t, board, lists[0].Board)
	assert.Same(t, board, lists[1].Board)
}

func TestBoard_AddList(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /lists", func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]string

		err := json.NewDecoder(request.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "Done", body["name"])
		assert.Equal(t, "board-1", body["idBoard"])

		writeJSON(t, writer, `{"id": "list-new", "name": "Done", "closed": false}`)
	})

	board := newTestBoard(t, mux)

	list, err := board.AddList(context.Background(), "Done")
	require.NoError(t, err)
	assert.Equal(t, "list-new", list.ID)
	assert.Same(t, board, list.Board)
}

func TestBoard_GetCards(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /boards/board-1/cards", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "open", request.URL.Query().Get("filter"))
		assert.Equal(t, "all", request.URL.Query().Get("fields"))
		writeJSON(t, writer, `[
			{"id": "card-1", "name": "First", "due": "2026-09-01T12:00:00.000Z", "idList": "list-1"},
			{"id": "card-2", "name": "Second", "idList": "list-2"}
		]`)
	})

	board := newTestBoard(t, mux)

	cards, err := board.OpenCards(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "First", cards[0].Name)
	assert.Equal(t, "2026-09-01", cards[0].Due)
	assert.Empty(t, cards[1].Due)
}

func TestBoard_GetMembers(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /boards/board-1/members", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "admins", request.URL.Query().Get("filter"))
		writeJSON(t, writer, `[{"id": "member-1", "username": "johndoe", "fullName": "John Doe"}]`)
	})

	board := newTestBoard(t, mux)

	members, err := board.AdminMembers(context.Background())
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "johndoe", members[0].Username)
}

func TestBoard_FetchActions(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /boards/board-1/actions", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "commentCard", request.URL.Query().Get("filter"))
		writeJSON(t, writer, `[{"id": "action-1", "type": "commentCard", "date": "2026-08-20T10:00:00.000Z", "data": {"text": "hello"}}]`)
	})

	board := newTestBoard(t, mux)

	actions, err := board.FetchActions(context.Background(), "commentCard")
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "hello", actions[0].Data.Text)
	assert.Equal(t, actions, board.Actions)
}
