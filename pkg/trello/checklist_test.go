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

// newTestChecklist resolves a two-item checklist named "Steps" through the
// given mux. Item "reproduce" starts checked.
func newTestChecklist(t *testing.T, mux *http.ServeMux) *trello.Checklist {
	t.Helper()

	mux.HandleFunc("GET /cards/card-1/checklists", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(t, writer, `[{
			"id": "cl-1", "name": "Steps",
			"checkItems": [
				{"id": "item-1", "name": "reproduce"},
				{"id": "item-2", "name": "fix"}
			]
		}]`)
	})

	card := newTestCard(t, mux)

	checklists, err := card.Checklists(context.Background())
	require.NoError(t, err)
	require.Len(t, checklists, 1)

	return checklists[0]
}

func TestChecklist_AddItem(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /checklists/cl-1/checkItems", func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]interface{}

		err := json.NewDecoder(request.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "verify", body["name"])
		assert.Equal(t, true, body["checked"])

		writeJSON(t, writer, `{"id": "item-3", "name": "verify"}`)
	})

	checklist := newTestChecklist(t, mux)

	err := checklist.AddItem(context.Background(), "verify", true)
	require.NoError(t, err)

	require.Len(t, checklist.Items, 3)
	assert.Equal(t, "verify", checklist.Items[2].Name)
	assert.True(t, checklist.Items[2].Checked)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestChecklist_SetItemState(t *testing.T) {
	t.Parallel()
	t.Run("checks the item through the card sub-resource", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("PUT /cards/card-1/checklist/cl-1/checkItem/item-2", func(writer http.ResponseWriter, request *http.Request) {
			var body map[string]string

			err := json.NewDecoder(request.Body).Decode(&body)
			require.NoError(t, err)
			assert.Equal(t, "complete", body["state"])

			writeJSON(t, writer, `{}`)
		})

		checklist := newTestChecklist(t, mux)

		err := checklist.SetItemState(context.Background(), "fix", true)
		require.NoError(t, err)
		assert.True(t, checklist.Items[1].Checked)
	})

	t.Run("unchecks with incomplete state", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("PUT /cards/card-1/checklist/cl-1/checkItem/item-1", func(writer http.ResponseWriter, request *http.Request) {
			var body map[string]string

			err := json.NewDecoder(request.Body).Decode(&body)
			require.NoError(t, err)
			assert.Equal(t, "incomplete", body["state"])

			writeJSON(t, writer, `{}`)
		})

		checklist := newTestChecklist(t, mux)

		err := checklist.SetItemState(context.Background(), "reproduce", false)
		require.NoError(t, err)
		assert.False(t, checklist.Items[0].Checked)
	})

	t.Run("unknown name is a silent no-op", func(t *testing.T) {
		t.Parallel()

		handler := counting(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))

		mux := http.NewServeMux()
		mux.Handle("PUT /cards/card-1/checklist/", handler)

		checklist := newTestChecklist(t, mux)

		err := checklist.SetItemState(context.Background(), "no such item", true)
		require.NoError(t, err)
		assert.Equal(t, int64(0), handler.calls.Load())
	})

	t.Run("ambiguous name is a silent no-op", func(t *testing.T) {
		t.Parallel()

		handler := counting(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))

		mux := http.NewServeMux()
		mux.Handle("PUT /cards/card-1/checklist/", handler)
		mux.HandleFunc("GET /cards/card-1/checklists", func(writer http.ResponseWriter, _ *http.Request) {
			writeJSON(t, writer, `[{
				"id": "cl-1", "name": "Steps",
				"checkItems": [
					{"id": "item-1", "name": "dup"},
					{"id": "item-2", "name": "dup"}
				]
			}]`)
		})

		card := newTestCard(t, mux)

		checklists, err := card.Checklists(context.Background())
		require.NoError(t, err)

		err = checklists[0].SetItemState(context.Background(), "dup", true)
		require.NoError(t, err)
		assert.Equal(t, int64(0), handler.calls.Load())
		assert.False(t, checklists[0].Items[0].Checked)
		assert.False(t, checklists[0].Items[1].Checked)
	})
}

func TestChecklist_RenameItem(t *testing.T) {
	t.Parallel()
	t.Run("renames a uniquely named item", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("PUT /cards/card-1/checklist/cl-1/checkItem/item-2", func(writer http.ResponseWriter, request *http.Request) {
			var body map[string]string

			err := json.NewDecoder(request.Body).Decode(&body)
			require.NoError(t, err)
			assert.Equal(t, "fix properly", body["name"])

			writeJSON(t, writer, `{}`)
		})

		checklist := newTestChecklist(t, mux)

		err := checklist.RenameItem(context.Background(), "fix", "fix properly")
		require.NoError(t, err)
		assert.Equal(t, "fix properly", checklist.Items[1].Name)
	})

	t.Run("unknown name is a silent no-op", func(t *testing.T) {
		t.Parallel()

		handler := counting(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))

		mux := http.NewServeMux()
		mux.Handle("PUT /cards/card-1/checklist/", handler)

		checklist := newTestChecklist(t, mux)

		err := checklist.RenameItem(context.Background(), "no such item", "anything")
		require.NoError(t, err)
		assert.Equal(t, int64(0), handler.calls.Load())
	})
}

func TestChecklist_Rename(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /checklists/cl-1/name/", func(writer http.ResponseWriter, request *http.Request) {
		var body map[string]string

		err := json.NewDecoder(request.Body).Decode(&body)
		require.NoError(t, err)
		assert.Equal(t, "Release steps", body["value"])

		writeJSON(t, writer, `{}`)
	})

	checklist := newTestChecklist(t, mux)

	err := checklist.Rename(context.Background(), "Release steps")
	require.NoError(t, err)
	assert.Equal(t, "Release steps", checklist.Name)
}

func TestChecklist_Delete(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /checklists/cl-1", func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(t, writer, `{}`)
	})

	checklist := newTestChecklist(t, mux)

	err := checklist.Delete(context.Background())
	require.NoError(t, err)
}

func TestChecklist_FailedItemUpdateKeepsLocalState(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /cards/card-1/checklist/cl-1/checkItem/item-2", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	})

	checklist := newTestChecklist(t, mux)

	err := checklist.SetItemState(context.Background(), "fix", true)
	require.Error(t, err)
	assert.True(t, trello.IsResourceUnavailable(err))
	assert.False(t, checklist.Items[1].Checked)
}
