package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUpdatesParsesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/getUpdates", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("offset"))
		assert.Equal(t, "25", r.URL.Query().Get("timeout"))
		fmt.Fprint(w, `{"ok":true,"result":[
			{"update_id":8,"message":{"message_id":1,"from":{"id":7,"first_name":"Alice"},"chat":{"id":42,"type":"private"},"text":"/start"}},
			{"update_id":9,"callback_query":{"id":"cb1","from":{"id":7},"message":{"message_id":2,"chat":{"id":42}},"data":"up"}}
		]}`)
	}))
	defer srv.Close()

	c := NewClient("TOKEN")
	c.APIBase = srv.URL

	updates, err := c.GetUpdates(context.Background(), 7, 25)
	require.NoError(t, err)
	require.Len(t, updates, 2)

	require.NotNil(t, updates[0].Message)
	assert.Equal(t, "/start", updates[0].Message.Text)
	assert.Equal(t, int64(42), updates[0].Message.Chat.ID)
	assert.Equal(t, "Alice", updates[0].Message.From.FirstName)

	require.NotNil(t, updates[1].CallbackQuery)
	assert.Equal(t, "up", updates[1].CallbackQuery.Data)
	assert.Equal(t, 2, updates[1].CallbackQuery.Message.MessageID)
}

func TestGetUpdatesReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ok":false,"result":[]}`)
	}))
	defer srv.Close()

	c := NewClient("TOKEN")
	c.APIBase = srv.URL

	_, err := c.GetUpdates(context.Background(), 0, 25)
	assert.Error(t, err)
}

func TestSendMessageIncludesKeyboard(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := NewClient("TOKEN")
	c.APIBase = srv.URL

	err := c.SendMessage(context.Background(), 42, "board", moveKeyboard())
	require.NoError(t, err)

	assert.EqualValues(t, 42, payload["chat_id"])
	assert.Equal(t, "board", payload["text"])

	markup, ok := payload["reply_markup"].(map[string]any)
	require.True(t, ok, "reply_markup missing: %v", payload)
	rows, ok := markup["inline_keyboard"].([]any)
	require.True(t, ok)
	assert.Len(t, rows, 3)
}

func TestSendMessageWithoutKeyboard(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := NewClient("TOKEN")
	c.APIBase = srv.URL

	require.NoError(t, c.SendMessage(context.Background(), 42, "plain", nil))
	_, present := payload["reply_markup"]
	assert.False(t, present, "nil markup must not be serialized")
}

func TestEditMessageText(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/editMessageText", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := NewClient("TOKEN")
	c.APIBase = srv.URL

	require.NoError(t, c.EditMessageText(context.Background(), 42, 9, "new board", nil))
	assert.EqualValues(t, 9, payload["message_id"])
	assert.Equal(t, "new board", payload["text"])
}

func TestAnswerCallbackQuery(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/answerCallbackQuery", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	c := NewClient("TOKEN")
	c.APIBase = srv.URL

	require.NoError(t, c.AnswerCallbackQuery(context.Background(), "cb1"))
	assert.Equal(t, "cb1", payload["callback_query_id"])
}

func TestCallSurfacesAPIDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"ok":false,"description":"Bad Request: message is not modified"}`)
	}))
	defer srv.Close()

	c := NewClient("TOKEN")
	c.APIBase = srv.URL

	err := c.SendMessage(context.Background(), 42, "x", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message is not modified")
}
