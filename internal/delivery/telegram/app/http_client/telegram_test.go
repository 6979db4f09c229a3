package http_client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"entry-zone-bot/internal/delivery/telegram"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallReturnsResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botABC/getMe", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"ok":true,"result":{"id":7,"is_bot":true}}`))
	}))
	defer srv.Close()

	c := NewTelegramClient(srv.URL+"/", "ABC", time.Second)
	raw, err := c.Call(context.Background(), "getMe", struct{}{})
	require.NoError(t, err)

	var user telegram.User
	require.NoError(t, json.Unmarshal(raw, &user))
	assert.Equal(t, int64(7), user.ID)
	assert.True(t, user.IsBot)
}

func TestCallMapsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests: retry after 5","parameters":{"retry_after":5}}`))
	}))
	defer srv.Close()

	c := NewTelegramClient(srv.URL, "ABC", time.Second)
	_, err := c.Call(context.Background(), "sendMessage", map[string]interface{}{"chat_id": 1})

	var apiErr *telegram.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 429, apiErr.Code)
	assert.Equal(t, 5, apiErr.RetryAfter)
	assert.Equal(t, "sendMessage", apiErr.Method)
	assert.True(t, apiErr.IsTooManyRequests())
}

func TestCallRejectsNonJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewTelegramClient(srv.URL, "ABC", time.Second)
	_, err := c.Call(context.Background(), "getMe", nil)
	require.Error(t, err)

	var apiErr *telegram.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestSetMyCommandsPayload(t *testing.T) {
	var got telegram.SetMyCommandsParams
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"ok":true,"result":true}`))
	}))
	defer srv.Close()

	c := NewTelegramClient(srv.URL, "ABC", time.Second)
	require.NoError(t, c.SetMyCommands(context.Background(), []telegram.BotCommand{
		{Command: "start", Description: "Menú"},
		{Command: "precio", Description: "Precio"},
	}))

	require.Len(t, got.Commands, 2)
	assert.Equal(t, "precio", got.Commands[1].Command)
}

func TestGetUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botABC/getUpdates", r.URL.Path)
		var params getUpdatesParams
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &params))
		assert.Equal(t, 11, params.Offset)
		assert.Equal(t, 0, params.Timeout)
		_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":11,"message":{"message_id":3,"chat":{"id":-100},"date":1,"text":"/start"}}]}`))
	}))
	defer srv.Close()

	pc := NewPollingClient(srv.URL, "ABC", time.Second)
	updates, err := pc.GetUpdates(context.Background(), 11, 0)
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, 11, updates[0].UpdateID)
	require.NotNil(t, updates[0].Message)
	assert.Equal(t, int64(-100), updates[0].Message.Chat.ID)
	assert.Equal(t, "/start", updates[0].Message.Text)
}
