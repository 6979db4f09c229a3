package message_sender

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"entry-zone-bot/internal/delivery/telegram"
	telegram_http "entry-zone-bot/internal/delivery/telegram/app/http_client"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiRecorder struct {
	mu       sync.Mutex
	requests []map[string]interface{}
	paths    []string
	replies  []string // по очереди; последний повторяется
}

func (r *apiRecorder) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if !assert.NoError(t, err) {
			return
		}

		var payload map[string]interface{}
		if !assert.NoError(t, json.Unmarshal(body, &payload)) {
			return
		}

		r.mu.Lock()
		r.requests = append(r.requests, payload)
		r.paths = append(r.paths, req.URL.Path)
		reply := r.replies[len(r.replies)-1]
		if len(r.requests) <= len(r.replies) {
			reply = r.replies[len(r.requests)-1]
		}
		r.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(reply))
	}
}

func (r *apiRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

const okReply = `{"ok":true,"result":{"message_id":1}}`

func newTestSender(t *testing.T, rec *apiRecorder, opts Options) (*MessageSenderImpl, *[]time.Duration) {
	t.Helper()
	srv := httptest.NewServer(rec.handler(t))
	t.Cleanup(srv.Close)

	client := telegram_http.NewTelegramClient(srv.URL, "TOKEN", time.Second)
	sender := NewMessageSender(client, opts)

	var slept []time.Duration
	sender.sleep = func(d time.Duration) { slept = append(slept, d) }
	return sender, &slept
}

func TestSendTextMessagePayload(t *testing.T) {
	rec := &apiRecorder{replies: []string{okReply}}
	sender, _ := newTestSender(t, rec, Options{Enabled: true})

	keyboard := telegram.ReplyKeyboardMarkup{
		Keyboard:       [][]telegram.ReplyKeyboardButton{{{Text: "👀 VER AHORA"}}},
		ResizeKeyboard: true,
	}
	require.NoError(t, sender.SendTextMessage(42, "hola *mundo*", keyboard))

	require.Equal(t, 1, rec.count())
	assert.Equal(t, "/botTOKEN/sendMessage", rec.paths[0])
	req := rec.requests[0]
	assert.Equal(t, float64(42), req["chat_id"])
	assert.Equal(t, "hola *mundo*", req["text"])
	assert.Equal(t, "Markdown", req["parse_mode"])
	markup, ok := req["reply_markup"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, markup["resize_keyboard"])
	assert.NotContains(t, req, "disable_web_page_preview")
}

func TestSendReportMessageDisablesPreview(t *testing.T) {
	rec := &apiRecorder{replies: []string{okReply}}
	sender, _ := newTestSender(t, rec, Options{Enabled: true})

	require.NoError(t, sender.SendReportMessage(1, "a", true))
	require.NoError(t, sender.SendReportMessage(1, "b", false))

	assert.Equal(t, true, rec.requests[0]["disable_web_page_preview"])
	assert.NotContains(t, rec.requests[1], "disable_web_page_preview")
	assert.NotContains(t, rec.requests[0], "reply_markup")
}

func TestRetriesOnceOnTooManyRequests(t *testing.T) {
	rec := &apiRecorder{replies: []string{
		`{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":3}}`,
		okReply,
	}}
	sender, slept := newTestSender(t, rec, Options{Enabled: true})

	require.NoError(t, sender.SendReportMessage(1, "x", false))
	assert.Equal(t, 2, rec.count())
	assert.Equal(t, []time.Duration{3 * time.Second}, *slept)
}

func TestSecondTooManyRequestsIsReturned(t *testing.T) {
	rec := &apiRecorder{replies: []string{
		`{"ok":false,"error_code":429,"description":"Too Many Requests","parameters":{"retry_after":120}}`,
	}}
	sender, slept := newTestSender(t, rec, Options{Enabled: true, MaxRetryWait: 10 * time.Second})

	err := sender.SendTextMessage(1, "x", nil)
	require.Error(t, err)

	var apiErr *telegram.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsTooManyRequests())
	assert.Equal(t, 2, rec.count())
	assert.Equal(t, []time.Duration{10 * time.Second}, *slept)
}

func TestOtherAPIErrorsAreNotRetried(t *testing.T) {
	rec := &apiRecorder{replies: []string{`{"ok":false,"error_code":400,"description":"Bad Request: can't parse entities"}`}}
	sender, slept := newTestSender(t, rec, Options{Enabled: true})

	err := sender.SendTextMessage(1, "*", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't parse entities")
	assert.Equal(t, 1, rec.count())
	assert.Empty(t, *slept)
}

func TestTestModeAndDisabledDoNotCallAPI(t *testing.T) {
	rec := &apiRecorder{replies: []string{okReply}}

	sender, _ := newTestSender(t, rec, Options{Enabled: true, TestMode: true})
	assert.True(t, sender.IsTestMode())
	require.NoError(t, sender.SendTextMessage(1, "сообщение длиннее пятидесяти символов, чтобы проверить обрезку", nil))

	disabled, _ := newTestSender(t, rec, Options{Enabled: false})
	require.NoError(t, disabled.SendReportMessage(1, "x", true))

	assert.Zero(t, rec.count())

	sender.SetTestMode(false)
	require.NoError(t, sender.SendTextMessage(1, "x", nil))
	assert.Equal(t, 1, rec.count())
}

func TestRateLimiterWait(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(time.Second)
	rl.now = func() time.Time { return now }
	rl.lastSend = now.Add(-time.Second)

	var slept []time.Duration
	rl.sleep = func(d time.Duration) {
		slept = append(slept, d)
		now = now.Add(d)
	}

	assert.True(t, rl.CanSend())
	rl.Wait()
	assert.Empty(t, slept)
	assert.False(t, rl.CanSend())

	now = now.Add(300 * time.Millisecond)
	rl.Wait()
	assert.Equal(t, []time.Duration{700 * time.Millisecond}, slept)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc", preview("abc", 5))
	assert.Equal(t, "ñañ...", preview("ñañañ", 3))
}
