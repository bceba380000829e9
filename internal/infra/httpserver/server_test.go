package httpserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grammar_reminder_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v3"
)

func quietLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHome(t *testing.T) {
	h := NewServer(":0", nil, quietLogger()).Routes()

	rec := do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, HomeText, rec.Body.String())
}

func TestHealthzAndMetrics(t *testing.T) {
	h := NewServer(":0", nil, quietLogger()).Routes()

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["ok"])

	rec = do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhook_NotMountedInPullMode(t *testing.T) {
	h := NewServer(":0", nil, quietLogger()).Routes()

	rec := do(t, h, http.MethodPost, "/webhook", `{"update_id":1}`)
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestWebhook_Accepted(t *testing.T) {
	queue := telegram.NewUpdateQueue(2)
	h := NewServer(":0", queue, quietLogger()).Routes()

	rec := do(t, h, http.MethodPost, "/webhook",
		`{"update_id":77,"message":{"message_id":1,"date":0,"text":"/quiz","chat":{"id":42,"type":"private"}}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]any{"ok": true}, decode(t, rec))

	dest := make(chan telebot.Update, 1)
	stop := make(chan struct{})
	go queue.Poll(nil, dest, stop)
	defer close(stop)

	u := <-dest
	assert.Equal(t, 77, u.ID)
	require.NotNil(t, u.Message)
	assert.Equal(t, "/quiz", u.Message.Text)
}

func TestWebhook_Malformed(t *testing.T) {
	h := NewServer(":0", telegram.NewUpdateQueue(1), quietLogger()).Routes()

	rec := do(t, h, http.MethodPost, "/webhook", `{"update_id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, false, body["ok"])
	assert.NotEmpty(t, body["error"])
}

func TestWebhook_QueueFull(t *testing.T) {
	queue := telegram.NewUpdateQueue(1)
	require.NoError(t, queue.Enqueue(telebot.Update{ID: 1}))
	h := NewServer(":0", queue, quietLogger()).Routes()

	rec := do(t, h, http.MethodPost, "/webhook", `{"update_id":2}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, false, decode(t, rec)["ok"])
}
