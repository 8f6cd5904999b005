package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/buffercalc/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *APIClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.WhatsAppConfig{
		AccessToken:   "secret",
		PhoneNumberID: "1234",
		BaseURL:       srv.URL + "/",
		APIVersion:    "v20.0",
	})
}

func TestSendText(t *testing.T) {
	var got map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v20.0/1234/messages", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	})

	id, err := client.SendText(context.Background(), TextMessage{To: "2246", Body: "Water 960.00", ReplyTo: "wamid.in"})
	require.NoError(t, err)

	assert.Equal(t, "wamid.1", id)
	assert.Equal(t, "2246", got["to"])
	assert.Equal(t, map[string]any{"message_id": "wamid.in"}, got["context"])
	assert.Equal(t, "Water 960.00", got["text"].(map[string]any)["body"])
}

func TestSendTextAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid parameter","code":100}}`))
	})

	_, err := client.SendText(context.Background(), TextMessage{To: "2246", Body: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=100")
	assert.Contains(t, err.Error(), "Invalid parameter")
}

func TestSendTextEmptyBody(t *testing.T) {
	client := newTestClient(t, func(http.ResponseWriter, *http.Request) {
		t.Fatal("no request expected")
	})

	_, err := client.SendText(context.Background(), TextMessage{To: "2246", Body: "  "})
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "甘油…", Truncate("甘油甘油", 3))
	assert.Len(t, []rune(Truncate(strings.Repeat("x", 5000), MaxBodyLength)), MaxBodyLength)
}
