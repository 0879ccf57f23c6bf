package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/secmux/sqlmux/internal/model"
)

func TestDispatchWebhook(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
	}))
	defer server.Close()

	cfg := model.NotificationConfig{Desktop: false, WebhookURL: server.URL}
	d := NewDispatcher()
	d.Dispatch(context.Background(), cfg, Event{
		Type:      EventScanCompleted,
		Command:   `sqlmap -u "http://t/" --batch`,
		Message:   "scan completed successfully",
		Duration:  90 * time.Second,
		Timestamp: time.Unix(1700000000, 0),
	})

	require.NotNil(t, received)
	assert.Equal(t, "scan_completed", received["event"])
	assert.Equal(t, "Scan completed", received["title"])
	assert.Equal(t, "scan completed successfully", received["message"])
	assert.Equal(t, float64(90), received["duration"])
	assert.Equal(t, float64(1700000000), received["timestamp"])
}

func TestDispatchWebhookFailureIsSilent(t *testing.T) {
	cfg := model.NotificationConfig{WebhookURL: "http://127.0.0.1:1/unreachable"}

	// Must not panic or block beyond the client timeout.
	NewDispatcher().Dispatch(context.Background(), cfg, Event{
		Type:    EventScanFailed,
		Message: "sqlmap exited abnormally",
	})
}

func TestDispatchTruncatesLongMessages(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		got, _ = payload["message"].(string)
	}))
	defer server.Close()

	long := make([]byte, 2000)
	for i := range long {
		long[i] = 'x'
	}

	cfg := model.NotificationConfig{WebhookURL: server.URL}
	NewDispatcher().Dispatch(context.Background(), cfg, Event{
		Type:    EventScanCancelled,
		Message: string(long),
	})

	assert.Len(t, got, 803)
}
