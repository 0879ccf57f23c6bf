// Package notify delivers scan-completion notifications to the desktop and
// an optional webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gen2brain/beeep"

	"github.com/secmux/sqlmux/internal/model"
)

// EventType represents a notification event type.
type EventType string

const (
	EventScanCompleted EventType = "scan_completed"
	EventScanFailed    EventType = "scan_failed"
	EventScanCancelled EventType = "scan_cancelled"
)

// Event describes a notification event for one finished scan.
type Event struct {
	Type EventType
	// Command is the command line the scan ran.
	Command string
	// Message is the outcome summary shown to the user.
	Message string
	// Duration is how long the scan ran.
	Duration  time.Duration
	Timestamp time.Time
}

// Dispatcher sends notifications to configured channels.
type Dispatcher struct {
	client *http.Client
}

// NewDispatcher creates a Dispatcher with sensible defaults.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// Dispatch sends a notification event using the given config. Delivery is
// best effort; failures are swallowed so a broken webhook never disturbs
// the UI.
func (d *Dispatcher) Dispatch(ctx context.Context, cfg model.NotificationConfig, event Event) {
	title := "sqlmux"
	switch event.Type {
	case EventScanCompleted:
		title = "Scan completed"
	case EventScanFailed:
		title = "Scan failed"
	case EventScanCancelled:
		title = "Scan cancelled"
	}

	message := strings.TrimSpace(event.Message)
	if message == "" {
		message = string(event.Type)
	}
	if len(message) > 800 {
		message = message[:800] + "..."
	}

	if cfg.Desktop {
		_ = beeep.Notify(title, message, "")
	}

	if cfg.WebhookURL != "" {
		payload := map[string]any{
			"event":     event.Type,
			"command":   event.Command,
			"title":     title,
			"message":   message,
			"duration":  event.Duration.Seconds(),
			"timestamp": event.Timestamp.Unix(),
		}
		body, err := json.Marshal(payload)
		if err != nil {
			return
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WebhookURL, bytes.NewReader(body))
		if err != nil {
			return
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := d.client.Do(req)
		if err != nil {
			return
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}
