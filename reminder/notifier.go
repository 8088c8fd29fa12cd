// notifier.go
package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/malcomkamau/motivation"
)

// LogNotifier delivers reminders to the log. It is the default sink and is
// useful when an external delivery channel is not configured.
type LogNotifier struct {
	logger motivation.Logger
}

// NewLogNotifier creates a LogNotifier over the given logger.
func NewLogNotifier(logger motivation.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the quote at info level.
func (n *LogNotifier) Notify(_ context.Context, userID string, quote motivation.Quote) error {
	n.logger.Info("Reminder", "user_id", userID, "quote", quote.ShareText())
	return nil
}

// WebhookNotifier delivers reminders by POSTing a JSON payload to a
// configured URL, typically a push-gateway that forwards the quote to the
// user's device.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

// webhookPayload is the body POSTed for each fired reminder.
type webhookPayload struct {
	UserID  string           `json:"user_id"`
	Quote   motivation.Quote `json:"quote"`
	Text    string           `json:"text"`
	FiredAt time.Time        `json:"fired_at"`
}

// NewWebhookNotifier creates a WebhookNotifier for the given URL. A nil
// client falls back to a default with a 10s timeout.
func NewWebhookNotifier(url string, client *http.Client) *WebhookNotifier {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &WebhookNotifier{url: url, client: client}
}

// Notify POSTs the quote to the webhook. Non-2xx responses are errors.
func (n *WebhookNotifier) Notify(ctx context.Context, userID string, quote motivation.Quote) error {
	payload, err := json.Marshal(webhookPayload{
		UserID:  userID,
		Quote:   quote,
		Text:    quote.ShareText(),
		FiredAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
