package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"logmon/internal/types"

	"github.com/hashicorp/go-retryablehttp"
)

// Webhook posts alert summaries as Discord-style JSON messages
type Webhook struct {
	url    string
	client *retryablehttp.Client
}

// NewWebhook creates a notifier. An empty url yields a disabled notifier.
func NewWebhook(url string) *Webhook {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = 5 * time.Second
	client.Logger = nil // suppress default logging

	return &Webhook{
		url:    url,
		client: client,
	}
}

// Enabled reports whether a destination is configured
func (w *Webhook) Enabled() bool {
	return w != nil && w.url != ""
}

type discordMsg struct {
	Content string `json:"content"`
}

// Notify sends the alerts of one run. Runs without alerts are not sent.
func (w *Webhook) Notify(ctx context.Context, rec types.RunRecord) error {
	if !w.Enabled() || len(rec.Alerts) == 0 {
		return nil
	}

	body, err := json.Marshal(discordMsg{Content: formatMessage(rec)})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook message: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status: %s", resp.Status)
	}
	return nil
}

func formatMessage(rec types.RunRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**[%s] logmon alert**\n", rec.FinishedAt.Format("15:04:05"))
	fmt.Fprintf(&b, "**Source**: %s\n", rec.Source)
	for _, a := range rec.Alerts {
		fmt.Fprintf(&b, "- %s\n", a.Line())
	}
	fmt.Fprintf(&b, "\nFailed logins: %d | Errors: %d | Criticals: %d",
		rec.Counts.FailedLogins, rec.Counts.Errors, rec.Counts.Criticals)
	return b.String()
}
