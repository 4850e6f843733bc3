package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-night/internal/config"
	"github.com/yourusername/race-night/internal/game"
	"github.com/yourusername/race-night/internal/metrics"
)

// RecordNotifier posts broken-record announcements to an external webhook.
// An empty webhook URL disables delivery; announcements are best effort and
// never block the scoring path.
type RecordNotifier struct {
	client *retryablehttp.Client
	url    string
	logger *logrus.Logger
}

// NewRecordNotifier creates a notifier from records configuration.
func NewRecordNotifier(cfg *config.RecordsConfig, logger *logrus.Logger) *RecordNotifier {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = 100 * time.Millisecond
	retryClient.RetryWaitMax = 2 * time.Second
	retryClient.CheckRetry = recordRetryPolicy()
	retryClient.Logger = log.New(io.Discard, "", 0)

	return &RecordNotifier{
		client: retryClient,
		url:    cfg.WebhookURL,
		logger: logger,
	}
}

// Enabled reports whether a webhook is configured.
func (n *RecordNotifier) Enabled() bool {
	return n.url != ""
}

// Announce delivers one record update to the webhook.
func (n *RecordNotifier) Announce(ctx context.Context, update game.RecordUpdate) error {
	if !n.Enabled() {
		return nil
	}

	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal record update: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		metrics.RecordWebhookError()
		return fmt.Errorf("webhook delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		metrics.RecordWebhookError()
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}

	n.logger.WithFields(logrus.Fields{
		"circuit": update.CircuitName,
		"status":  resp.StatusCode,
	}).Debug("Record announcement delivered")
	return nil
}

// recordRetryPolicy defines which HTTP responses should trigger a retry
func recordRetryPolicy() retryablehttp.CheckRetry {
	return func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if err != nil {
			// Retry on network errors
			return true, err
		}

		// Retry on rate limit (429) and server errors
		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			return true, nil
		}

		return false, nil
	}
}
