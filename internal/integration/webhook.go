package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LeadWebhook forwards consultation leads to a generic webhook endpoint
// (a Google-Sheets-style collector). Single attempt, fully awaited.
type LeadWebhook struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewLeadWebhook creates a forwarder posting to url. An empty url disables it.
func NewLeadWebhook(url string, logger *zap.Logger) *LeadWebhook {
	return &LeadWebhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Enabled reports whether a webhook endpoint is configured.
func (w *LeadWebhook) Enabled() bool {
	return w.url != ""
}

// Forward posts the payload as JSON. Disabled forwarders accept silently so
// callers need not special-case deployments without a collector.
func (w *LeadWebhook) Forward(ctx context.Context, payload any) error {
	if !w.Enabled() {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		w.logger.Error("Lead webhook call failed", zap.Error(err))
		return fmt.Errorf("%w: webhook call failed", ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		w.logger.Error("Lead webhook rejected payload", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: webhook returned status %d", ErrUpstream, resp.StatusCode)
	}

	return nil
}
