// Package deploy triggers a rebuild of the published site through a
// deployment hook URL.
package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type Hook struct {
	url     string
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
}

func NewHook(url string, timeout time.Duration, logger *slog.Logger) *Hook {
	return &Hook{
		url:     url,
		client:  &http.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

// Trigger POSTs to the hook URL. Without a URL it logs and does nothing.
func (h *Hook) Trigger(ctx context.Context) error {
	if h.url == "" {
		h.logger.Info("no deploy hook configured, skipping rebuild")
		return nil
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, nil)
	if err != nil {
		return fmt.Errorf("build deploy request: %w", err)
	}

	h.logger.Info("triggering deployment")
	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("trigger deploy: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("trigger deploy: unexpected status %s", resp.Status)
	}
	h.logger.Info("deployment triggered")
	return nil
}
