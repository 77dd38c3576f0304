package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"pricegate/contexts/commerce/catalog-service/ports"
)

const productUpdatedPath = "/integration/events/product-updated"

// HTTPNotifier delivers change events to a remote endpoint with a single
// POST. There is no retry; the caller decides what a failure means.
type HTTPNotifier struct {
	baseURL    string
	hostKey    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPNotifier(baseURL, hostKey string, logger *slog.Logger) *HTTPNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPNotifier{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		hostKey: strings.TrimSpace(hostKey),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

func (n *HTTPNotifier) NotifyProductUpdated(ctx context.Context, event ports.ProductUpdatedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal product updated event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+productUpdatedPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build product updated request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if n.hostKey != "" {
		req.Header.Set("x-functions-key", n.hostKey)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver product updated event: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("product updated delivery rejected: status %d", resp.StatusCode)
	}

	n.logger.Debug("product updated notification delivered",
		"event", "notify_delivered",
		"module", "commerce/catalog-service",
		"layer", "adapter",
		"product_id", event.ProductID,
		"status", resp.StatusCode,
	)
	return nil
}
