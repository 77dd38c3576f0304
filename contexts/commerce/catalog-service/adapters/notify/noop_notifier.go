package notify

import (
	"context"
	"log/slog"

	"pricegate/contexts/commerce/catalog-service/ports"
)

// NoopNotifier accepts notifications without performing any I/O. It is the
// variant selected when no delivery endpoint is configured.
type NoopNotifier struct {
	Logger *slog.Logger
}

func (n NoopNotifier) NotifyProductUpdated(_ context.Context, event ports.ProductUpdatedEvent) error {
	if n.Logger != nil {
		n.Logger.Debug("product updated notification skipped",
			"event", "notify_noop",
			"module", "commerce/catalog-service",
			"layer", "adapter",
			"product_id", event.ProductID,
		)
	}
	return nil
}
