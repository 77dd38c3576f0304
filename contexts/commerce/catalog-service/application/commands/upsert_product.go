package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pricegate/contexts/commerce/catalog-service/application"
	domainerrors "pricegate/contexts/commerce/catalog-service/domain/errors"
	"pricegate/contexts/commerce/catalog-service/ports"
)

type UpsertProductInput struct {
	ProductID   string
	Name        string
	PricePence  int64
	Description string
}

type UpsertProductResult struct {
	Success bool
	Data    *ports.Product
	Error   string
}

// UpsertProductUseCase persists a product change and then attempts a single
// change notification. The write always precedes the notification, and a
// delivery failure never rolls the write back.
type UpsertProductUseCase struct {
	Repo        ports.ProductRepository
	Notifier    ports.ChangeNotifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (u UpsertProductUseCase) Execute(ctx context.Context, input UpsertProductInput) (result UpsertProductResult) {
	logger := application.ResolveLogger(u.Logger)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("product upsert panicked",
				"event", "catalog_upsert_panic",
				"module", "commerce/catalog-service",
				"layer", "application",
				"panic", fmt.Sprintf("%v", r),
			)
			result = UpsertProductResult{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	if strings.TrimSpace(input.Name) == "" || input.PricePence < 0 {
		return UpsertProductResult{Error: domainerrors.ErrInvalidRequest.Error()}
	}

	productID := strings.TrimSpace(input.ProductID)
	if productID == "" {
		id, err := u.IDGenerator.NewID(ctx)
		if err != nil {
			return UpsertProductResult{Error: err.Error()}
		}
		productID = id
	}

	now := u.Clock.Now().UTC()
	updatedAt := now
	existing, found, err := u.Repo.GetProduct(ctx, productID)
	if err != nil {
		logger.Error("product lookup failed",
			"event", "catalog_upsert_lookup_failed",
			"module", "commerce/catalog-service",
			"layer", "application",
			"product_id", productID,
			"error", err.Error(),
		)
		return UpsertProductResult{Error: err.Error()}
	}
	// updatedAt must never move backwards for a given product.
	if found && existing.UpdatedAt.After(updatedAt) {
		updatedAt = existing.UpdatedAt
	}

	product := ports.Product{
		ProductID:   productID,
		Name:        strings.TrimSpace(input.Name),
		PricePence:  input.PricePence,
		Description: input.Description,
		UpdatedAt:   updatedAt,
	}
	if err := u.Repo.UpsertProduct(ctx, product); err != nil {
		logger.Error("product upsert failed",
			"event", "catalog_upsert_failed",
			"module", "commerce/catalog-service",
			"layer", "application",
			"product_id", productID,
			"error", err.Error(),
		)
		return UpsertProductResult{Error: err.Error()}
	}

	// Best-effort, awaited inline so the write is observable before we
	// return. Failures are logged and the upsert still succeeds.
	if err := u.Notifier.NotifyProductUpdated(ctx, ports.ProductUpdatedEvent{
		ProductID:   product.ProductID,
		Name:        product.Name,
		PricePence:  product.PricePence,
		Description: product.Description,
		UpdatedAt:   product.UpdatedAt,
	}); err != nil {
		logger.Warn("product updated notification failed",
			"event", "catalog_notify_failed",
			"module", "commerce/catalog-service",
			"layer", "application",
			"product_id", product.ProductID,
			"error", err.Error(),
		)
	}

	return UpsertProductResult{Success: true, Data: &product}
}
