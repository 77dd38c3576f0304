package queries

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pricegate/contexts/commerce/catalog-service/application"
	"pricegate/contexts/commerce/catalog-service/ports"
)

// PriceView is a tagged price value: either visible with a concrete amount or
// redacted. Redaction is total, there is no partial precision.
type PriceView struct {
	Pence   int64
	Visible bool
}

func VisiblePrice(pence int64) PriceView {
	return PriceView{Pence: pence, Visible: true}
}

func RedactedPrice() PriceView {
	return PriceView{}
}

// ProductListItem is the read model returned by the listing use case. It is
// constructed fresh per response and never persisted.
type ProductListItem struct {
	ProductID   string
	Name        string
	Price       PriceView
	Description string
	UpdatedAt   time.Time
}

// ListProductsResult carries either the listed items or a failure message,
// never both.
type ListProductsResult struct {
	Success bool
	Data    []ProductListItem
	Error   string
}

// ListProductsUseCase returns every known product, redacting prices for
// callers without the price-read scope.
type ListProductsUseCase struct {
	Repo   ports.ProductRepository
	Auth   ports.AuthContext
	Logger *slog.Logger
}

// Execute never returns an error to its caller; every failure, including a
// panic below the repository boundary, is folded into the result.
func (u ListProductsUseCase) Execute(ctx context.Context) (result ListProductsResult) {
	logger := application.ResolveLogger(u.Logger)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("product listing panicked",
				"event", "catalog_list_panic",
				"module", "commerce/catalog-service",
				"layer", "application",
				"panic", fmt.Sprintf("%v", r),
			)
			result = ListProductsResult{Error: fmt.Sprintf("internal error: %v", r)}
		}
	}()

	products, err := u.Repo.ListProducts(ctx)
	if err != nil {
		logger.Error("product listing failed",
			"event", "catalog_list_failed",
			"module", "commerce/catalog-service",
			"layer", "application",
			"error", err.Error(),
		)
		return ListProductsResult{Error: err.Error()}
	}

	canReadPrices := u.Auth.HasScope(ports.ScopePriceRead)
	items := make([]ProductListItem, 0, len(products))
	for _, product := range products {
		price := RedactedPrice()
		if canReadPrices {
			price = VisiblePrice(product.PricePence)
		}
		items = append(items, ProductListItem{
			ProductID:   product.ProductID,
			Name:        product.Name,
			Price:       price,
			Description: product.Description,
			UpdatedAt:   product.UpdatedAt,
		})
	}

	logger.Debug("product listing completed",
		"event", "catalog_list_completed",
		"module", "commerce/catalog-service",
		"layer", "application",
		"authenticated", u.Auth.Authenticated,
		"prices_visible", canReadPrices,
		"count", len(items),
	)
	return ListProductsResult{Success: true, Data: items}
}
