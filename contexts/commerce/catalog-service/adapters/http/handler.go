package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"pricegate/contexts/commerce/catalog-service/application/commands"
	"pricegate/contexts/commerce/catalog-service/application/queries"
	"pricegate/contexts/commerce/catalog-service/ports"
	httptransport "pricegate/contexts/commerce/catalog-service/transport/http"
)

type Handler struct {
	Repo        ports.ProductRepository
	Notifier    ports.ChangeNotifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (h Handler) ListProductsHandler(ctx context.Context, auth ports.AuthContext) httptransport.ListProductsResponse {
	result := queries.ListProductsUseCase{
		Repo:   h.Repo,
		Auth:   auth,
		Logger: h.Logger,
	}.Execute(ctx)

	resp := httptransport.ListProductsResponse{
		Success: result.Success,
		Error:   result.Error,
	}
	if !result.Success {
		return resp
	}

	resp.Data = make([]httptransport.ProductListItemDTO, 0, len(result.Data))
	for _, item := range result.Data {
		dto := httptransport.ProductListItemDTO{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Description: item.Description,
			UpdatedAt:   item.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if item.Price.Visible {
			pence := item.Price.Pence
			dto.PricePence = &pence
		}
		resp.Data = append(resp.Data, dto)
	}
	return resp
}

func (h Handler) UpsertProductHandler(
	ctx context.Context,
	productID string,
	req httptransport.UpsertProductRequest,
) httptransport.UpsertProductResponse {
	result := commands.UpsertProductUseCase{
		Repo:        h.Repo,
		Notifier:    h.Notifier,
		Clock:       h.Clock,
		IDGenerator: h.IDGenerator,
		Logger:      h.Logger,
	}.Execute(ctx, commands.UpsertProductInput{
		ProductID:   productID,
		Name:        req.Name,
		PricePence:  req.PricePence,
		Description: req.Description,
	})

	resp := httptransport.UpsertProductResponse{
		Success: result.Success,
		Error:   result.Error,
	}
	if result.Data != nil {
		resp.Data = &httptransport.ProductDTO{
			ProductID:   result.Data.ProductID,
			Name:        result.Data.Name,
			PricePence:  result.Data.PricePence,
			Description: result.Data.Description,
			UpdatedAt:   result.Data.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp
}

// CreateProductHandler upserts with a generated identifier.
func (h Handler) CreateProductHandler(
	ctx context.Context,
	req httptransport.UpsertProductRequest,
) httptransport.UpsertProductResponse {
	return h.UpsertProductHandler(ctx, "", req)
}
