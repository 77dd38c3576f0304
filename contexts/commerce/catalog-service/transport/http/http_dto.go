package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ProductListItemDTO mirrors the listing read model. PricePence is a pointer
// so a redacted price serializes as an explicit null, not a zero.
type ProductListItemDTO struct {
	ProductID   string `json:"id"`
	Name        string `json:"name"`
	PricePence  *int64 `json:"pricePence"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updatedAt"`
}

type ListProductsResponse struct {
	Success bool                 `json:"success"`
	Data    []ProductListItemDTO `json:"data,omitempty"`
	Error   string               `json:"error,omitempty"`
}

type UpsertProductRequest struct {
	Name        string `json:"name"`
	PricePence  int64  `json:"pricePence"`
	Description string `json:"description"`
}

type ProductDTO struct {
	ProductID   string `json:"id"`
	Name        string `json:"name"`
	PricePence  int64  `json:"pricePence"`
	Description string `json:"description"`
	UpdatedAt   string `json:"updatedAt"`
}

type UpsertProductResponse struct {
	Success bool        `json:"success"`
	Data    *ProductDTO `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}
