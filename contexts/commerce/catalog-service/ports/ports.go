package ports

import (
	"context"
	"net/http"
	"time"
)

// ScopePriceRead is the scope a caller must hold to see unredacted prices.
const ScopePriceRead = "read:products"

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type Product struct {
	ProductID   string
	Name        string
	PricePence  int64
	Description string
	UpdatedAt   time.Time
}

// AuthContext is the outcome of request authentication. It is created once
// per request and never mutated afterwards.
type AuthContext struct {
	Authenticated bool
	Scopes        []string
}

// HasScope reports whether the caller holds the given scope. Scopes carried
// by an unauthenticated context are never honoured.
func (a AuthContext) HasScope(scope string) bool {
	if !a.Authenticated {
		return false
	}
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (Product, bool, error)
	UpsertProduct(ctx context.Context, product Product) error
}

// ProductUpdatedEvent is the outbound change payload. Field names are part of
// the integration contract with the downstream consumer.
type ProductUpdatedEvent struct {
	ProductID   string    `json:"id"`
	Name        string    `json:"name"`
	PricePence  int64     `json:"pricePence"`
	Description string    `json:"description"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ChangeNotifier informs an external system that a product changed. Delivery
// is attempted exactly once; callers decide what a failure means.
type ChangeNotifier interface {
	NotifyProductUpdated(ctx context.Context, event ProductUpdatedEvent) error
}

// TokenValidator authenticates an inbound request. Implementations may reach
// out to a remote key service, so validation takes a context.
type TokenValidator interface {
	Validate(ctx context.Context, r *http.Request) (AuthContext, error)
}
