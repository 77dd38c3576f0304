package queries

import (
	"context"
	"errors"
	"testing"

	"pricegate/contexts/commerce/catalog-service/adapters/memory"
	"pricegate/contexts/commerce/catalog-service/ports"
)

type failingRepo struct{}

func (failingRepo) ListProducts(context.Context) ([]ports.Product, error) {
	return nil, errors.New("storage offline")
}

func (failingRepo) GetProduct(context.Context, string) (ports.Product, bool, error) {
	return ports.Product{}, false, errors.New("storage offline")
}

func (failingRepo) UpsertProduct(context.Context, ports.Product) error {
	return errors.New("storage offline")
}

type panickingRepo struct{}

func (panickingRepo) ListProducts(context.Context) ([]ports.Product, error) {
	panic("corrupted index")
}

func (panickingRepo) GetProduct(context.Context, string) (ports.Product, bool, error) {
	panic("corrupted index")
}

func (panickingRepo) UpsertProduct(context.Context, ports.Product) error {
	panic("corrupted index")
}

func listWith(t *testing.T, auth ports.AuthContext) ListProductsResult {
	t.Helper()
	result := ListProductsUseCase{Repo: memory.NewStore(), Auth: auth}.Execute(context.Background())
	if !result.Success {
		t.Fatalf("listing failed: %s", result.Error)
	}
	if len(result.Data) != 2 {
		t.Fatalf("expected 2 seeded products, got %d", len(result.Data))
	}
	return result
}

func TestListProductsRedactsPricesForAnonymousCaller(t *testing.T) {
	result := listWith(t, ports.AuthContext{})

	for _, item := range result.Data {
		if item.Price.Visible {
			t.Fatalf("expected redacted price for %s", item.ProductID)
		}
	}
	if result.Data[0].ProductID != "p-001" || result.Data[1].ProductID != "p-002" {
		t.Fatalf("unexpected ordering: %s, %s", result.Data[0].ProductID, result.Data[1].ProductID)
	}
	if result.Data[0].Name != "Seeded Widget" || result.Data[1].Name != "Seeded Gadget" {
		t.Fatalf("names must pass through unredacted: %q, %q", result.Data[0].Name, result.Data[1].Name)
	}
	if result.Data[0].Description == "" || result.Data[0].UpdatedAt.IsZero() {
		t.Fatal("non-price fields must pass through unchanged")
	}
}

func TestListProductsRedactsForAuthenticatedCallerWithoutScope(t *testing.T) {
	result := listWith(t, ports.AuthContext{Authenticated: true})

	for _, item := range result.Data {
		if item.Price.Visible {
			t.Fatalf("expected redacted price for %s", item.ProductID)
		}
	}
}

func TestListProductsIgnoresScopesOnUnauthenticatedContext(t *testing.T) {
	result := listWith(t, ports.AuthContext{Scopes: []string{ports.ScopePriceRead}})

	for _, item := range result.Data {
		if item.Price.Visible {
			t.Fatalf("unauthenticated caller must never see prices, got %s visible", item.ProductID)
		}
	}
}

func TestListProductsShowsPricesWithScope(t *testing.T) {
	result := listWith(t, ports.AuthContext{
		Authenticated: true,
		Scopes:        []string{ports.ScopePriceRead},
	})

	if !result.Data[0].Price.Visible || result.Data[0].Price.Pence != 1299 {
		t.Fatalf("expected visible price 1299 for p-001, got %+v", result.Data[0].Price)
	}
	if !result.Data[1].Price.Visible || result.Data[1].Price.Pence != 2599 {
		t.Fatalf("expected visible price 2599 for p-002, got %+v", result.Data[1].Price)
	}
}

func TestListProductsRepositoryFailure(t *testing.T) {
	result := ListProductsUseCase{
		Repo: failingRepo{},
		Auth: ports.AuthContext{Authenticated: true, Scopes: []string{ports.ScopePriceRead}},
	}.Execute(context.Background())

	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Error != "storage offline" {
		t.Fatalf("expected repository error message, got %q", result.Error)
	}
	if result.Data != nil {
		t.Fatalf("failure result must carry no data, got %d items", len(result.Data))
	}
}

func TestListProductsPanicFoldedIntoResult(t *testing.T) {
	result := ListProductsUseCase{Repo: panickingRepo{}}.Execute(context.Background())

	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Error == "" {
		t.Fatal("expected error message from recovered panic")
	}
}
