package memory

import (
	"context"
	"testing"
	"time"

	"pricegate/contexts/commerce/catalog-service/ports"
)

func TestStoreSeedsFixtureProducts(t *testing.T) {
	store := NewStore()

	items, err := store.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 seeded products, got %d", len(items))
	}
	if items[0].ProductID != "p-001" || items[0].PricePence != 1299 {
		t.Fatalf("unexpected first seed: %+v", items[0])
	}
	if items[1].ProductID != "p-002" || items[1].PricePence != 2599 {
		t.Fatalf("unexpected second seed: %+v", items[1])
	}
	if !items[0].UpdatedAt.Before(items[1].UpdatedAt) {
		t.Fatal("first seed should predate the second")
	}
}

func TestStoreUpsertInsertsAndOverwrites(t *testing.T) {
	store := NewEmptyStore()
	ctx := context.Background()

	product := ports.Product{
		ProductID:  "p-100",
		Name:       "Original",
		PricePence: 100,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := store.UpsertProduct(ctx, product); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	product.Name = "Renamed"
	product.PricePence = 200
	if err := store.UpsertProduct(ctx, product); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}

	got, found, err := store.GetProduct(ctx, "p-100")
	if err != nil || !found {
		t.Fatalf("get failed: found=%v err=%v", found, err)
	}
	if got.Name != "Renamed" || got.PricePence != 200 {
		t.Fatalf("overwrite not applied: %+v", got)
	}
}

func TestStoreGetMissingProduct(t *testing.T) {
	store := NewEmptyStore()

	_, found, err := store.GetProduct(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected product to be absent")
	}
}
