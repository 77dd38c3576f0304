package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"pricegate/contexts/commerce/catalog-service/ports"
)

// Store is the in-memory product repository used when no database is
// configured. It is seeded with two fixture products so the service is usable
// without external storage.
type Store struct {
	mu       sync.RWMutex
	products map[string]ports.Product
}

func NewStore() *Store {
	now := time.Now().UTC()
	return &Store{
		products: map[string]ports.Product{
			"p-001": {
				ProductID:   "p-001",
				Name:        "Seeded Widget",
				PricePence:  1299,
				Description: "A seeded example product for local testing.",
				UpdatedAt:   now.Add(-24 * time.Hour),
			},
			"p-002": {
				ProductID:   "p-002",
				Name:        "Seeded Gadget",
				PricePence:  2599,
				Description: "Another seeded product to get you started.",
				UpdatedAt:   now,
			},
		},
	}
}

// NewEmptyStore returns a store without seed fixtures.
func NewEmptyStore() *Store {
	return &Store{products: make(map[string]ports.Product)}
}

func (s *Store) ListProducts(_ context.Context) ([]ports.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ports.Product, 0, len(s.products))
	for _, item := range s.products {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ProductID < items[j].ProductID
	})
	return items, nil
}

func (s *Store) GetProduct(_ context.Context, productID string) (ports.Product, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.products[productID]
	if !ok {
		return ports.Product{}, false, nil
	}
	return item, true, nil
}

func (s *Store) UpsertProduct(_ context.Context, product ports.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products[product.ProductID] = product
	return nil
}
