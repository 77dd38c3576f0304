package registry

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pricegate/contexts/commerce/catalog-service/adapters/notify"
	"pricegate/contexts/commerce/catalog-service/ports"
	"pricegate/internal/platform/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegistryReturnsSameRepositoryInstance(t *testing.T) {
	reg := New(config.Config{}, nil, quietLogger())

	first := reg.ProductRepository()
	second := reg.ProductRepository()
	if first != second {
		t.Fatal("repository must be constructed once and cached")
	}
}

func TestRegistryConcurrentFirstAccessConstructsOnce(t *testing.T) {
	reg := New(config.Config{}, nil, quietLogger())

	const callers = 64
	instances := make([]ports.ProductRepository, callers)
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			instances[i] = reg.ProductRepository()
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		if instances[i] != instances[0] {
			t.Fatal("concurrent first access must yield a single instance")
		}
	}
}

func TestRegistrySelectsNoopNotifierWithoutEndpoint(t *testing.T) {
	reg := New(config.Config{}, nil, quietLogger())

	notifier := reg.ProductUpdatedNotifier()
	if _, ok := notifier.(notify.NoopNotifier); !ok {
		t.Fatalf("expected no-op notifier, got %T", notifier)
	}
	if err := notifier.NotifyProductUpdated(context.Background(), ports.ProductUpdatedEvent{ProductID: "p-001"}); err != nil {
		t.Fatalf("no-op notifier must always succeed: %v", err)
	}
}

func TestRegistrySelectsHTTPNotifierWithEndpoint(t *testing.T) {
	reg := New(config.Config{ProductUpdatedBaseURL: "https://x", ProductUpdatedKey: "secret"}, nil, quietLogger())

	notifier := reg.ProductUpdatedNotifier()
	if _, ok := notifier.(*notify.HTTPNotifier); !ok {
		t.Fatalf("expected HTTP notifier, got %T", notifier)
	}
	if reg.ProductUpdatedNotifier() != notifier {
		t.Fatal("notifier must be cached")
	}
}

func TestRegistryValidatorAbsentWithPartialConfig(t *testing.T) {
	reg := New(config.Config{OAuth2JWKSURI: "https://jwks"}, nil, quietLogger())

	if reg.TokenValidator() != nil {
		t.Fatal("partial OAuth2 config must disable validation")
	}
}

func TestRegistryValidatorPresentWithFullConfig(t *testing.T) {
	reg := New(config.Config{
		OAuth2JWKSURI:  "https://jwks",
		OAuth2Issuer:   "https://issuer",
		OAuth2Audience: "catalog-api",
	}, nil, quietLogger())

	validator := reg.TokenValidator()
	if validator == nil {
		t.Fatal("full OAuth2 config must enable validation")
	}
	if reg.TokenValidator() != validator {
		t.Fatal("validator must be cached")
	}
}

func TestMakeListProductsDepsWithoutValidator(t *testing.T) {
	reg := New(config.Config{}, nil, quietLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/catalog/v1/products", nil)
	// A forged header must be ignored when no validator is configured.
	req.Header.Set("Authorization", "Bearer forged")

	deps := reg.MakeListProductsDeps(req.Context(), req)
	if deps.Auth.Authenticated || len(deps.Auth.Scopes) != 0 {
		t.Fatalf("expected unauthenticated context, got %+v", deps.Auth)
	}
	if deps.Repo != reg.ProductRepository() {
		t.Fatal("deps must carry the shared repository instance")
	}

	result := deps.Execute(req.Context())
	if !result.Success {
		t.Fatalf("listing failed: %s", result.Error)
	}
	for _, item := range result.Data {
		if item.Price.Visible {
			t.Fatalf("expected redacted price for %s", item.ProductID)
		}
	}
}

func TestMakeUpsertProductDepsSharesCapabilities(t *testing.T) {
	reg := New(config.Config{}, nil, quietLogger())

	deps := reg.MakeUpsertProductDeps()
	if deps.Repo != reg.ProductRepository() {
		t.Fatal("deps must carry the shared repository instance")
	}
	if deps.Notifier != reg.ProductUpdatedNotifier() {
		t.Fatal("deps must carry the shared notifier instance")
	}
	if deps.Clock == nil || deps.IDGenerator == nil {
		t.Fatal("deps must carry clock and id generator capabilities")
	}
}
