package catalogservice

import (
	"log/slog"

	httpadapter "pricegate/contexts/commerce/catalog-service/adapters/http"
	"pricegate/contexts/commerce/catalog-service/adapters/memory"
	"pricegate/contexts/commerce/catalog-service/adapters/notify"
	postgresadapter "pricegate/contexts/commerce/catalog-service/adapters/postgres"
	"pricegate/contexts/commerce/catalog-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.ProductRepository
	Notifier    ports.ChangeNotifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Repo:        deps.Repository,
			Notifier:    deps.Notifier,
			Clock:       deps.Clock,
			IDGenerator: deps.IDGenerator,
			Logger:      deps.Logger,
		},
	}
}

// NewInMemoryModule wires the seeded in-memory repository and the no-op
// notifier, for local operation and tests.
func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository:  store,
		Notifier:    notify.NoopNotifier{},
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
	})
	module.Store = store
	return module
}
