package registry

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"gorm.io/gorm"

	catalogservice "pricegate/contexts/commerce/catalog-service"
	"pricegate/contexts/commerce/catalog-service/adapters/memory"
	"pricegate/contexts/commerce/catalog-service/adapters/notify"
	"pricegate/contexts/commerce/catalog-service/adapters/oauth2"
	postgresadapter "pricegate/contexts/commerce/catalog-service/adapters/postgres"
	"pricegate/contexts/commerce/catalog-service/application/commands"
	"pricegate/contexts/commerce/catalog-service/application/queries"
	"pricegate/contexts/commerce/catalog-service/ports"
	"pricegate/internal/platform/config"
)

// Registry owns the process-wide capability instances. Each capability is
// constructed lazily on first access, exactly once, and shared by every
// request for the remainder of the process lifetime. The construction
// check-then-set is guarded so concurrent first access cannot build
// duplicates.
type Registry struct {
	cfg    config.Config
	db     *gorm.DB
	logger *slog.Logger

	mu                sync.Mutex
	repo              ports.ProductRepository
	notifier          ports.ChangeNotifier
	validator         ports.TokenValidator
	validatorResolved bool
	module            *catalogservice.Module
}

// New creates a registry. db may be nil; it is only consulted when the
// repository capability is first constructed.
func New(cfg config.Config, db *gorm.DB, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		cfg:    cfg,
		db:     db,
		logger: logger,
	}
}

// ProductRepository returns the cached repository, constructing it on first
// access. A configured database selects the postgres adapter; otherwise the
// seeded in-memory store is used.
func (r *Registry) ProductRepository() ports.ProductRepository {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.productRepositoryLocked()
}

func (r *Registry) productRepositoryLocked() ports.ProductRepository {
	if r.repo == nil {
		if r.db != nil {
			r.repo = postgresadapter.NewRepository(r.db, r.logger)
		} else {
			r.repo = memory.NewStore()
		}
		r.logger.Info("product repository constructed",
			"event", "registry_repository_constructed",
			"module", "internal/app/registry",
			"layer", "platform",
			"postgres", r.db != nil,
		)
	}
	return r.repo
}

// ProductUpdatedNotifier returns the cached change notifier. The HTTP variant
// is selected when a delivery endpoint is configured, the no-op variant
// otherwise. The choice is made once and never revisited.
func (r *Registry) ProductUpdatedNotifier() ports.ChangeNotifier {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.productUpdatedNotifierLocked()
}

func (r *Registry) productUpdatedNotifierLocked() ports.ChangeNotifier {
	if r.notifier == nil {
		baseURL := strings.TrimSpace(r.cfg.ProductUpdatedBaseURL)
		if baseURL != "" {
			r.notifier = notify.NewHTTPNotifier(baseURL, r.cfg.ProductUpdatedKey, r.logger)
		} else {
			r.notifier = notify.NoopNotifier{Logger: r.logger}
		}
		r.logger.Info("change notifier constructed",
			"event", "registry_notifier_constructed",
			"module", "internal/app/registry",
			"layer", "platform",
			"http_delivery", baseURL != "",
		)
	}
	return r.notifier
}

// TokenValidator returns the cached validator, or nil when validation is not
// configured. All three OAuth2 values are required together; a partial
// configuration is a valid low-privilege operating mode, not an error.
func (r *Registry) TokenValidator() ports.TokenValidator {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tokenValidatorLocked()
}

func (r *Registry) tokenValidatorLocked() ports.TokenValidator {
	if !r.validatorResolved {
		oauthCfg := oauth2.Config{
			JWKSURI:  r.cfg.OAuth2JWKSURI,
			Issuer:   r.cfg.OAuth2Issuer,
			Audience: r.cfg.OAuth2Audience,
		}
		if oauthCfg.Configured() {
			r.validator = oauth2.NewValidator(oauthCfg, r.logger)
		}
		r.validatorResolved = true
		r.logger.Info("token validator resolved",
			"event", "registry_validator_resolved",
			"module", "internal/app/registry",
			"layer", "platform",
			"configured", r.validator != nil,
		)
	}
	return r.validator
}

// Module returns the cached catalog module assembled from the capability
// singletons.
func (r *Registry) Module() catalogservice.Module {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.module == nil {
		module := catalogservice.NewModule(catalogservice.Dependencies{
			Repository:  r.productRepositoryLocked(),
			Notifier:    r.productUpdatedNotifierLocked(),
			Clock:       postgresadapter.SystemClock{},
			IDGenerator: postgresadapter.UUIDGenerator{},
			Logger:      r.logger,
		})
		r.module = &module
	}
	return *r.module
}

// AuthenticateRequest resolves the request's AuthContext. Without a
// configured validator every request is unauthenticated and no network call
// is made. Validator infrastructure failures degrade to unauthenticated.
func (r *Registry) AuthenticateRequest(ctx context.Context, req *http.Request) ports.AuthContext {
	validator := r.TokenValidator()
	if validator == nil {
		return ports.AuthContext{}
	}

	auth, err := validator.Validate(ctx, req)
	if err != nil {
		r.logger.Warn("token validation failed, treating request as unauthenticated",
			"event", "registry_validation_degraded",
			"module", "internal/app/registry",
			"layer", "platform",
			"error", err.Error(),
		)
		return ports.AuthContext{}
	}
	return auth
}

// MakeListProductsDeps assembles the listing use case for one request:
// authorization resolution happens here, strictly before use-case execution.
func (r *Registry) MakeListProductsDeps(ctx context.Context, req *http.Request) queries.ListProductsUseCase {
	return queries.ListProductsUseCase{
		Repo:   r.ProductRepository(),
		Auth:   r.AuthenticateRequest(ctx, req),
		Logger: r.logger,
	}
}

// MakeUpsertProductDeps assembles the upsert use case from the capability
// singletons and the runtime clock.
func (r *Registry) MakeUpsertProductDeps() commands.UpsertProductUseCase {
	return commands.UpsertProductUseCase{
		Repo:        r.ProductRepository(),
		Notifier:    r.ProductUpdatedNotifier(),
		Clock:       postgresadapter.SystemClock{},
		IDGenerator: postgresadapter.UUIDGenerator{},
		Logger:      r.logger,
	}
}
