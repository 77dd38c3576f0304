// Package bootstrap is the composition root.
// Keep construction and wiring here so module code stays framework-agnostic.
package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	postgresadapter "pricegate/contexts/commerce/catalog-service/adapters/postgres"
	"pricegate/internal/app/registry"
	"pricegate/internal/platform/config"
	"pricegate/internal/platform/db"
	"pricegate/internal/platform/httpserver"
)

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")

	var pg *db.Postgres
	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		if err := postgresadapter.Migrate(pg.DB); err != nil {
			_ = pg.Close()
			return nil, err
		}
	}

	reg := registry.New(cfg, gormHandle(pg), logger)
	server := httpserver.New(reg, logger, normalizeAddr(cfg.HTTPPort), cfg.EnableSwaggerUI)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)
	return a.server.Start()
}

func (a *APIApp) Close() error {
	return a.postgres.Close()
}

func gormHandle(pg *db.Postgres) *gorm.DB {
	if pg == nil {
		return nil
	}
	return pg.DB
}

func normalizeAddr(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}
