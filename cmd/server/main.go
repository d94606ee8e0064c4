package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/tiendafacil/backend/config"
	httpDelivery "github.com/tiendafacil/backend/internal/delivery/http"
	"github.com/tiendafacil/backend/internal/infrastructure/cache"
	"github.com/tiendafacil/backend/internal/infrastructure/store"
	"github.com/tiendafacil/backend/internal/usecase"
	"github.com/tiendafacil/backend/pkg/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level)

	slog.Info("starting TiendaFácil backend",
		"version", "1.0.0",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port)

	// Initialize infrastructure dependencies
	db, err := store.New(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database ready", "path", cfg.Database.Path)

	snapshots := cache.NewCatalogCache(cfg.Cache.TTL)

	// Initialize usecase layer
	catalogService := usecase.NewCatalogService(db, snapshots)
	if err := catalogService.EnsureSeeded(context.Background()); err != nil {
		slog.Error("failed to seed catalog", "error", err)
		os.Exit(1)
	}

	assistantService := usecase.NewAssistantService(usecase.AssistantConfig{
		UnmatchedPolicy:     usecase.UnmatchedPolicy(cfg.Parser.UnmatchedPolicy),
		EnableFuzzyMatching: cfg.Parser.EnableFuzzyMatching,
		FuzzyEditDistance:   cfg.Parser.FuzzyEditDistance,
	})
	slog.Info("parser configured",
		"unmatched_policy", cfg.Parser.UnmatchedPolicy,
		"fuzzy", cfg.Parser.EnableFuzzyMatching,
		"fuzzy_distance", cfg.Parser.FuzzyEditDistance)

	salesService := usecase.NewSalesService(db)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(assistantService, catalogService, salesService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	slog.Info("server listening", "addr", addr)

	if err := router.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
