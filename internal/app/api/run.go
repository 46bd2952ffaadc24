// Package api boots the upstream storefront API process.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	accountsmemory "github.com/storefront-samples/go-bff-server/internal/domains/accounts/adapters/memory"
	accountsapp "github.com/storefront-samples/go-bff-server/internal/domains/accounts/application"
	activitiesmemory "github.com/storefront-samples/go-bff-server/internal/domains/activities/adapters/memory"
	activitiesapp "github.com/storefront-samples/go-bff-server/internal/domains/activities/application"
	productsmemory "github.com/storefront-samples/go-bff-server/internal/domains/products/adapters/memory"
	productspostgres "github.com/storefront-samples/go-bff-server/internal/domains/products/adapters/persistence/postgres"
	productsworkflows "github.com/storefront-samples/go-bff-server/internal/domains/products/adapters/workflows"
	productsapp "github.com/storefront-samples/go-bff-server/internal/domains/products/application"
	productsports "github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
	"github.com/storefront-samples/go-bff-server/internal/platform/migrations"
	platformobservability "github.com/storefront-samples/go-bff-server/internal/platform/observability"
	platformpostgres "github.com/storefront-samples/go-bff-server/internal/platform/postgres"
	serverapi "github.com/storefront-samples/go-bff-server/internal/server/api"
)

// Run boots the storefront API with repositories and workflows wired.
func Run(ctx context.Context) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serverapi.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg := LoadConfig()

	productRepo, cleanupRepo := buildProductRepository(ctx, cfg, logger)
	defer cleanupRepo()
	productService := productsapp.NewService(productRepo)

	var productWorkflows productsports.WorkflowOrchestrator = productsworkflows.NewInlineProductWorkflows(productService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, creating products inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		productWorkflows = productsworkflows.NewTemporalProductWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	router := serverapi.NewRouter(serverapi.Deps{
		Products:         productService,
		ProductWorkflows: productWorkflows,
		Activities:       activitiesapp.NewService(activitiesmemory.NewSeededRepository()),
		Accounts:         accountsapp.NewService(accountsmemory.NewSeededRepository(), accountsmemory.NewTokenStore()),
		Logger:           logger,
	})

	addr := ":" + cfg.Port
	logger.Info("storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildProductRepository(ctx context.Context, cfg Config, logger *slog.Logger) (productsports.Repository, func()) {
	if cfg.PostgresDSN == "" {
		logger.Info("product repository configured with seeded memory")
		return productsmemory.NewSeededRepository(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return productsmemory.NewSeededRepository(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return productsmemory.NewSeededRepository(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return productsmemory.NewSeededRepository(), func() {}
	}
	logger.Info("product repository configured with postgres")
	return productspostgres.NewRepository(db), func() { _ = sqlDB.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(instruments.Logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
