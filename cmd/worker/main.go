package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	productsmemory "github.com/storefront-samples/go-bff-server/internal/domains/products/adapters/memory"
	productspostgres "github.com/storefront-samples/go-bff-server/internal/domains/products/adapters/persistence/postgres"
	productsapp "github.com/storefront-samples/go-bff-server/internal/domains/products/application"
	productsports "github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
	"github.com/storefront-samples/go-bff-server/internal/platform/migrations"
	platformobservability "github.com/storefront-samples/go-bff-server/internal/platform/observability"
	platformpostgres "github.com/storefront-samples/go-bff-server/internal/platform/postgres"
	productactivities "github.com/storefront-samples/go-bff-server/internal/platform/temporal/activities/products"
	productworkflows "github.com/storefront-samples/go-bff-server/internal/platform/temporal/workflows/products"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	productRepo, cleanupRepo := buildProductRepository(ctx, logger)
	defer cleanupRepo()
	productService := productsapp.NewService(productRepo)
	activities := productactivities.NewActivities(productService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, productworkflows.ProductCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(productworkflows.ProductCreationWorkflow, workflow.RegisterOptions{Name: productworkflows.ProductCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistProduct, activity.RegisterOptions{Name: productactivities.PersistProductActivityName})

	logger.Info("worker listening", slog.String("taskQueue", productworkflows.ProductCreationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildProductRepository(ctx context.Context, logger *slog.Logger) (productsports.Repository, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return productsmemory.NewSeededRepository(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return productsmemory.NewSeededRepository(), func() {}
	}
	logger.Info("worker product repository configured with postgres")
	return productspostgres.NewRepository(db), cleanup
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
