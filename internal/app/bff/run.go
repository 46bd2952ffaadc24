// Package bff boots the BFF process: observability, session store, bridged
// auth, aggregation, and the reverse-proxy gateway.
package bff

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/storefront-samples/go-bff-server/internal/clients/http/upstream"
	agghttp "github.com/storefront-samples/go-bff-server/internal/domains/aggregate/adapters/httpapi"
	aggobs "github.com/storefront-samples/go-bff-server/internal/domains/aggregate/adapters/observability"
	aggapp "github.com/storefront-samples/go-bff-server/internal/domains/aggregate/application"
	bridgehttp "github.com/storefront-samples/go-bff-server/internal/domains/bridge/adapters/httpapi"
	bridgeapp "github.com/storefront-samples/go-bff-server/internal/domains/bridge/application"
	sessionmemory "github.com/storefront-samples/go-bff-server/internal/domains/session/adapters/memory"
	sessionpostgres "github.com/storefront-samples/go-bff-server/internal/domains/session/adapters/persistence/postgres"
	sessionports "github.com/storefront-samples/go-bff-server/internal/domains/session/ports"
	"github.com/storefront-samples/go-bff-server/internal/platform/migrations"
	platformobservability "github.com/storefront-samples/go-bff-server/internal/platform/observability"
	platformpostgres "github.com/storefront-samples/go-bff-server/internal/platform/postgres"
	"github.com/storefront-samples/go-bff-server/internal/proxy"
	serverbff "github.com/storefront-samples/go-bff-server/internal/server/bff"
)

// Run boots the BFF with observability, the session store, and the proxy
// gateway wired.
func Run(ctx context.Context) error {
	instruments, shutdown, err := platformobservability.Init(ctx, serverbff.ServiceName)
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

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	sessions, cleanupSessions := buildSessionStore(ctx, cfg, logger)
	defer cleanupSessions()

	upstreamClient, err := upstream.New(cfg.APIURL, &http.Client{Timeout: cfg.UpstreamTimeout})
	if err != nil {
		return fmt.Errorf("configure upstream client: %w", err)
	}

	bridge := bridgeapp.NewService(
		bridgehttp.New(upstreamClient),
		sessions,
		bridgeapp.WithLogger(logger),
	)
	aggregate := aggobs.New(
		aggapp.NewService(agghttp.New(upstreamClient)),
		aggobs.WithLogger(logger),
		aggobs.WithTracer(instruments.Tracer("internal.aggregate.application")),
		aggobs.WithMeter(instruments.Meter("internal.aggregate.application")),
	)

	gateway, err := proxy.NewGateway(proxy.Config{
		APIURL:      cfg.APIURL,
		Development: cfg.Development,
		ViteURL:     cfg.ViteURL,
		StaticDir:   cfg.StaticDir,
	}, proxy.NewRequestTransform(sessions), logger)
	if err != nil {
		return fmt.Errorf("configure proxy gateway: %w", err)
	}

	router := serverbff.NewRouter(serverbff.Deps{
		Bridge:    bridge,
		Aggregate: aggregate,
		Gateway:   gateway,
		Logger:    logger,
	})

	addr := ":" + cfg.Port
	logger.Info("BFF listening",
		slog.String("addr", addr),
		slog.String("apiUrl", cfg.APIURL),
		slog.Bool("development", cfg.Development),
	)
	if err := router.Run(addr); err != nil {
		logger.Error("BFF server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildSessionStore(ctx context.Context, cfg Config, logger *slog.Logger) (sessionports.Store, func()) {
	if cfg.PostgresDSN == "" {
		logger.Info("session store configured in memory")
		return sessionmemory.NewStore(), func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to in-memory sessions", slog.String("error", err.Error()))
		return sessionmemory.NewStore(), func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to in-memory sessions", slog.String("error", err.Error()))
		return sessionmemory.NewStore(), func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to in-memory sessions", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return sessionmemory.NewStore(), func() {}
	}
	logger.Info("session store configured with postgres", slog.Duration("ttl", cfg.SessionTTL))
	return sessionpostgres.NewStore(db, cfg.SessionTTL), func() { _ = sqlDB.Close() }
}
