// Package bff assembles the gin transport for the storefront BFF: the
// registered auth and aggregation routes plus the catch-all reverse proxy.
package bff

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	aggports "github.com/storefront-samples/go-bff-server/internal/domains/aggregate/ports"
	bridgeapp "github.com/storefront-samples/go-bff-server/internal/domains/bridge/application"
)

// ServiceName labels spans and logs emitted by the BFF transport.
const ServiceName = "storefront-bff"

// Deps carries the wired services the router hands to its handlers.
type Deps struct {
	Bridge    *bridgeapp.Service
	Aggregate aggports.Service
	// Gateway handles every path no registered route claims.
	Gateway http.Handler
	Logger  *slog.Logger
}

// NewRouter builds the BFF engine. Registered routes win over the proxy:
// /api/special in particular must short-circuit the /api catch-all.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(ServiceName))

	authAPI := NewAuthAPI(deps.Bridge, deps.Logger)
	auth := router.Group("/bff/auth")
	{
		auth.POST("/login", authAPI.Login)
		auth.POST("/logout", authAPI.Logout)
		auth.GET("/me", authAPI.Me)
	}

	aggregateAPI := NewAggregateAPI(deps.Aggregate, deps.Logger)
	router.GET("/bff/summary", aggregateAPI.Summary)
	router.GET("/bff/activities/summary", aggregateAPI.Summary)
	router.POST("/bff/compose", aggregateAPI.Compose)
	router.GET("/api/special", aggregateAPI.Special)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
	})

	if deps.Gateway != nil {
		router.NoRoute(gin.WrapH(deps.Gateway))
	}
	return router
}
