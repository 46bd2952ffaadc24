// Package api assembles the gin transport for the upstream storefront API:
// product catalog, activity feed, and cookie auth.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	accountsapp "github.com/storefront-samples/go-bff-server/internal/domains/accounts/application"
	activitiesapp "github.com/storefront-samples/go-bff-server/internal/domains/activities/application"
	productsports "github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
)

// ServiceName labels spans and logs emitted by the API transport.
const ServiceName = "storefront-api"

// Deps carries the wired services the router hands to its handlers.
type Deps struct {
	Products         productsports.Service
	ProductWorkflows productsports.WorkflowOrchestrator
	Activities       *activitiesapp.Service
	Accounts         *accountsapp.Service
	Logger           *slog.Logger
}

// NewRouter builds the API engine.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(ServiceName))

	productAPI := NewProductAPI(deps.Products, deps.ProductWorkflows)
	products := router.Group("/api/products")
	{
		products.GET("", productAPI.List)
		products.GET("/:id", productAPI.Get)
		products.POST("", productAPI.Create)
		products.PUT("/:id", productAPI.Update)
		products.DELETE("/:id", productAPI.Delete)
	}

	activityAPI := NewActivityAPI(deps.Activities)
	router.GET("/api/activities", activityAPI.List)

	authAPI := NewAuthAPI(deps.Accounts, deps.Logger)
	router.POST("/api/login", authAPI.Login)
	router.POST("/api/logout", authAPI.Logout)
	router.GET("/api/account/user-info", authAPI.UserInfo)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": ServiceName})
	})
	return router
}
