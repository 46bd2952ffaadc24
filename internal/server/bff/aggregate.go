package bff

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	aggports "github.com/storefront-samples/go-bff-server/internal/domains/aggregate/ports"
	apierrors "github.com/storefront-samples/go-bff-server/internal/shared/errors"
)

// AggregateAPI exposes the fan-out aggregation endpoints.
type AggregateAPI struct {
	service aggports.Service
	logger  *slog.Logger
}

func NewAggregateAPI(service aggports.Service, logger *slog.Logger) AggregateAPI {
	if logger == nil {
		logger = slog.Default()
	}
	return AggregateAPI{service: service, logger: logger}
}

// Get /bff/summary
// Get /bff/activities/summary
func (api AggregateAPI) Summary(c *gin.Context) {
	result, err := api.service.Summary(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		api.respondAggregateError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type composeRequest struct {
	Search string `json:"search"`
}

// Post /bff/compose
// The search term is optional; an empty body composes the unfiltered feed.
func (api AggregateAPI) Compose(c *gin.Context) {
	var payload composeRequest
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail("request body must be JSON"))
		return
	}
	result, err := api.service.Compose(c.Request.Context(), c.GetHeader("Authorization"), payload.Search)
	if err != nil {
		api.respondAggregateError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get /api/special
// Registered ahead of the proxy catch-all so the BFF answers this path itself.
func (api AggregateAPI) Special(c *gin.Context) {
	result, err := api.service.Special(c.Request.Context())
	if err != nil {
		api.respondAggregateError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (api AggregateAPI) respondAggregateError(c *gin.Context, err error) {
	if errors.Is(err, aggports.ErrUpstream) {
		api.logger.Error("aggregation upstream call failed",
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()),
		)
		apierrors.Respond(c, apierrors.NewGatewayProblem("aggregation upstream is unreachable"))
		return
	}
	apierrors.RespondError(c, err)
}
