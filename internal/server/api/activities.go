package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	activitiesapp "github.com/storefront-samples/go-bff-server/internal/domains/activities/application"
	"github.com/storefront-samples/go-bff-server/internal/domains/activities/ports"
	apierrors "github.com/storefront-samples/go-bff-server/internal/shared/errors"
)

// ActivityAPI implements the activity feed endpoint.
type ActivityAPI struct {
	service *activitiesapp.Service
}

func NewActivityAPI(service *activitiesapp.Service) ActivityAPI {
	return ActivityAPI{service: service}
}

// Get /api/activities
// Supported query parameters: query, limit, pageNumber.
func (api ActivityAPI) List(c *gin.Context) {
	filter := ports.Filter{
		Query:      c.Query("query"),
		Limit:      intQuery(c, "limit"),
		PageNumber: intQuery(c, "pageNumber"),
	}
	activities, err := api.service.List(c.Request.Context(), filter)
	if err != nil {
		apierrors.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}
