package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storefront-samples/go-bff-server/internal/domains/products/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
	apierrors "github.com/storefront-samples/go-bff-server/internal/shared/errors"
)

// ProductAPI implements the catalog endpoints.
type ProductAPI struct {
	service   ports.Service
	workflows ports.WorkflowOrchestrator
}

func NewProductAPI(service ports.Service, workflows ports.WorkflowOrchestrator) ProductAPI {
	return ProductAPI{service: service, workflows: workflows}
}

// Product is the transport representation of a catalog item.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int32   `json:"stock"`
}

// ProductPage is the paged listing envelope.
type ProductPage struct {
	Items    []Product `json:"items"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"pageSize"`
}

func toTransportProduct(product *domain.Product) Product {
	return Product{
		ID:       product.ID,
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
		Stock:    product.Stock,
	}
}

func fromTransportProduct(payload Product) *domain.Product {
	return &domain.Product{
		ID:       payload.ID,
		Name:     payload.Name,
		Category: payload.Category,
		Price:    payload.Price,
		Stock:    payload.Stock,
	}
}

// Get /api/products
// Supported query parameters: search, category, page, pageSize.
func (api ProductAPI) List(c *gin.Context) {
	filter := ports.ListFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Page:     intQuery(c, "page"),
		PageSize: intQuery(c, "pageSize"),
	}
	filter.Normalize()
	items, total, err := api.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		respondProductError(c, err)
		return
	}
	page := ProductPage{
		Items:    make([]Product, 0, len(items)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for _, item := range items {
		page.Items = append(page.Items, toTransportProduct(item))
	}
	c.JSON(http.StatusOK, page)
}

// Get /api/products/:id
func (api ProductAPI) Get(c *gin.Context) {
	product, err := api.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransportProduct(product))
}

// Post /api/products
// Creation runs through the workflow orchestrator.
func (api ProductAPI) Create(c *gin.Context) {
	var payload Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	created, err := api.workflows.CreateProduct(c.Request.Context(), fromTransportProduct(payload))
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTransportProduct(created))
}

// Put /api/products/:id
func (api ProductAPI) Update(c *gin.Context) {
	var payload Product
	if err := c.ShouldBindJSON(&payload); err != nil {
		apierrors.Respond(c, apierrors.ErrBadRequest.WithDetail(err.Error()))
		return
	}
	updated, err := api.service.UpdateProduct(c.Request.Context(), c.Param("id"), fromTransportProduct(payload))
	if err != nil {
		respondProductError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTransportProduct(updated))
}

// Delete /api/products/:id
func (api ProductAPI) Delete(c *gin.Context) {
	if err := api.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondProductError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ports.ErrNotFound):
		apierrors.Respond(c, apierrors.NewNotFoundProblem("product", c.Param("id")))
	case errors.Is(err, ports.ErrDuplicateID):
		apierrors.Respond(c, apierrors.ErrConflict.WithDetail(err.Error()))
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptyCategory),
		errors.Is(err, domain.ErrNegativePrice),
		errors.Is(err, domain.ErrNegativeStock):
		apierrors.Respond(c, apierrors.ErrValidation.WithDetail(err.Error()))
	default:
		apierrors.RespondError(c, err)
	}
}

func intQuery(c *gin.Context, key string) int {
	raw := c.Query(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
