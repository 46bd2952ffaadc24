package products

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	"github.com/storefront-samples/go-bff-server/internal/domains/products/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
)

// PersistProductActivityName persists a product aggregate.
const PersistProductActivityName = "products.activities.PersistProduct"

// Activities groups activities that operate on the product catalog.
type Activities struct {
	service ports.Service
}

// NewActivities wires the product service into the Temporal activities bundle.
func NewActivities(service ports.Service) *Activities {
	return &Activities{service: service}
}

// PersistProduct stores a new product and returns the saved aggregate.
func (a *Activities) PersistProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("product persist activity not initialized")
		return nil, errors.New("product persist activity not initialized")
	}
	logger.Info("PersistProduct activity started", "name", product.Name)
	saved, err := a.service.CreateProduct(ctx, product)
	if err != nil {
		logger.Error("PersistProduct activity failed", "name", product.Name, "error", err)
		return nil, err
	}
	logger.Info("PersistProduct activity completed", "productId", saved.ID)
	return saved, nil
}
