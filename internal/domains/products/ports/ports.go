package ports

import (
	"context"
	"errors"

	"github.com/storefront-samples/go-bff-server/internal/domains/products/domain"
)

var (
	// ErrNotFound signals a missing product.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateID signals a create with an id that already exists.
	ErrDuplicateID = errors.New("product id already exists")
)

// ListFilter narrows and pages a catalog listing.
type ListFilter struct {
	Search   string
	Category string
	Page     int
	PageSize int
}

// Normalize applies the defaults the HTTP surface documents.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
}

// Repository abstracts product persistence.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// List returns the filtered page plus the total match count before paging.
	List(ctx context.Context, filter ListFilter) ([]*domain.Product, int, error)
}

// Service exposes product use cases to transports and workflows.
type Service interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, filter ListFilter) ([]*domain.Product, int, error)
}

// WorkflowOrchestrator runs product creation, durably when Temporal is
// available and inline otherwise.
type WorkflowOrchestrator interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
}
