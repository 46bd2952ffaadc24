package application

import (
	"context"
	"errors"

	"github.com/storefront-samples/go-bff-server/internal/domains/products/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
)

// Service orchestrates product catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, product)
}

func (s *Service) UpdateProduct(ctx context.Context, id string, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.ID = existing.ID
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Save(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, int, error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

var _ ports.Service = (*Service)(nil)
