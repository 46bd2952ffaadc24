package application

import (
	"context"

	"github.com/storefront-samples/go-bff-server/internal/domains/activities/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/activities/ports"
)

// Service exposes the activity feed use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// List returns the filtered feed page.
func (s *Service) List(ctx context.Context, filter ports.Filter) ([]*domain.Activity, error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}
