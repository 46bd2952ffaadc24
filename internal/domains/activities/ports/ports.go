package ports

import (
	"context"

	"github.com/storefront-samples/go-bff-server/internal/domains/activities/domain"
)

// Filter narrows and pages the activity feed.
type Filter struct {
	Query      string
	Limit      int
	PageNumber int
}

// Normalize applies the defaults the HTTP surface documents.
func (f *Filter) Normalize() {
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.PageNumber < 1 {
		f.PageNumber = 1
	}
}

// Repository abstracts activity feed access.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]*domain.Activity, error)
}
