package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/storefront-samples/go-bff-server/internal/domains/products/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
	nextID   int
}

// NewRepository returns an empty repository.
func NewRepository() *Repository {
	return &Repository{products: map[string]*domain.Product{}}
}

// NewSeededRepository returns a repository preloaded with the demo catalog.
func NewSeededRepository() *Repository {
	repo := NewRepository()
	seed := []*domain.Product{
		{ID: "p1", Name: "Mechanical Keyboard", Category: "Electronics", Price: 129.99, Stock: 25},
		{ID: "p2", Name: "Noise-Cancelling Headphones", Category: "Electronics", Price: 299.00, Stock: 12},
		{ID: "p3", Name: "The Pragmatic Programmer", Category: "Books", Price: 55.50, Stock: 50},
		{ID: "p4", Name: "RC Sports Car", Category: "Toys", Price: 79.95, Stock: 40},
		{ID: "p5", Name: "Standing Desk", Category: "Furniture", Price: 499.00, Stock: 8},
		{ID: "p6", Name: "Ergonomic Chair", Category: "Furniture", Price: 349.00, Stock: 15},
	}
	for _, product := range seed {
		clone := *product
		repo.products[clone.ID] = &clone
	}
	repo.nextID = len(seed)
	return repo
}

func (r *Repository) Create(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == "" {
		r.nextID++
		clone.ID = fmt.Sprintf("p%d", r.nextID)
	} else if _, exists := r.products[clone.ID]; exists {
		return nil, ports.ErrDuplicateID
	}
	r.products[clone.ID] = &clone
	return &clone, nil
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == "" {
		return nil, errors.New("product id is required")
	}
	r.products[clone.ID] = &clone
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Product, int, error) {
	filter.Normalize()
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if !matches(product, filter) {
			continue
		}
		clone := *product
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	total := len(matched)
	start := (filter.Page - 1) * filter.PageSize
	if start >= total {
		return []*domain.Product{}, total, nil
	}
	end := start + filter.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func matches(product *domain.Product, filter ports.ListFilter) bool {
	if search := strings.TrimSpace(filter.Search); search != "" {
		if !strings.Contains(strings.ToLower(product.Name), strings.ToLower(search)) {
			return false
		}
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		if !strings.EqualFold(product.Category, category) {
			return false
		}
	}
	return true
}
