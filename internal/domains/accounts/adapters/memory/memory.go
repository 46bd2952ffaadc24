package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/storefront-samples/go-bff-server/internal/domains/accounts/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/accounts/ports"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.TokenStore = (*TokenStore)(nil)
)

// Repository is an in-memory account lookup adapter.
type Repository struct {
	users map[string]*domain.User
}

// NewSeededRepository returns the demo account fixture.
func NewSeededRepository() *Repository {
	users := []*domain.User{
		domain.NewUser(1, "demo", "Demo Shopper", "demo@storefront.example", "demo-pass"),
		domain.NewUser(2, "admin", "Store Admin", "admin@storefront.example", "admin-pass"),
	}
	repo := &Repository{users: map[string]*domain.User{}}
	for _, user := range users {
		repo.users[strings.ToLower(user.Username)] = user
	}
	return repo
}

func (r *Repository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return nil, ports.ErrInvalidCredentials
	}
	return user, nil
}

// TokenStore is an in-memory token-to-username mapping.
type TokenStore struct {
	tokens sync.Map
}

func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

func (s *TokenStore) Save(_ context.Context, token, username string) error {
	s.tokens.Store(token, username)
	return nil
}

func (s *TokenStore) Lookup(_ context.Context, token string) (string, bool, error) {
	value, ok := s.tokens.Load(token)
	if !ok {
		return "", false, nil
	}
	return value.(string), true, nil
}

func (s *TokenStore) Delete(_ context.Context, token string) error {
	s.tokens.Delete(token)
	return nil
}
