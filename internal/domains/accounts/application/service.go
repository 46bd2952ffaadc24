package application

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/storefront-samples/go-bff-server/internal/domains/accounts/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/accounts/ports"
)

// Service exposes the account use cases backing the upstream auth endpoints.
type Service struct {
	repo   ports.Repository
	tokens ports.TokenStore
}

func NewService(repo ports.Repository, tokens ports.TokenStore) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login verifies the credentials and issues an auth token.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || strings.TrimSpace(password) == "" {
		return "", nil, ports.ErrInvalidCredentials
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if !user.CheckPassword(password) {
		return "", nil, ports.ErrInvalidCredentials
	}
	token, err := newToken()
	if err != nil {
		return "", nil, err
	}
	if err := s.tokens.Save(ctx, token, user.Username); err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout revokes the token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.tokens.Delete(ctx, token)
}

// CurrentUser resolves the token back to the account it was issued for.
func (s *Service) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ports.ErrNotAuthenticated
	}
	username, ok, err := s.tokens.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ports.ErrNotAuthenticated
	}
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ports.ErrNotAuthenticated
	}
	return user, nil
}

func newToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate auth token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
