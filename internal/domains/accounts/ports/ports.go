package ports

import (
	"context"
	"errors"

	"github.com/storefront-samples/go-bff-server/internal/domains/accounts/domain"
)

var (
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrNotAuthenticated signals a missing or unknown auth token.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Repository abstracts account lookup.
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TokenStore maps issued auth tokens to usernames.
type TokenStore interface {
	Save(ctx context.Context, token, username string) error
	Lookup(ctx context.Context, token string) (string, bool, error)
	Delete(ctx context.Context, token string) error
}
