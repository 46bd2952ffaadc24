package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storefront-samples/go-bff-server/internal/domains/accounts/adapters/memory"
	"github.com/storefront-samples/go-bff-server/internal/domains/accounts/ports"
)

func newTestService() *Service {
	return NewService(memory.NewSeededRepository(), memory.NewTokenStore())
}

func TestLoginIssuesToken(t *testing.T) {
	svc := newTestService()

	token, user, err := svc.Login(context.Background(), "demo", "demo-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "demo", user.Username)
	require.Equal(t, "Demo Shopper", user.DisplayName)

	resolved, err := svc.CurrentUser(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.Username, resolved.Username)
}

func TestLoginEachCallIssuesDistinctToken(t *testing.T) {
	svc := newTestService()

	first, _, err := svc.Login(context.Background(), "demo", "demo-pass")
	require.NoError(t, err)
	second, _, err := svc.Login(context.Background(), "demo", "demo-pass")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Login(context.Background(), "demo", "wrong")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Login(context.Background(), "nobody", "demo-pass")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLoginRejectsBlankCredentials(t *testing.T) {
	svc := newTestService()

	_, _, err := svc.Login(context.Background(), "  ", "demo-pass")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
	_, _, err = svc.Login(context.Background(), "demo", "")
	require.ErrorIs(t, err, ports.ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.Login(context.Background(), "demo", "demo-pass")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))

	_, err = svc.CurrentUser(context.Background(), token)
	require.ErrorIs(t, err, ports.ErrNotAuthenticated)
}

func TestLogoutUnknownTokenIsNoop(t *testing.T) {
	svc := newTestService()

	require.NoError(t, svc.Logout(context.Background(), "never-issued"))
	require.NoError(t, svc.Logout(context.Background(), ""))
}

func TestCurrentUserWithoutToken(t *testing.T) {
	svc := newTestService()

	_, err := svc.CurrentUser(context.Background(), "")
	require.ErrorIs(t, err, ports.ErrNotAuthenticated)
}
