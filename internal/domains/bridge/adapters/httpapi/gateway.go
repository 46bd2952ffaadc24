// Package httpapi adapts the upstream client to the bridge gateway port.
package httpapi

import (
	"context"
	"fmt"
	"io"

	"github.com/storefront-samples/go-bff-server/internal/clients/http/upstream"
	"github.com/storefront-samples/go-bff-server/internal/domains/bridge/ports"
)

var _ ports.UpstreamGateway = (*Gateway)(nil)

// Upstream auth paths, matching the storefront API surface.
const (
	loginPath    = "/api/login"
	logoutPath   = "/api/logout"
	userInfoPath = "/api/account/user-info"
)

// Gateway calls the upstream auth endpoints over HTTP.
type Gateway struct {
	client *upstream.Client
}

func New(client *upstream.Client) *Gateway {
	return &Gateway{client: client}
}

func (g *Gateway) Login(ctx context.Context, body io.Reader, contentType string) (*ports.Relay, error) {
	if contentType == "" {
		contentType = "application/json"
	}
	res, err := g.client.Post(ctx, loginPath, body, contentType)
	if err != nil {
		return nil, fmt.Errorf("upstream login: %w", err)
	}
	return toRelay(res), nil
}

func (g *Gateway) Logout(ctx context.Context) error {
	if _, err := g.client.Post(ctx, logoutPath, nil, ""); err != nil {
		return fmt.Errorf("upstream logout: %w", err)
	}
	return nil
}

func (g *Gateway) UserInfo(ctx context.Context) (*ports.Relay, error) {
	res, err := g.client.Get(ctx, userInfoPath)
	if err != nil {
		return nil, fmt.Errorf("upstream user info: %w", err)
	}
	return toRelay(res), nil
}

func toRelay(res *upstream.Result) *ports.Relay {
	relay := &ports.Relay{
		Status:      res.Status,
		Body:        res.Body,
		ContentType: res.ContentType,
	}
	if res.Header != nil {
		relay.SetCookies = res.Header.Values("Set-Cookie")
	}
	return relay
}
