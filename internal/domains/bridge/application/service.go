// Package application implements the session-bridging use cases: translating
// the client-facing bff_sid cookie into the real upstream auth cookie.
package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/storefront-samples/go-bff-server/internal/domains/bridge/ports"
	sessiondomain "github.com/storefront-samples/go-bff-server/internal/domains/session/domain"
	sessionports "github.com/storefront-samples/go-bff-server/internal/domains/session/ports"
)

// Service orchestrates the auth bridging flows.
type Service struct {
	gateway  ports.UpstreamGateway
	sessions sessionports.Store
	logger   *slog.Logger
}

type Option func(*Service)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(gateway ports.UpstreamGateway, sessions sessionports.Store, opts ...Option) *Service {
	s := &Service{gateway: gateway, sessions: sessions, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// LoginResult is the outcome of a bridged login attempt. SessionID is empty
// when the upstream rejected the credentials; the relay still carries the
// upstream status and body for the client.
type LoginResult struct {
	Relay     ports.Relay
	SessionID string
}

// Login relays the credentials body to the upstream login endpoint. On
// upstream success it captures the upstream Set-Cookie headers, stores their
// name=value pairs under a fresh session id, and reports that id so the
// transport can issue the bff_sid cookie.
func (s *Service) Login(ctx context.Context, body io.Reader, contentType string) (*LoginResult, error) {
	relay, err := s.gateway.Login(ctx, body, contentType)
	if err != nil {
		return nil, err
	}
	if !relay.Success() {
		// Relay the upstream status unchanged; no session is created.
		return &LoginResult{Relay: *relay}, nil
	}

	sessionID, err := sessiondomain.NewID()
	if err != nil {
		return nil, err
	}
	upstreamCookie := joinCookiePairs(relay.SetCookies)
	if err := s.sessions.Put(ctx, sessionID, upstreamCookie); err != nil {
		return nil, err
	}
	s.logger.Info("bridged session created", slog.Int("upstreamCookies", len(relay.SetCookies)))
	return &LoginResult{Relay: *relay, SessionID: sessionID}, nil
}

// Logout drops the bridged session, if any, and best-effort notifies the
// upstream. A failed upstream notification never blocks the client-visible
// success; logging out twice is equally fine.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID != "" {
		if err := s.sessions.Remove(ctx, sessionID); err != nil {
			return err
		}
	}
	if err := s.gateway.Logout(ctx); err != nil {
		s.logger.Warn("upstream logout notification failed", slog.String("error", err.Error()))
	}
	return nil
}

// CurrentUser relays the upstream current-user endpoint verbatim. The bridged
// cookie is intentionally not attached here: the endpoint serves clients that
// authenticate with a forwarded Authorization header instead.
func (s *Service) CurrentUser(ctx context.Context) (*ports.Relay, error) {
	relay, err := s.gateway.UserInfo(ctx)
	if err != nil {
		return nil, err
	}
	if relay == nil {
		return nil, errors.New("upstream returned no response")
	}
	return relay, nil
}

// joinCookiePairs strips each Set-Cookie value to its name=value prefix,
// discarding attributes like Path and Expires, and joins the pairs the way a
// Cookie request header expects.
func joinCookiePairs(setCookies []string) string {
	pairs := make([]string, 0, len(setCookies))
	for _, raw := range setCookies {
		pair, _, _ := strings.Cut(raw, ";")
		pair = strings.TrimSpace(pair)
		if pair != "" {
			pairs = append(pairs, pair)
		}
	}
	return strings.Join(pairs, "; ")
}
