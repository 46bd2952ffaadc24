package ports

import (
	"context"
	"io"
)

// Relay carries an upstream auth response that the BFF passes back to the
// browser mostly untouched.
type Relay struct {
	Status      int
	Body        []byte
	ContentType string
	// SetCookies are the raw Set-Cookie header values from the upstream
	// response, in arrival order.
	SetCookies []string
}

// Success reports whether the upstream answered with a 2xx status.
func (r *Relay) Success() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// UpstreamGateway abstracts the three upstream auth endpoints the bridge
// talks to.
type UpstreamGateway interface {
	// Login relays the client credentials body to the upstream login endpoint.
	Login(ctx context.Context, body io.Reader, contentType string) (*Relay, error)
	// Logout notifies the upstream logout endpoint.
	Logout(ctx context.Context) error
	// UserInfo fetches the upstream current-user endpoint.
	UserInfo(ctx context.Context) (*Relay, error)
}
