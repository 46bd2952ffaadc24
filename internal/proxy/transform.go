package proxy

import (
	"net/http"

	"github.com/storefront-samples/go-bff-server/internal/domains/session/domain"
	sessionports "github.com/storefront-samples/go-bff-server/internal/domains/session/ports"
	"github.com/storefront-samples/go-bff-server/internal/platform/observability"
)

// CorrelationHeader carries the request trace id across service hops.
const CorrelationHeader = "X-Correlation-ID"

// RequestTransform rewrites each outbound proxied request before it leaves
// for the upstream: it stamps a correlation id and swaps the client's bff_sid
// cookie for the mapped upstream auth cookie. It performs no I/O beyond the
// in-memory store lookup.
type RequestTransform struct {
	sessions sessionports.Store
}

func NewRequestTransform(sessions sessionports.Store) *RequestTransform {
	return &RequestTransform{sessions: sessions}
}

// Apply mutates the outbound request based on the inbound one. A missing or
// unresolvable session cookie leaves the request untouched: anonymous
// passthrough is not an error.
func (t *RequestTransform) Apply(inbound, outbound *http.Request) {
	if outbound.Header.Get(CorrelationHeader) == "" {
		if traceID := observability.CorrelationID(inbound.Context()); traceID != "" {
			outbound.Header.Set(CorrelationHeader, traceID)
		}
	}

	cookie, err := inbound.Cookie(domain.CookieName)
	if err != nil || cookie.Value == "" {
		return
	}
	upstreamCookie, ok, err := t.sessions.Get(inbound.Context(), cookie.Value)
	if err != nil || !ok {
		return
	}
	// The upstream must see its own auth cookie, never the BFF-issued token.
	outbound.Header.Del("Cookie")
	outbound.Header.Set("Cookie", upstreamCookie)
}
