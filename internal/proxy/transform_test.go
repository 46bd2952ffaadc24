package proxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	sessionmemory "github.com/storefront-samples/go-bff-server/internal/domains/session/adapters/memory"
)

func newTransformFixture(t *testing.T) (*RequestTransform, *sessionmemory.Store) {
	t.Helper()
	store := sessionmemory.NewStore()
	return NewRequestTransform(store), store
}

func outboundFor(inbound *http.Request) *http.Request {
	outbound := inbound.Clone(inbound.Context())
	return outbound
}

func TestApply_SwapsSessionCookieForUpstreamCookie(t *testing.T) {
	transform, store := newTransformFixture(t)
	require.NoError(t, store.Put(context.Background(), "sid-1", "token=abc; id=42"))

	inbound := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	inbound.AddCookie(&http.Cookie{Name: "bff_sid", Value: "sid-1"})
	outbound := outboundFor(inbound)

	transform.Apply(inbound, outbound)

	require.Equal(t, "token=abc; id=42", outbound.Header.Get("Cookie"))
}

func TestApply_UnresolvableSessionForwardsUnmodified(t *testing.T) {
	transform, _ := newTransformFixture(t)

	inbound := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	inbound.AddCookie(&http.Cookie{Name: "bff_sid", Value: "unknown"})
	inbound.AddCookie(&http.Cookie{Name: "theme", Value: "dark"})
	outbound := outboundFor(inbound)
	original := outbound.Header.Get("Cookie")

	transform.Apply(inbound, outbound)

	require.Equal(t, original, outbound.Header.Get("Cookie"))
}

func TestApply_NoSessionCookieForwardsUnmodified(t *testing.T) {
	transform, _ := newTransformFixture(t)

	inbound := httptest.NewRequest(http.MethodGet, "/comments/stream", nil)
	outbound := outboundFor(inbound)

	transform.Apply(inbound, outbound)

	require.Empty(t, outbound.Header.Get("Cookie"))
}

func TestApply_SetsCorrelationIDFromTrace(t *testing.T) {
	transform, _ := newTransformFixture(t)

	traceID := trace.TraceID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10}
	spanCtx := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  trace.SpanID{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
	})
	ctx := trace.ContextWithSpanContext(context.Background(), spanCtx)

	inbound := httptest.NewRequest(http.MethodGet, "/api/products", nil).WithContext(ctx)
	outbound := outboundFor(inbound)

	transform.Apply(inbound, outbound)

	require.Equal(t, traceID.String(), outbound.Header.Get(CorrelationHeader))
}

func TestApply_KeepsExistingCorrelationID(t *testing.T) {
	transform, _ := newTransformFixture(t)

	inbound := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	outbound := outboundFor(inbound)
	outbound.Header.Set(CorrelationHeader, "preset-id")

	transform.Apply(inbound, outbound)

	require.Equal(t, "preset-id", outbound.Header.Get(CorrelationHeader))
}
