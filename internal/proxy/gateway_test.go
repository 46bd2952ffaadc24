package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	sessionmemory "github.com/storefront-samples/go-bff-server/internal/domains/session/adapters/memory"
)

func newGatewayFixture(t *testing.T, upstream *httptest.Server, cfg Config) (*Gateway, *sessionmemory.Store) {
	t.Helper()
	store := sessionmemory.NewStore()
	if upstream != nil {
		cfg.APIURL = upstream.URL
	} else if cfg.APIURL == "" {
		cfg.APIURL = "http://127.0.0.1:1"
	}
	gateway, err := NewGateway(cfg, NewRequestTransform(store), nil)
	require.NoError(t, err)
	return gateway, store
}

func TestServeHTTP_ProxiesAPIPathsWithCookieSwap(t *testing.T) {
	var gotCookie, gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotPath = r.URL.Path + "?" + r.URL.RawQuery
		w.Write([]byte("ok"))
	}))
	defer upstream.Close()

	gateway, store := newGatewayFixture(t, upstream, Config{})
	require.NoError(t, store.Put(context.Background(), "sid-1", "token=abc"))

	req := httptest.NewRequest(http.MethodGet, "/api/products?page=2", nil)
	req.AddCookie(&http.Cookie{Name: "bff_sid", Value: "sid-1"})
	rec := httptest.NewRecorder()

	gateway.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "token=abc", gotCookie)
	require.Equal(t, "/api/products?page=2", gotPath)
}

func TestServeHTTP_CommentsPrefixGoesToAPICluster(t *testing.T) {
	var gotPath string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer upstream.Close()

	gateway, _ := newGatewayFixture(t, upstream, Config{})

	req := httptest.NewRequest(http.MethodGet, "/comments/stream", nil)
	gateway.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "/comments/stream", gotPath)
}

func TestServeHTTP_UnreachableUpstreamReturns502Problem(t *testing.T) {
	gateway, _ := newGatewayFixture(t, nil, Config{})

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	gateway.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "/problems/bad-gateway", problem["type"])
	require.Equal(t, float64(http.StatusBadGateway), problem["status"])
	require.Equal(t, "/api/products", problem["instance"])
	// The transport error surfaces as the problem detail.
	require.NotEmpty(t, problem["detail"])
}

func TestServeHTTP_DevelopmentFallsThroughToVite(t *testing.T) {
	vite := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("vite:" + r.URL.Path))
	}))
	defer vite.Close()

	gateway, _ := newGatewayFixture(t, nil, Config{Development: true, ViteURL: vite.URL})

	req := httptest.NewRequest(http.MethodGet, "/src/main.tsx", nil)
	rec := httptest.NewRecorder()
	gateway.ServeHTTP(rec, req)

	require.Equal(t, "vite:/src/main.tsx", rec.Body.String())
}

func TestServeHTTP_ProductionServesStaticWithIndexFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))

	gateway, _ := newGatewayFixture(t, nil, Config{StaticDir: dir})

	rec := httptest.NewRecorder()
	gateway.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	require.Equal(t, "console.log(1)", rec.Body.String())

	rec = httptest.NewRecorder()
	gateway.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/products/browse", nil))
	require.Equal(t, "<html>spa</html>", rec.Body.String())
}
