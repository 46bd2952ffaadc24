// Package proxy implements the BFF's reverse-proxy path: a static route
// table, the per-request transform, and the SPA fallback.
package proxy

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	apierrors "github.com/storefront-samples/go-bff-server/internal/shared/errors"
)

// apiPrefixes are the path prefixes routed to the upstream API cluster.
var apiPrefixes = []string{"/api/", "/comments/"}

// Config describes the gateway destinations.
type Config struct {
	// APIURL is the upstream API cluster address.
	APIURL string
	// Development enables passthrough of unmatched paths to the Vite dev
	// server instead of the bundled SPA assets.
	Development bool
	// ViteURL is the dev asset server address (development only).
	ViteURL string
	// StaticDir holds the bundled SPA assets (non-development).
	StaticDir string
}

// Gateway forwards unmatched BFF requests to the upstream API or the SPA
// asset source, applying the request transform on the API path.
type Gateway struct {
	apiProxy  *httputil.ReverseProxy
	viteProxy *httputil.ReverseProxy
	cfg       Config
	logger    *slog.Logger
}

func NewGateway(cfg Config, transform *RequestTransform, logger *slog.Logger) (*Gateway, error) {
	if logger == nil {
		logger = slog.Default()
	}
	apiTarget, err := url.Parse(cfg.APIURL)
	if err != nil {
		return nil, fmt.Errorf("parse API URL: %w", err)
	}
	g := &Gateway{cfg: cfg, logger: logger}

	g.apiProxy = &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(apiTarget)
			pr.Out.Host = apiTarget.Host
			pr.Out.URL.Path = pr.In.URL.Path
			pr.Out.URL.RawQuery = pr.In.URL.RawQuery
			pr.SetXForwarded()
			transform.Apply(pr.In, pr.Out)
		},
		ErrorHandler: g.respondGatewayError,
	}

	if cfg.Development {
		viteTarget, err := url.Parse(cfg.ViteURL)
		if err != nil {
			return nil, fmt.Errorf("parse Vite URL: %w", err)
		}
		g.viteProxy = &httputil.ReverseProxy{
			Rewrite: func(pr *httputil.ProxyRequest) {
				pr.SetURL(viteTarget)
				pr.Out.Host = viteTarget.Host
				pr.Out.URL.Path = pr.In.URL.Path
				pr.Out.URL.RawQuery = pr.In.URL.RawQuery
			},
			ErrorHandler: g.respondGatewayError,
		}
	}

	return g, nil
}

// ServeHTTP routes the request per the static table: API prefixes go to the
// upstream cluster with the transform applied; everything else goes to the
// SPA source (Vite in development, bundled assets otherwise).
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if g.matchesAPI(r.URL.Path) {
		g.apiProxy.ServeHTTP(w, r)
		return
	}
	if g.cfg.Development && g.viteProxy != nil {
		g.viteProxy.ServeHTTP(w, r)
		return
	}
	g.serveSPA(w, r)
}

func (g *Gateway) matchesAPI(path string) bool {
	for _, prefix := range apiPrefixes {
		if strings.HasPrefix(path, prefix) || path == strings.TrimSuffix(prefix, "/") {
			return true
		}
	}
	return false
}

// serveSPA serves a bundled asset when it exists and falls back to the SPA
// entry file for client-side routes.
func (g *Gateway) serveSPA(w http.ResponseWriter, r *http.Request) {
	if g.cfg.StaticDir == "" {
		http.NotFound(w, r)
		return
	}
	requested := filepath.Join(g.cfg.StaticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(requested); err == nil && !info.IsDir() {
		http.ServeFile(w, r, requested)
		return
	}
	http.ServeFile(w, r, filepath.Join(g.cfg.StaticDir, "index.html"))
}

func (g *Gateway) respondGatewayError(w http.ResponseWriter, r *http.Request, err error) {
	g.logger.Error("proxy upstream call failed",
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	problem := apierrors.FromStatus(http.StatusBadGateway, err).WithInstance(r.URL.Path)
	w.Header().Set("Content-Type", apierrors.ContentTypeProblemJSON)
	w.WriteHeader(problem.Status)
	_ = json.NewEncoder(w).Encode(problem)
}
