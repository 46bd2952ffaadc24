// Package httpapi adapts the upstream client to the aggregation fetcher port.
package httpapi

import (
	"context"
	"encoding/json"

	"github.com/storefront-samples/go-bff-server/internal/clients/http/upstream"
	"github.com/storefront-samples/go-bff-server/internal/domains/aggregate/ports"
)

var _ ports.Fetcher = (*Fetcher)(nil)

// Fetcher issues aggregation fan-out calls over HTTP.
type Fetcher struct {
	client *upstream.Client
}

func New(client *upstream.Client) *Fetcher {
	return &Fetcher{client: client}
}

func (f *Fetcher) Fetch(ctx context.Context, path, authorization string) (*ports.FetchResult, error) {
	var opts []upstream.CallOption
	if authorization != "" {
		opts = append(opts, upstream.WithAuthorization(authorization))
	}
	res, err := f.client.Get(ctx, path, opts...)
	if err != nil {
		return nil, err
	}
	return &ports.FetchResult{Status: res.Status, Body: json.RawMessage(res.Body)}, nil
}
