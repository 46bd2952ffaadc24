package ports

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrUpstream marks aggregation failures caused by the upstream API, either a
// non-success status or an unreachable host. Transports map it to 502.
var ErrUpstream = errors.New("upstream call failed")

// FetchResult is one upstream JSON response.
type FetchResult struct {
	Status int
	Body   json.RawMessage
}

// Success reports whether the upstream answered with a 2xx status.
func (r *FetchResult) Success() bool {
	return r != nil && r.Status >= 200 && r.Status < 300
}

// Fetcher issues a single upstream GET. The authorization value, when
// non-empty, is forwarded verbatim.
type Fetcher interface {
	Fetch(ctx context.Context, path, authorization string) (*FetchResult, error)
}

// SummaryResult merges the two activity pages the SPA shows on its landing
// view.
type SummaryResult struct {
	RecentActivities json.RawMessage `json:"recentActivities"`
	MoreActivities   json.RawMessage `json:"moreActivities"`
}

// ComposeResult is the enriched search payload.
type ComposeResult struct {
	Query      string          `json:"query"`
	Items      json.RawMessage `json:"items"`
	Stats      json.RawMessage `json:"stats"`
	Note       string          `json:"note"`
	ServerTime string          `json:"serverTime"`
}

// SpecialResult is the non-proxied override payload.
type SpecialResult struct {
	Message    string          `json:"message"`
	Item       json.RawMessage `json:"item"`
	ServerTime string          `json:"serverTime"`
}

// Service exposes the aggregation use cases.
type Service interface {
	Summary(ctx context.Context, authorization string) (*SummaryResult, error)
	Compose(ctx context.Context, authorization, search string) (*ComposeResult, error)
	Special(ctx context.Context) (*SpecialResult, error)
}
