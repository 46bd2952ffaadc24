// Package application implements the fan-out/fan-in aggregation use cases.
// Every endpoint issues its upstream calls concurrently, waits for all of
// them, and fails as a whole when any call misses: partial results are never
// returned and failed calls are never retried here.
package application

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/storefront-samples/go-bff-server/internal/domains/aggregate/ports"
)

const composeNote = "Composed by BFF"
const specialMessage = "Handled by BFF (not proxied)"

// Service aggregates upstream activity calls into single payloads.
type Service struct {
	fetcher ports.Fetcher
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides the timestamp source, used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(fetcher ports.Fetcher, opts ...Option) *Service {
	s := &Service{fetcher: fetcher, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Summary fans out to the recent and next activity pages in parallel.
func (s *Service) Summary(ctx context.Context, authorization string) (*ports.SummaryResult, error) {
	var recent, more *ports.FetchResult

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		recent, err = s.fetch(ctx, "/api/activities?limit=5", authorization, "recent activities")
		return err
	})
	g.Go(func() (err error) {
		more, err = s.fetch(ctx, "/api/activities?limit=5&pageNumber=2", authorization, "more activities")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ports.SummaryResult{
		RecentActivities: recent.Body,
		MoreActivities:   more.Body,
	}, nil
}

// Compose fans out a filtered activity search plus a stats probe and enriches
// the merged payload with the echoed query and a server timestamp.
func (s *Service) Compose(ctx context.Context, authorization, search string) (*ports.ComposeResult, error) {
	listPath := fmt.Sprintf("/api/activities?query=%s&limit=10", url.QueryEscape(search))
	var list, stats *ports.FetchResult

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		list, err = s.fetch(ctx, listPath, authorization, "activity search")
		return err
	})
	g.Go(func() (err error) {
		stats, err = s.fetch(ctx, "/api/activities?limit=1", authorization, "activity stats")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &ports.ComposeResult{
		Query:      search,
		Items:      list.Body,
		Stats:      stats.Body,
		Note:       composeNote,
		ServerTime: s.timestamp(),
	}, nil
}

// Special backs the /api/special override that short-circuits the proxy.
func (s *Service) Special(ctx context.Context) (*ports.SpecialResult, error) {
	item, err := s.fetch(ctx, "/api/activities?limit=1", "", "special item")
	if err != nil {
		return nil, err
	}
	return &ports.SpecialResult{
		Message:    specialMessage,
		Item:       item.Body,
		ServerTime: s.timestamp(),
	}, nil
}

func (s *Service) fetch(ctx context.Context, path, authorization, label string) (*ports.FetchResult, error) {
	res, err := s.fetcher.Fetch(ctx, path, authorization)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ports.ErrUpstream, label, err)
	}
	if !res.Success() {
		return nil, fmt.Errorf("%w: %s returned status %d", ports.ErrUpstream, label, res.Status)
	}
	return res, nil
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

var _ ports.Service = (*Service)(nil)
