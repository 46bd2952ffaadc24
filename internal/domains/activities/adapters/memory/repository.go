package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/storefront-samples/go-bff-server/internal/domains/activities/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/activities/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory activity feed adapter.
type Repository struct {
	mu         sync.RWMutex
	activities []*domain.Activity
}

// NewSeededRepository returns a repository preloaded with the demo feed,
// newest first.
func NewSeededRepository() *Repository {
	base := time.Date(2026, 8, 1, 18, 0, 0, 0, time.UTC)
	titles := []struct {
		title    string
		category string
		city     string
	}{
		{"City Rooftop Concert", "music", "Berlin"},
		{"Indoor Rock Climbing Intro", "sport", "Munich"},
		{"Latte Art Workshop", "food", "Hamburg"},
		{"Weekend Board Game Jam", "games", "Berlin"},
		{"Harbor Photography Walk", "culture", "Hamburg"},
		{"Community 5k Run", "sport", "Cologne"},
		{"Street Food Night Market", "food", "Berlin"},
		{"Museum Late Hours Tour", "culture", "Dresden"},
		{"Salsa Beginners Evening", "music", "Munich"},
		{"Open Air Film Screening", "culture", "Berlin"},
		{"Bouldering Meetup", "sport", "Leipzig"},
		{"Sourdough Baking Class", "food", "Cologne"},
	}
	repo := &Repository{}
	for i, entry := range titles {
		repo.activities = append(repo.activities, &domain.Activity{
			ID:       int64(i + 1),
			Title:    entry.title,
			Category: entry.category,
			City:     entry.city,
			Date:     base.AddDate(0, 0, i),
		})
	}
	return repo
}

func (r *Repository) List(_ context.Context, filter ports.Filter) ([]*domain.Activity, error) {
	filter.Normalize()
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*domain.Activity, 0, len(r.activities))
	for _, activity := range r.activities {
		if query := strings.TrimSpace(filter.Query); query != "" {
			if !strings.Contains(strings.ToLower(activity.Title), strings.ToLower(query)) {
				continue
			}
		}
		clone := *activity
		matched = append(matched, &clone)
	}

	start := (filter.PageNumber - 1) * filter.Limit
	if start >= len(matched) {
		return []*domain.Activity{}, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}
