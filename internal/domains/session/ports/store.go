package ports

import "context"

// Store abstracts the session-id to upstream-cookie mapping. An unknown id is
// reported through the ok flag, not an error: callers treat it as an
// anonymous request.
type Store interface {
	// Put inserts or overwrites the mapping for the given session id.
	Put(ctx context.Context, sessionID, upstreamCookie string) error
	// Get returns the stored cookie header and whether the id was present.
	Get(ctx context.Context, sessionID string) (string, bool, error)
	// Remove deletes the mapping. Removing an absent id is a no-op.
	Remove(ctx context.Context, sessionID string) error
}
