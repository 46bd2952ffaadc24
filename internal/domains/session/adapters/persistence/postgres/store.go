package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront-samples/go-bff-server/internal/domains/session/ports"
)

var _ ports.Store = (*Store)(nil)

// DefaultSessionTTL provides the fallback TTL when none is configured.
const DefaultSessionTTL = 24 * time.Hour

// Store persists bridged sessions in PostgreSQL. Unlike the in-memory
// adapter, entries carry an expiry so stale upstream cookies can be swept by
// the session-purger binary.
type Store struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewStore wires a PostgreSQL-backed session store. Caller owns DB lifecycle.
func NewStore(db *gorm.DB, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Store{db: db, ttl: ttl}
}

type sessionRecord struct {
	SessionID      string     `gorm:"primaryKey;column:session_id;size:64"`
	UpstreamCookie string     `gorm:"column:upstream_cookie;size:2048"`
	ExpiresAt      *time.Time `gorm:"column:expires_at;index"`
	CreatedAt      time.Time  `gorm:"column:created_at;index"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "bridge_sessions" }

// Put upserts the upstream cookie keyed by session id.
func (s *Store) Put(ctx context.Context, sessionID, upstreamCookie string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return errors.New("session id is required")
	}
	expiry := time.Now().Add(s.ttl)
	rec := sessionRecord{SessionID: sessionID, UpstreamCookie: upstreamCookie, ExpiresAt: &expiry}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"upstream_cookie", "expires_at", "updated_at"}),
		}).
		Create(&rec).Error
}

// Get looks up a live session. Expired rows read as absent even before the
// purger removes them.
func (s *Store) Get(ctx context.Context, sessionID string) (string, bool, error) {
	if err := s.ensureDB(); err != nil {
		return "", false, err
	}
	var rec sessionRecord
	err := s.db.WithContext(ctx).
		Where("session_id = ?", strings.TrimSpace(sessionID)).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	if rec.ExpiresAt != nil && rec.ExpiresAt.Before(time.Now()) {
		return "", false, nil
	}
	return rec.UpstreamCookie, true, nil
}

// Remove deletes a session by id. Absent ids are a no-op.
func (s *Store) Remove(ctx context.Context, sessionID string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	return s.db.WithContext(ctx).Delete(&sessionRecord{}, "session_id = ?", sessionID).Error
}

// PurgeExpired removes all expired sessions. Used by the session-purger
// housekeeping binary.
func (s *Store) PurgeExpired(ctx context.Context) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Delete(&sessionRecord{}).Error
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres session store not configured")
	}
	return nil
}
