package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace
// adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&bridgeSessionRecord{},
	)
}

// Product schema mirrors the products Postgres adapter.
type productRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Name      string    `gorm:"column:name;index"`
	Category  string    `gorm:"column:category;type:varchar(64);index"`
	Price     float64   `gorm:"column:price"`
	Stock     int32     `gorm:"column:stock"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

// Bridge session schema mirrors the hardened session store.
type bridgeSessionRecord struct {
	SessionID      string     `gorm:"primaryKey;column:session_id;size:64"`
	UpstreamCookie string     `gorm:"column:upstream_cookie;size:2048"`
	ExpiresAt      *time.Time `gorm:"column:expires_at;index"`
	CreatedAt      time.Time  `gorm:"column:created_at;index"`
	UpdatedAt      time.Time  `gorm:"column:updated_at"`
}

func (bridgeSessionRecord) TableName() string { return "bridge_sessions" }
