package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/storefront-samples/go-bff-server/internal/domains/products/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL via GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed product repository. Caller owns the
// DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

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

func (r *Repository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	rec := toRecord(product)
	if rec.ID == "" {
		rec.ID = newID()
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ports.ErrDuplicateID
		}
		return nil, err
	}
	return fromRecord(rec), nil
}

func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	rec := toRecord(product)
	if rec.ID == "" {
		return nil, errors.New("product id is required")
	}
	if err := r.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, err
	}
	return fromRecord(rec), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var rec productRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return fromRecord(rec), nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, int, error) {
	if err := r.ensureDB(); err != nil {
		return nil, 0, err
	}
	filter.Normalize()
	query := r.db.WithContext(ctx).Model(&productRecord{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if category := strings.TrimSpace(filter.Category); category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []productRecord
	err := query.
		Order("name ASC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	products := make([]*domain.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, fromRecord(rec))
	}
	return products, int(total), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:       strings.TrimSpace(product.ID),
		Name:     product.Name,
		Category: product.Category,
		Price:    product.Price,
		Stock:    product.Stock,
	}
}

func fromRecord(rec productRecord) *domain.Product {
	return &domain.Product{
		ID:       rec.ID,
		Name:     rec.Name,
		Category: rec.Category,
		Price:    rec.Price,
		Stock:    rec.Stock,
	}
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "duplicate key value")
}

func newID() string {
	return "p-" + strings.ReplaceAll(time.Now().UTC().Format("20060102150405.000000"), ".", "")
}
