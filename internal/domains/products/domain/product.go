package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName     = errors.New("product name is required")
	ErrEmptyCategory   = errors.New("product category is required")
	ErrNegativePrice   = errors.New("product price must not be negative")
	ErrNegativeStock   = errors.New("product stock must not be negative")
)

// Product models a catalog item.
type Product struct {
	ID       string
	Name     string
	Category string
	Price    float64
	Stock    int32
}

// NewProduct validates and constructs a product aggregate.
func NewProduct(id, name, category string, price float64, stock int32) (*Product, error) {
	product := &Product{
		ID:       strings.TrimSpace(id),
		Name:     strings.TrimSpace(name),
		Category: strings.TrimSpace(category),
		Price:    price,
		Stock:    stock,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Validate enforces invariants on the aggregate.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Category) == "" {
		return ErrEmptyCategory
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
