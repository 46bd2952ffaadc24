package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storefront-samples/go-bff-server/internal/domains/products/adapters/memory"
	"github.com/storefront-samples/go-bff-server/internal/domains/products/domain"
	"github.com/storefront-samples/go-bff-server/internal/domains/products/ports"
)

func TestCreateProduct_ValidatesAndPersists(t *testing.T) {
	svc := NewService(memory.NewRepository())

	product, err := domain.NewProduct("", "USB Hub", "Electronics", 24.99, 30)
	require.NoError(t, err)

	saved, err := svc.CreateProduct(context.Background(), product)
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)
	require.Equal(t, "USB Hub", saved.Name)
}

func TestCreateProduct_InvalidProductRejected(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.CreateProduct(context.Background(), &domain.Product{Name: "", Category: "Toys"})
	require.ErrorIs(t, err, domain.ErrEmptyName)

	_, err = svc.CreateProduct(context.Background(), &domain.Product{Name: "Kite", Category: "Toys", Price: -1})
	require.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestUpdateProduct_KeepsIdentity(t *testing.T) {
	repo := memory.NewSeededRepository()
	svc := NewService(repo)

	updated, err := svc.UpdateProduct(context.Background(), "p1", &domain.Product{
		ID: "ignored", Name: "Mechanical Keyboard v2", Category: "Electronics", Price: 139.99, Stock: 20,
	})
	require.NoError(t, err)
	require.Equal(t, "p1", updated.ID)
	require.Equal(t, "Mechanical Keyboard v2", updated.Name)
}

func TestUpdateProduct_MissingProduct(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.UpdateProduct(context.Background(), "ghost", &domain.Product{Name: "X", Category: "Y"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListProducts_AppliesDefaults(t *testing.T) {
	svc := NewService(memory.NewSeededRepository())

	items, total, err := svc.ListProducts(context.Background(), ports.ListFilter{Page: 0, PageSize: 0})
	require.NoError(t, err)
	require.Equal(t, 6, total)
	require.Len(t, items, 6)
}

func TestDeleteProduct(t *testing.T) {
	svc := NewService(memory.NewSeededRepository())
	ctx := context.Background()

	require.NoError(t, svc.DeleteProduct(ctx, "p3"))
	_, err := svc.GetProduct(ctx, "p3")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
