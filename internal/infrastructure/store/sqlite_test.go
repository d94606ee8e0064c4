package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendafacil/backend/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "test.db")
	s, err := New(path)
	require.NoError(t, err)
	defer s.Close()

	assert.FileExists(t, path)
}

func TestProductRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := domain.Product{
		ID:       "p-arroz",
		Name:     "Arroz",
		Price:    decimal.RequireFromString("0.60"),
		Unit:     "lb",
		Keywords: []string{"arroz", "arroz blanco"},
	}
	require.NoError(t, s.SaveProduct(ctx, &product))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	got := products[0]
	assert.Equal(t, product.ID, got.ID)
	assert.Equal(t, product.Name, got.Name)
	assert.True(t, got.Price.Equal(product.Price), "price = %s, want %s", got.Price, product.Price)
	assert.Equal(t, product.Keywords, got.Keywords)
}

func TestSaveProductUpserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := domain.Product{ID: "p1", Name: "Arroz", Price: decimal.RequireFromString("0.60"), Unit: "lb", Keywords: []string{"arroz"}}
	require.NoError(t, s.SaveProduct(ctx, &product))

	product.Price = decimal.RequireFromString("0.75")
	require.NoError(t, s.SaveProduct(ctx, &product))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1, "upsert must not duplicate the row")
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("0.75")))
}

func TestUpdateProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := domain.Product{ID: "p1", Name: "Arroz", Price: decimal.RequireFromString("0.60"), Unit: "lb", Keywords: []string{"arroz"}}
	require.NoError(t, s.SaveProduct(ctx, &product))

	product.Name = "Arroz Premium"
	product.Price = decimal.RequireFromString("0.80")
	require.NoError(t, s.UpdateProduct(ctx, &product))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Arroz Premium", products[0].Name)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("0.80")))
}

func TestUpdateProductMissingNeverInserts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ghost := domain.Product{ID: "p-gone", Name: "Fantasma", Price: decimal.RequireFromString("1"), Unit: "unidad", Keywords: []string{"fantasma"}}
	err := s.UpdateProduct(ctx, &ghost)
	assert.True(t, errors.Is(err, domain.ErrProductNotFound), "err = %v", err)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products, "update of a missing row must not insert it")
}

func TestListProductsOrdersByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []domain.Product{
		{ID: "p1", Name: "Tomate", Price: decimal.RequireFromString("0.65"), Unit: "lb", Keywords: []string{"tomate"}},
		{ID: "p2", Name: "Arroz", Price: decimal.RequireFromString("0.60"), Unit: "lb", Keywords: []string{"arroz"}},
	} {
		require.NoError(t, s.SaveProduct(ctx, &p))
	}

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Arroz", products[0].Name)
	assert.Equal(t, "Tomate", products[1].Name)
}

func TestDeleteProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	product := domain.Product{ID: "p1", Name: "Arroz", Price: decimal.RequireFromString("0.60"), Unit: "lb", Keywords: []string{"arroz"}}
	require.NoError(t, s.SaveProduct(ctx, &product))

	require.NoError(t, s.DeleteProduct(ctx, "p1"))

	err := s.DeleteProduct(ctx, "p1")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound), "err = %v", err)
}

func TestReplaceProducts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	old := domain.Product{ID: "p-old", Name: "Viejo", Price: decimal.RequireFromString("1"), Unit: "unidad", Keywords: []string{"viejo"}}
	require.NoError(t, s.SaveProduct(ctx, &old))

	require.NoError(t, s.ReplaceProducts(ctx, []domain.Product{
		{ID: "p1", Name: "Arroz", Price: decimal.RequireFromString("0.60"), Unit: "lb", Keywords: []string{"arroz"}},
		{ID: "p2", Name: "Frijoles", Price: decimal.RequireFromString("1.20"), Unit: "lb", Keywords: []string{"frijoles"}},
	}))

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.NotEqual(t, "p-old", p.ID, "old catalog must be gone")
	}
}

func TestSaleRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	sale := domain.Sale{
		ID:        "s1",
		Date:      now.Format(time.RFC3339),
		Timestamp: now.Unix(),
		Items: []domain.InvoiceItem{{
			Quantity:  "2 lb",
			Product:   "Arroz",
			UnitPrice: decimal.RequireFromString("0.60"),
			Subtotal:  decimal.RequireFromString("1.20"),
		}},
		Total: decimal.RequireFromString("1.20"),
	}
	require.NoError(t, s.AddSale(ctx, &sale))

	sales, err := s.SalesBetween(ctx, now.Unix()-10, now.Unix()+10)
	require.NoError(t, err)
	require.Len(t, sales, 1)

	got := sales[0]
	assert.Equal(t, "s1", got.ID)
	assert.True(t, got.Total.Equal(sale.Total))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Arroz", got.Items[0].Product)
	assert.True(t, got.Items[0].Subtotal.Equal(decimal.RequireFromString("1.20")))
}

func TestSalesBetweenWindowAndOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

	addSale := func(id string, at time.Time, total string) {
		sale := domain.Sale{
			ID:        id,
			Date:      at.Format(time.RFC3339),
			Timestamp: at.Unix(),
			Total:     decimal.RequireFromString(total),
			Note:      "Venta manual",
		}
		require.NoError(t, s.AddSale(ctx, &sale))
	}

	addSale("s-old", base.AddDate(0, 0, -10), "1.00")
	addSale("s-mid", base.Add(-2*time.Hour), "2.00")
	addSale("s-new", base.Add(-1*time.Hour), "3.00")

	sales, err := s.SalesBetween(ctx, base.AddDate(0, 0, -1).Unix(), base.Unix())
	require.NoError(t, err)
	require.Len(t, sales, 2, "sale outside the window must be excluded")

	assert.Equal(t, "s-new", sales[0].ID, "newest first")
	assert.Equal(t, "s-mid", sales[1].ID)
}

func TestSalesBetweenEmptyWindow(t *testing.T) {
	s := newTestStore(t)

	sales, err := s.SalesBetween(context.Background(), 0, 1)
	require.NoError(t, err)
	assert.Empty(t, sales)
}
