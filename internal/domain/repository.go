package domain

import "context"

// CatalogRepository defines the interface for product catalog persistence
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	SaveProduct(ctx context.Context, product *Product) error
	// UpdateProduct rewrites an existing product in place; a missing ID
	// reports ErrProductNotFound and must never insert.
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id string) error
	// ReplaceProducts swaps the whole catalog atomically (reset/import).
	ReplaceProducts(ctx context.Context, products []Product) error
}

// SalesRepository defines the interface for the sales ledger
type SalesRepository interface {
	AddSale(ctx context.Context, sale *Sale) error
	// SalesBetween returns sales with from <= timestamp <= to, newest first.
	SalesBetween(ctx context.Context, from, to int64) ([]Sale, error)
}
