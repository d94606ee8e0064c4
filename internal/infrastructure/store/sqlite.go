// Package store provides a SQLite-backed implementation of the catalog and
// sales repositories.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO

	"github.com/tiendafacil/backend/internal/domain"
)

// Ensure SQLiteStore implements both repositories
var (
	_ domain.CatalogRepository = (*SQLiteStore)(nil)
	_ domain.SalesRepository   = (*SQLiteStore)(nil)
)

// SQLiteStore persists products and sales in a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a SQLiteStore at the given path, creating parent directories
// and running migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListProducts returns the whole catalog ordered by name.
func (s *SQLiteStore) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, price, unit, keywords FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// SaveProduct inserts or updates a product by ID.
func (s *SQLiteStore) SaveProduct(ctx context.Context, product *domain.Product) error {
	keywords, err := json.Marshal(product.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, unit, keywords)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			price = excluded.price,
			unit = excluded.unit,
			keywords = excluded.keywords`,
		product.ID, product.Name, product.Price.String(), product.Unit, string(keywords))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// UpdateProduct rewrites an existing product; missing IDs report
// ErrProductNotFound. Unlike SaveProduct this never inserts, so an update
// racing a delete cannot resurrect the row.
func (s *SQLiteStore) UpdateProduct(ctx context.Context, product *domain.Product) error {
	keywords, err := json.Marshal(product.Keywords)
	if err != nil {
		return fmt.Errorf("encoding keywords: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, price = ?, unit = ?, keywords = ?
		WHERE id = ?`,
		product.Name, product.Price.String(), product.Unit, string(keywords), product.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, product.ID)
	}
	return nil
}

// DeleteProduct removes a product; missing IDs report ErrProductNotFound.
func (s *SQLiteStore) DeleteProduct(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return nil
}

// ReplaceProducts swaps the whole catalog in one transaction.
func (s *SQLiteStore) ReplaceProducts(ctx context.Context, products []domain.Product) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM products`); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	for i := range products {
		keywords, err := json.Marshal(products[i].Keywords)
		if err != nil {
			return fmt.Errorf("encoding keywords: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO products (id, name, price, unit, keywords)
			VALUES (?, ?, ?, ?, ?)`,
			products[i].ID, products[i].Name, products[i].Price.String(),
			products[i].Unit, string(keywords))
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
		}
	}

	return tx.Commit()
}

// AddSale appends one sale to the ledger.
func (s *SQLiteStore) AddSale(ctx context.Context, sale *domain.Sale) error {
	items, err := json.Marshal(sale.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sales (id, date, timestamp, total, note, items)
		VALUES (?, ?, ?, ?, ?, ?)`,
		sale.ID, sale.Date, sale.Timestamp, sale.Total.String(), sale.Note, string(items))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	return nil
}

// SalesBetween returns sales inside [from, to], newest first.
func (s *SQLiteStore) SalesBetween(ctx context.Context, from, to int64) ([]domain.Sale, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, timestamp, total, note, items
		FROM sales
		WHERE timestamp BETWEEN ? AND ?
		ORDER BY timestamp DESC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var sale domain.Sale
		var total, items string
		if err := rows.Scan(&sale.ID, &sale.Date, &sale.Timestamp, &total, &sale.Note, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
		}
		sale.Total, err = decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("decoding total: %w", err)
		}
		if err := json.Unmarshal([]byte(items), &sale.Items); err != nil {
			return nil, fmt.Errorf("decoding items: %w", err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

func scanProduct(rows *sql.Rows) (domain.Product, error) {
	var product domain.Product
	var price, keywords string
	if err := rows.Scan(&product.ID, &product.Name, &price, &product.Unit, &keywords); err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrStorageFailure, err)
	}

	var err error
	product.Price, err = decimal.NewFromString(price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("decoding price: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &product.Keywords); err != nil {
		return domain.Product{}, fmt.Errorf("decoding keywords: %w", err)
	}
	return product, nil
}
