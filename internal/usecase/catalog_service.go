package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain"
	"github.com/tiendafacil/backend/internal/infrastructure/cache"
)

var (
	keywordPunctRegex = regexp.MustCompile(`[^\w\s]`)
	keywordSpaceRegex = regexp.MustCompile(`\s+`)
)

// CatalogService manages the product catalog and serves read-only snapshots
// to the assistant through a TTL cache. Any write invalidates the snapshot.
type CatalogService struct {
	repo      domain.CatalogRepository
	snapshots *cache.CatalogCache
}

// NewCatalogService creates a new catalog service with dependencies
func NewCatalogService(repo domain.CatalogRepository, snapshots *cache.CatalogCache) *CatalogService {
	return &CatalogService{repo: repo, snapshots: snapshots}
}

// Snapshot returns the catalog the parser should match against, served from
// cache when fresh.
func (s *CatalogService) Snapshot(ctx context.Context) ([]domain.Product, error) {
	if products, ok := s.snapshots.Get(); ok {
		return products, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	s.snapshots.Set(products)
	return products, nil
}

// List returns the catalog straight from storage (admin view).
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

// Add validates and persists a new product, assigning it an ID.
func (s *CatalogService) Add(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := sanitizeProduct(&product); err != nil {
		return domain.Product{}, err
	}
	product.ID = uuid.New().String()

	if err := s.repo.SaveProduct(ctx, &product); err != nil {
		return domain.Product{}, fmt.Errorf("saving product: %w", err)
	}
	s.snapshots.Invalidate()
	return product, nil
}

// Update replaces an existing product's fields, keeping its ID. The write
// targets the stored row directly, so an update racing a delete fails with
// ErrProductNotFound instead of re-inserting the product.
func (s *CatalogService) Update(ctx context.Context, id string, product domain.Product) (domain.Product, error) {
	if id == "" {
		return domain.Product{}, fmt.Errorf("%w: missing product id", domain.ErrInvalidRequest)
	}
	if err := sanitizeProduct(&product); err != nil {
		return domain.Product{}, err
	}

	product.ID = id
	if err := s.repo.UpdateProduct(ctx, &product); err != nil {
		return domain.Product{}, err
	}
	s.snapshots.Invalidate()
	return product, nil
}

// Delete removes a product from the catalog.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing product id", domain.ErrInvalidRequest)
	}
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.snapshots.Invalidate()
	return nil
}

// Reset restores the default catalog, discarding all edits.
func (s *CatalogService) Reset(ctx context.Context) ([]domain.Product, error) {
	defaults := DefaultProducts()
	if err := s.repo.ReplaceProducts(ctx, defaults); err != nil {
		return nil, fmt.Errorf("resetting catalog: %w", err)
	}
	s.snapshots.Invalidate()
	return defaults, nil
}

// Import replaces the whole catalog with an uploaded product list.
func (s *CatalogService) Import(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return fmt.Errorf("%w: empty product list", domain.ErrInvalidRequest)
	}
	for i := range products {
		if err := sanitizeProduct(&products[i]); err != nil {
			return err
		}
		if products[i].ID == "" {
			products[i].ID = uuid.New().String()
		}
	}

	if err := s.repo.ReplaceProducts(ctx, products); err != nil {
		return fmt.Errorf("importing catalog: %w", err)
	}
	s.snapshots.Invalidate()
	return nil
}

// EnsureSeeded loads the default catalog on first run so the assistant can
// answer something out of the box.
func (s *CatalogService) EnsureSeeded(ctx context.Context) error {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if len(products) > 0 {
		return nil
	}

	slog.Info("empty catalog, seeding defaults")
	return s.repo.ReplaceProducts(ctx, DefaultProducts())
}

// sanitizeProduct validates required fields and normalizes the keyword set,
// guaranteeing at least one keyword derived from the product name.
func sanitizeProduct(product *domain.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidRequest)
	}
	if product.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(product.Unit) == "" {
		product.Unit = "unidad"
	}

	nameKeyword := keywordFromName(product.Name)
	seen := make(map[string]bool)
	keywords := make([]string, 0, len(product.Keywords)+1)
	for _, keyword := range product.Keywords {
		kw := keywordFromName(keyword)
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		keywords = append(keywords, kw)
	}
	if nameKeyword != "" && !seen[nameKeyword] {
		keywords = append(keywords, nameKeyword)
	}
	product.Keywords = keywords
	return nil
}

// keywordFromName turns display text into a match keyword: normalized,
// punctuation-free, single-spaced.
func keywordFromName(name string) string {
	keyword := Normalize(name)
	keyword = keywordPunctRegex.ReplaceAllString(keyword, " ")
	keyword = keywordSpaceRegex.ReplaceAllString(keyword, " ")
	return strings.TrimSpace(keyword)
}

// DefaultProducts is the seed catalog of a small Spanish-speaking tienda.
// Keywords are already normalized.
func DefaultProducts() []domain.Product {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	return []domain.Product{
		{ID: "p-arroz", Name: "Arroz", Price: price("0.60"), Unit: "lb", Keywords: []string{"arroz"}},
		{ID: "p-frijoles", Name: "Frijoles", Price: price("1.20"), Unit: "lb", Keywords: []string{"frijoles", "frijol"}},
		{ID: "p-aceite", Name: "Aceite (Trasegado)", Price: price("1.50"), Unit: "botella", Keywords: []string{"aceite", "aceite trasegado"}},
		{ID: "p-aceite-mazola", Name: "Aceite Mazola", Price: price("3.25"), Unit: "botella", Keywords: []string{"aceite mazola", "mazola"}},
		{ID: "p-azucar", Name: "Azúcar", Price: price("0.55"), Unit: "lb", Keywords: []string{"azucar"}},
		{ID: "p-sal", Name: "Sal", Price: price("0.40"), Unit: "lb", Keywords: []string{"sal"}},
		{ID: "p-cafe", Name: "Café", Price: price("2.75"), Unit: "bolsa", Keywords: []string{"cafe"}},
		{ID: "p-sopa", Name: "Sopa Maruchan", Price: price("0.75"), Unit: "unidad", Keywords: []string{"sopa", "maruchan", "sopa maruchan"}},
		{ID: "p-huevos", Name: "Huevos", Price: price("0.25"), Unit: "unidad", Keywords: []string{"huevo", "huevos"}},
		{ID: "p-leche", Name: "Leche", Price: price("1.10"), Unit: "litro", Keywords: []string{"leche"}},
		{ID: "p-cebolla", Name: "Cebolla", Price: price("0.50"), Unit: "lb", Keywords: []string{"cebolla"}},
		{ID: "p-tomate", Name: "Tomate", Price: price("0.65"), Unit: "lb", Keywords: []string{"tomate"}},
		{ID: "p-chulas", Name: "Chulas", Price: price("0.50"), Unit: "unidad", Keywords: []string{"chula", "chulas"}},
		{ID: "p-ciruela", Name: "Ciruela", Price: price("0.35"), Unit: "lb", Keywords: []string{"ciruela"}},
		{ID: "p-bandeja-dipsa", Name: "Bandeja Dipsa", Price: price("2.00"), Unit: "unidad", Keywords: []string{"bandeja dipsa", "dipsa"}},
		{ID: "p-arroz-bolsa", Name: "Arroz Bolsa 2lb", Price: price("1.15"), Unit: "unidad", Keywords: []string{"bolsa de 2 libras", "bolsa de 2lb", "arroz bolsa 2lb"}},
	}
}
