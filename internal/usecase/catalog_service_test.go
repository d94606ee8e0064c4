package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tiendafacil/backend/internal/domain"
	"github.com/tiendafacil/backend/internal/infrastructure/cache"
)

// fakeCatalogRepo is an in-memory CatalogRepository for service tests.
type fakeCatalogRepo struct {
	products  []domain.Product
	listCalls int
	failList  bool
}

func (r *fakeCatalogRepo) ListProducts(_ context.Context) ([]domain.Product, error) {
	r.listCalls++
	if r.failList {
		return nil, domain.ErrStorageFailure
	}
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *fakeCatalogRepo) SaveProduct(_ context.Context, product *domain.Product) error {
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = *product
			return nil
		}
	}
	r.products = append(r.products, *product)
	return nil
}

func (r *fakeCatalogRepo) UpdateProduct(_ context.Context, product *domain.Product) error {
	for i, p := range r.products {
		if p.ID == product.ID {
			r.products[i] = *product
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (r *fakeCatalogRepo) DeleteProduct(_ context.Context, id string) error {
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (r *fakeCatalogRepo) ReplaceProducts(_ context.Context, products []domain.Product) error {
	r.products = make([]domain.Product, len(products))
	copy(r.products, products)
	return nil
}

func newCatalogFixture() (*CatalogService, *fakeCatalogRepo) {
	repo := &fakeCatalogRepo{}
	return NewCatalogService(repo, cache.NewCatalogCache(time.Minute)), repo
}

func TestCatalogSnapshotCaching(t *testing.T) {
	svc, repo := newCatalogFixture()
	repo.products = DefaultProducts()
	ctx := context.Background()

	if _, err := svc.Snapshot(ctx); err != nil {
		t.Fatalf("first Snapshot: %v", err)
	}
	if _, err := svc.Snapshot(ctx); err != nil {
		t.Fatalf("second Snapshot: %v", err)
	}
	if repo.listCalls != 1 {
		t.Errorf("repo list calls = %d, want 1 (second read served from cache)", repo.listCalls)
	}
}

func TestCatalogWritesInvalidateSnapshot(t *testing.T) {
	svc, repo := newCatalogFixture()
	repo.products = DefaultProducts()
	ctx := context.Background()

	if _, err := svc.Snapshot(ctx); err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if _, err := svc.Add(ctx, domain.Product{Name: "Pan"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	snapshot, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot after Add: %v", err)
	}
	if len(snapshot) != len(DefaultProducts())+1 {
		t.Errorf("snapshot size = %d, want %d", len(snapshot), len(DefaultProducts())+1)
	}
}

func TestCatalogAdd(t *testing.T) {
	svc, _ := newCatalogFixture()
	ctx := context.Background()

	t.Run("assigns id and defaults the unit", func(t *testing.T) {
		product, err := svc.Add(ctx, domain.Product{Name: "Pan Dulce", Price: decimal.RequireFromString("0.50")})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		if product.ID == "" {
			t.Error("expected an assigned id")
		}
		if product.Unit != "unidad" {
			t.Errorf("unit = %q, want unidad", product.Unit)
		}
	})

	t.Run("derives a keyword from the name", func(t *testing.T) {
		product, err := svc.Add(ctx, domain.Product{Name: "Café Molido"})
		if err != nil {
			t.Fatalf("Add: %v", err)
		}
		found := false
		for _, kw := range product.Keywords {
			if kw == "cafe molido" {
				found = true
			}
		}
		if !found {
			t.Errorf("keywords = %v, want to include %q", product.Keywords, "cafe molido")
		}
	})

	t.Run("rejects blank names", func(t *testing.T) {
		_, err := svc.Add(ctx, domain.Product{Name: "   "})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("err = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("rejects negative prices", func(t *testing.T) {
		_, err := svc.Add(ctx, domain.Product{Name: "Pan", Price: decimal.RequireFromString("-1")})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("err = %v, want ErrInvalidRequest", err)
		}
	})
}

func TestCatalogUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps the id and persists new fields", func(t *testing.T) {
		svc, repo := newCatalogFixture()
		repo.products = DefaultProducts()

		updated, err := svc.Update(ctx, "p-arroz", domain.Product{
			Name:  "Arroz Premium",
			Price: decimal.RequireFromString("0.80"),
			Unit:  "lb",
		})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated.ID != "p-arroz" {
			t.Errorf("id = %q, want p-arroz", updated.ID)
		}
		if updated.Name != "Arroz Premium" {
			t.Errorf("name = %q, want Arroz Premium", updated.Name)
		}
	})

	t.Run("unknown id returns not found", func(t *testing.T) {
		svc, _ := newCatalogFixture()
		_, err := svc.Update(ctx, "p-nope", domain.Product{Name: "Pan"})
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("err = %v, want ErrProductNotFound", err)
		}
	})

	t.Run("update of a deleted product does not resurrect it", func(t *testing.T) {
		svc, repo := newCatalogFixture()
		repo.products = DefaultProducts()

		if err := svc.Delete(ctx, "p-arroz"); err != nil {
			t.Fatalf("Delete: %v", err)
		}

		_, err := svc.Update(ctx, "p-arroz", domain.Product{Name: "Arroz Premium"})
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Fatalf("err = %v, want ErrProductNotFound", err)
		}
		for _, p := range repo.products {
			if p.ID == "p-arroz" {
				t.Error("deleted product reappeared after update")
			}
		}
	})

	t.Run("missing id is invalid", func(t *testing.T) {
		svc, _ := newCatalogFixture()
		_, err := svc.Update(ctx, "", domain.Product{Name: "Pan"})
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("err = %v, want ErrInvalidRequest", err)
		}
	})
}

func TestCatalogDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newCatalogFixture()
	repo.products = DefaultProducts()

	if err := svc.Delete(ctx, "p-arroz"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, "p-arroz"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("second delete err = %v, want ErrProductNotFound", err)
	}
}

func TestCatalogResetAndImport(t *testing.T) {
	ctx := context.Background()

	t.Run("reset restores the defaults", func(t *testing.T) {
		svc, repo := newCatalogFixture()
		repo.products = []domain.Product{{ID: "x", Name: "Custom"}}

		defaults, err := svc.Reset(ctx)
		if err != nil {
			t.Fatalf("Reset: %v", err)
		}
		if len(defaults) != len(DefaultProducts()) {
			t.Errorf("defaults = %d products, want %d", len(defaults), len(DefaultProducts()))
		}
		if len(repo.products) != len(DefaultProducts()) {
			t.Errorf("stored = %d products, want %d", len(repo.products), len(DefaultProducts()))
		}
	})

	t.Run("import replaces the catalog and fills ids", func(t *testing.T) {
		svc, repo := newCatalogFixture()
		repo.products = DefaultProducts()

		err := svc.Import(ctx, []domain.Product{
			{Name: "Pan"},
			{ID: "p-cola", Name: "Cola", Price: decimal.RequireFromString("1.00")},
		})
		if err != nil {
			t.Fatalf("Import: %v", err)
		}
		if len(repo.products) != 2 {
			t.Fatalf("stored = %d products, want 2", len(repo.products))
		}
		if repo.products[0].ID == "" {
			t.Error("imported product without id must get one assigned")
		}
		if repo.products[1].ID != "p-cola" {
			t.Errorf("id = %q, want the provided p-cola kept", repo.products[1].ID)
		}
	})

	t.Run("import rejects an empty list", func(t *testing.T) {
		svc, _ := newCatalogFixture()
		if err := svc.Import(ctx, nil); !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("err = %v, want ErrInvalidRequest", err)
		}
	})
}

func TestEnsureSeeded(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds an empty catalog", func(t *testing.T) {
		svc, repo := newCatalogFixture()
		if err := svc.EnsureSeeded(ctx); err != nil {
			t.Fatalf("EnsureSeeded: %v", err)
		}
		if len(repo.products) != len(DefaultProducts()) {
			t.Errorf("stored = %d products, want %d", len(repo.products), len(DefaultProducts()))
		}
	})

	t.Run("leaves an existing catalog alone", func(t *testing.T) {
		svc, repo := newCatalogFixture()
		repo.products = []domain.Product{{ID: "x", Name: "Custom"}}
		if err := svc.EnsureSeeded(ctx); err != nil {
			t.Fatalf("EnsureSeeded: %v", err)
		}
		if len(repo.products) != 1 {
			t.Errorf("stored = %d products, want the 1 existing", len(repo.products))
		}
	})
}

func TestKeywordFromName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips accents", "Azúcar", "azucar"},
		{"strips punctuation", "Aceite (Trasegado)", "aceite trasegado"},
		{"collapses spaces", "  Pan   Dulce ", "pan dulce"},
		{"empty input", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keywordFromName(tt.in); got != tt.want {
				t.Errorf("keywordFromName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDefaultProductsKeywordInvariant(t *testing.T) {
	for _, product := range DefaultProducts() {
		if len(product.Keywords) == 0 {
			t.Errorf("product %s has no keywords", product.ID)
		}
		for _, kw := range product.Keywords {
			if kw != keywordFromName(kw) {
				t.Errorf("product %s keyword %q is not normalized", product.ID, kw)
			}
		}
	}
}
