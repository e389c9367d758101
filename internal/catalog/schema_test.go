package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openMigratedDB replays the products goose migration against in-memory
// sqlite, rewriting Postgres-only constructs, so repository queries are
// exercised against the schema a migrated deployment gets.
func openMigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join("..", "..", "pkg", "migrate", "migrations", "20250901000002_create_products.sql"))
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}

	up := string(raw)
	if i := strings.Index(up, "-- +goose Down"); i >= 0 {
		up = up[:i]
	}
	up = strings.NewReplacer(
		"DEFAULT gen_random_uuid()", "",
		"DEFAULT now()", "DEFAULT CURRENT_TIMESTAMP",
		"TIMESTAMPTZ", "DATETIME",
		"TEXT[]", "TEXT",
		" UUID ", " TEXT ",
	).Replace(up)

	for _, chunk := range strings.Split(up, ";") {
		var kept []string
		for _, line := range strings.Split(chunk, "\n") {
			if strings.HasPrefix(strings.TrimSpace(line), "--") {
				continue
			}
			kept = append(kept, line)
		}
		stmt := strings.TrimSpace(strings.Join(kept, "\n"))
		if stmt == "" || strings.HasPrefix(stmt, "CREATE EXTENSION") {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}
	return db
}

func TestFindByIDAgainstMigratedSchema(t *testing.T) {
	db := openMigratedDB(t)
	repo := NewRepository(db)

	product := &Product{
		ID:           uuid.New(),
		Name:         "Migrated Schema Shirt",
		Slug:         "migrated-schema-shirt",
		Category:     "T-Shirts",
		Brand:        "BrightCart",
		Colors:       []string{"green"},
		Sizes:        []string{"M"},
		Price:        decimal.RequireFromString("19.99"),
		ListPrice:    decimal.RequireFromString("24.99"),
		CountInStock: 3,
		IsPublished:  true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	found, err := repo.FindByID(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if found.Slug != product.Slug {
		t.Fatalf("expected slug %s, got %s", product.Slug, found.Slug)
	}
	if found.CountInStock != 3 {
		t.Fatalf("expected stock 3, got %d", found.CountInStock)
	}
}

func TestFindBySlugAgainstMigratedSchema(t *testing.T) {
	db := openMigratedDB(t)
	repo := NewRepository(db)

	product := &Product{
		ID:          uuid.New(),
		Name:        "Hidden Hoodie",
		Slug:        "hidden-hoodie",
		Category:    "Hoodies",
		Price:       decimal.RequireFromString("39.99"),
		IsPublished: false,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	if _, err := repo.FindBySlug(context.Background(), "hidden-hoodie"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for unpublished slug, got %v", err)
	}
}
