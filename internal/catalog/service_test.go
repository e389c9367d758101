package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/brightcart/storefront-backend/pkg/errors"
)

type stubFinder struct {
	byID   map[uuid.UUID]*Product
	bySlug map[string]*Product
	err    error
}

func (s *stubFinder) FindByID(_ context.Context, id uuid.UUID) (*Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	if p, ok := s.byID[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubFinder) FindBySlug(_ context.Context, slug string) (*Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	if p, ok := s.bySlug[slug]; ok && p.IsPublished {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubFinder) List(_ context.Context, _ ListFilter) ([]Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []Product
	for _, p := range s.byID {
		if p.IsPublished {
			out = append(out, *p)
		}
	}
	return out, nil
}

func testProduct(published bool) *Product {
	return &Product{
		ID:           uuid.New(),
		Name:         "Canvas Sneakers",
		Slug:         "canvas-sneakers",
		Category:     "Shoes",
		Colors:       []string{"white", "black"},
		Sizes:        []string{"9", "10"},
		Price:        decimal.RequireFromString("10.00"),
		CountInStock: 5,
		IsPublished:  published,
	}
}

func TestLookup_ReturnsStockAndPrice(t *testing.T) {
	product := testProduct(true)
	svc, err := NewService(&stubFinder{byID: map[uuid.UUID]*Product{product.ID: product}})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	sp, err := svc.Lookup(context.Background(), product.ID, "white", "10")
	if err != nil {
		t.Fatalf("expected lookup to succeed, got %v", err)
	}
	if !sp.UnitPrice.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected unit price 10.00, got %s", sp.UnitPrice)
	}
	if sp.CountInStock != 5 {
		t.Fatalf("expected stock 5, got %d", sp.CountInStock)
	}
}

func TestLookup_UnknownProductNotFound(t *testing.T) {
	svc, _ := NewService(&stubFinder{byID: map[uuid.UUID]*Product{}})

	_, err := svc.Lookup(context.Background(), uuid.New(), "", "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLookup_UnpublishedProductNotFound(t *testing.T) {
	product := testProduct(false)
	svc, _ := NewService(&stubFinder{byID: map[uuid.UUID]*Product{product.ID: product}})

	_, err := svc.Lookup(context.Background(), product.ID, "", "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLookup_UnknownVariantNotFound(t *testing.T) {
	product := testProduct(true)
	svc, _ := NewService(&stubFinder{byID: map[uuid.UUID]*Product{product.ID: product}})

	_, err := svc.Lookup(context.Background(), product.ID, "green", "10")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown color, got %v", err)
	}

	_, err = svc.Lookup(context.Background(), product.ID, "white", "13")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown size, got %v", err)
	}
}

func TestLookup_EmptyVariantAccepted(t *testing.T) {
	product := testProduct(true)
	product.Colors = nil
	product.Sizes = nil
	svc, _ := NewService(&stubFinder{byID: map[uuid.UUID]*Product{product.ID: product}})

	if _, err := svc.Lookup(context.Background(), product.ID, "anything", "44"); err != nil {
		t.Fatalf("expected products without variants to accept any value, got %v", err)
	}
}

func TestGetBySlug_Validation(t *testing.T) {
	svc, _ := NewService(&stubFinder{})

	_, err := svc.GetBySlug(context.Background(), "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetBySlug_PublishedOnly(t *testing.T) {
	product := testProduct(true)
	svc, _ := NewService(&stubFinder{bySlug: map[string]*Product{product.Slug: product}})

	got, err := svc.GetBySlug(context.Background(), product.Slug)
	if err != nil {
		t.Fatalf("expected slug lookup to succeed, got %v", err)
	}
	if got.ID != product.ID {
		t.Fatalf("expected product %s, got %s", product.ID, got.ID)
	}

	_, err = svc.GetBySlug(context.Background(), "missing-slug")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for missing slug, got %v", err)
	}
}
