package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "github.com/brightcart/storefront-backend/pkg/errors"
)

// StockPrice is the point-in-time snapshot the cart engine validates against.
type StockPrice struct {
	UnitPrice    decimal.Decimal
	CountInStock int
}

// Service exposes catalog read operations.
type Service interface {
	Lookup(ctx context.Context, productID uuid.UUID, color, size string) (*StockPrice, error)
	GetBySlug(ctx context.Context, slug string) (*Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
}

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	List(ctx context.Context, filter ListFilter) ([]Product, error)
}

type service struct {
	repo productFinder
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo productFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// Lookup resolves the live unit price and stock count for a sellable variant.
// Unknown products, unpublished products, and color/size combinations the
// product does not offer all surface as not found.
func (s *service) Lookup(ctx context.Context, productID uuid.UUID, color, size string) (*StockPrice, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load product")
	}
	if !product.IsPublished {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	if !product.HasColor(color) || !product.HasSize(size) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product variant not found")
	}

	return &StockPrice{
		UnitPrice:    product.Price,
		CountInStock: product.CountInStock,
	}, nil
}

// GetBySlug returns a published product for storefront detail pages.
func (s *service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load product")
	}
	return product, nil
}

// GetByID returns a product by id without the published filter. Handlers
// serving the public API should prefer GetBySlug.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load product")
	}
	return product, nil
}

// List returns published products matching the filter.
func (s *service) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list products")
	}
	return products, nil
}
