package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brightcart/storefront-backend/internal/repo"
)

// Repository provides persistence for catalog products.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads a product by primary key, including unpublished rows.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug loads a published product by its storefront slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	var product Product
	err := r.DB(ctx).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListFilter narrows List results. Zero values mean "no filter".
type ListFilter struct {
	Category string
	Tag      string
	Query    string
	Limit    int
	Offset   int
}

// List returns published products matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]Product, error) {
	tx := r.DB(ctx).Where("is_published = ?", true)
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if filter.Tag != "" {
		tx = tx.Where("? = ANY(tags)", filter.Tag)
	}
	if filter.Query != "" {
		tx = tx.Where("name ILIKE ?", "%"+filter.Query+"%")
	}
	if filter.Limit > 0 {
		tx = tx.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		tx = tx.Offset(filter.Offset)
	}

	var products []Product
	if err := tx.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByIDs loads published products for the given ids, preserving no
// particular order. Missing ids are skipped silently.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []Product
	err := r.DB(ctx).
		Where("id IN ? AND is_published = ?", ids, true).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}
