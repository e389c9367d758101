package delivery

import (
	"context"

	"gorm.io/gorm"

	"github.com/brightcart/storefront-backend/internal/repo"
)

// Repository provides persistence for delivery options.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// ListOptions returns every configured delivery option, fastest first.
func (r *Repository) ListOptions(ctx context.Context) ([]OptionRecord, error) {
	var records []OptionRecord
	err := r.DB(ctx).Order("sort_order ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
