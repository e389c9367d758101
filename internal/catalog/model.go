package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is the catalog record backing cart lookups and storefront listings.
type Product struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string          `gorm:"not null" json:"name"`
	Slug         string          `gorm:"uniqueIndex;not null" json:"slug"`
	Category     string          `gorm:"not null" json:"category"`
	Brand        string          `json:"brand"`
	Description  string          `json:"description"`
	Images       pq.StringArray  `gorm:"type:text[]" json:"images"`
	Colors       pq.StringArray  `gorm:"type:text[]" json:"colors"`
	Sizes        pq.StringArray  `gorm:"type:text[]" json:"sizes"`
	Tags         pq.StringArray  `gorm:"type:text[]" json:"tags"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	ListPrice    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"listPrice"`
	CountInStock int             `gorm:"not null;default:0" json:"countInStock"`
	AvgRating    float64         `gorm:"not null;default:0" json:"avgRating"`
	NumReviews   int             `gorm:"not null;default:0" json:"numReviews"`
	IsPublished  bool            `gorm:"not null;default:false" json:"isPublished"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName pins the table used by goose migrations.
func (Product) TableName() string { return "products" }

// HasColor reports whether the product offers the given color. Products
// without configured colors accept any requested value.
func (p *Product) HasColor(color string) bool {
	if color == "" || len(p.Colors) == 0 {
		return true
	}
	for _, c := range p.Colors {
		if c == color {
			return true
		}
	}
	return false
}

// HasSize reports whether the product offers the given size.
func (p *Product) HasSize(size string) bool {
	if size == "" || len(p.Sizes) == 0 {
		return true
	}
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}
