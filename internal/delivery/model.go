package delivery

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OptionRecord is the persisted shape of a delivery option.
type OptionRecord struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                 string          `gorm:"uniqueIndex;not null"`
	DaysToDeliver        int             `gorm:"not null"`
	ShippingPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	FreeShippingMinPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	SortOrder            int             `gorm:"not null;default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName pins the table used by goose migrations.
func (OptionRecord) TableName() string { return "delivery_options" }

// Option is the wire shape of a delivery choice offered to shoppers.
type Option struct {
	Name                 string          `json:"name"`
	DaysToDeliver        int             `json:"daysToDeliver"`
	ShippingPrice        decimal.Decimal `json:"shippingPrice"`
	FreeShippingMinPrice decimal.Decimal `json:"freeShippingMinPrice"`
}

func (r OptionRecord) toOption() Option {
	return Option{
		Name:                 r.Name,
		DaysToDeliver:        r.DaysToDeliver,
		ShippingPrice:        r.ShippingPrice,
		FreeShippingMinPrice: r.FreeShippingMinPrice,
	}
}
