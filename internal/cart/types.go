package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brightcart/storefront-backend/internal/delivery"
)

// ItemKey identifies a purchasable variant inside a cart. A cart holds at
// most one line item per key.
type ItemKey struct {
	ProductID uuid.UUID `json:"productId"`
	Color     string    `json:"color"`
	Size      string    `json:"size"`
}

// LineItem is one variant entry in a cart. UnitPrice and CountInStock are
// snapshots taken from the catalog at the time the item was added.
type LineItem struct {
	ClientID     string          `json:"clientId"`
	ProductID    uuid.UUID       `json:"productId"`
	Name         string          `json:"name"`
	Slug         string          `json:"slug"`
	Image        string          `json:"image"`
	Color        string          `json:"color"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	CountInStock int             `json:"countInStock"`
}

// Key returns the variant key for the line item.
func (li LineItem) Key() ItemKey {
	return ItemKey{ProductID: li.ProductID, Color: li.Color, Size: li.Size}
}

// Address is the shipping destination chosen during checkout.
type Address struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// Cart is the full session cart: the ordered item sequence plus the derived
// pricing and delivery state. ShippingPrice, TaxPrice and
// ExpectedDeliveryDate are nil until an address and at least one item exist.
type Cart struct {
	SessionID            string            `json:"sessionId"`
	Items                []LineItem        `json:"items"`
	ItemsPrice           decimal.Decimal   `json:"itemsPrice"`
	ShippingPrice        *decimal.Decimal  `json:"shippingPrice,omitempty"`
	TaxPrice             *decimal.Decimal  `json:"taxPrice,omitempty"`
	TotalPrice           decimal.Decimal   `json:"totalPrice"`
	PaymentMethod        string            `json:"paymentMethod,omitempty"`
	ShippingAddress      *Address          `json:"shippingAddress,omitempty"`
	DeliveryDateIndex    *int              `json:"deliveryDateIndex,omitempty"`
	ExpectedDeliveryDate *time.Time        `json:"expectedDeliveryDate,omitempty"`
	DeliveryOptions      []delivery.Option `json:"deliveryOptions,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// NewCart returns an empty cart for the session.
func NewCart(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID:  sessionID,
		Items:      []LineItem{},
		ItemsPrice: decimal.Zero,
		TotalPrice: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Clone deep-copies the cart so a mutation can be prepared and discarded
// without touching the loaded state.
func (c *Cart) Clone() *Cart {
	next := *c
	next.Items = make([]LineItem, len(c.Items))
	copy(next.Items, c.Items)
	if c.ShippingAddress != nil {
		addr := *c.ShippingAddress
		next.ShippingAddress = &addr
	}
	if c.ShippingPrice != nil {
		v := *c.ShippingPrice
		next.ShippingPrice = &v
	}
	if c.TaxPrice != nil {
		v := *c.TaxPrice
		next.TaxPrice = &v
	}
	if c.DeliveryDateIndex != nil {
		v := *c.DeliveryDateIndex
		next.DeliveryDateIndex = &v
	}
	if c.ExpectedDeliveryDate != nil {
		v := *c.ExpectedDeliveryDate
		next.ExpectedDeliveryDate = &v
	}
	if c.DeliveryOptions != nil {
		next.DeliveryOptions = make([]delivery.Option, len(c.DeliveryOptions))
		copy(next.DeliveryOptions, c.DeliveryOptions)
	}
	return &next
}

// findItem returns the index of the line item matching key, or -1.
func (c *Cart) findItem(key ItemKey) int {
	for i := range c.Items {
		if c.Items[i].Key() == key {
			return i
		}
	}
	return -1
}

// HasAddress reports whether a shipping destination has been chosen.
func (c *Cart) HasAddress() bool {
	return c.ShippingAddress != nil
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
