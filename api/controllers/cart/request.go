package cart

import (
	"github.com/google/uuid"

	cartsvc "github.com/brightcart/storefront-backend/internal/cart"
)

// AddItemRequest adds a quantity of a product variant to the cart.
type AddItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Name      string    `json:"name" validate:"required,max=256"`
	Slug      string    `json:"slug" validate:"required,max=256"`
	Image     string    `json:"image" validate:"omitempty,max=1024"`
	Color     string    `json:"color" validate:"omitempty,max=64"`
	Size      string    `json:"size" validate:"omitempty,max=64"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

func (p AddItemRequest) toInput() cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		ProductID: p.ProductID,
		Name:      p.Name,
		Slug:      p.Slug,
		Image:     p.Image,
		Color:     p.Color,
		Size:      p.Size,
		Quantity:  p.Quantity,
	}
}

// UpdateItemRequest changes the quantity of an existing line item.
type UpdateItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Color     string    `json:"color" validate:"omitempty,max=64"`
	Size      string    `json:"size" validate:"omitempty,max=64"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// RemoveItemRequest drops a line item from the cart.
type RemoveItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Color     string    `json:"color" validate:"omitempty,max=64"`
	Size      string    `json:"size" validate:"omitempty,max=64"`
}

// ShippingAddressRequest stores the checkout destination.
type ShippingAddressRequest struct {
	FullName   string `json:"fullName" validate:"required,max=128"`
	Street     string `json:"street" validate:"required,max=256"`
	City       string `json:"city" validate:"required,max=128"`
	Province   string `json:"province" validate:"required,max=128"`
	PostalCode string `json:"postalCode" validate:"required,max=32"`
	Country    string `json:"country" validate:"required,max=64"`
	Phone      string `json:"phone" validate:"required,max=32"`
}

func (p ShippingAddressRequest) toAddress() cartsvc.Address {
	return cartsvc.Address{
		FullName:   p.FullName,
		Street:     p.Street,
		City:       p.City,
		Province:   p.Province,
		PostalCode: p.PostalCode,
		Country:    p.Country,
		Phone:      p.Phone,
	}
}

// DeliveryOptionRequest selects a delivery option by index.
type DeliveryOptionRequest struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

// PaymentMethodRequest stores the payment method name.
type PaymentMethodRequest struct {
	Method string `json:"method" validate:"required,max=64"`
}
