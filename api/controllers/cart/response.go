package cart

import (
	cartsvc "github.com/brightcart/storefront-backend/internal/cart"
)

// CartView is the wire shape of a cart snapshot.
type CartView struct {
	*cartsvc.Cart
}

// AddItemView is the wire shape of a successful add: the refreshed cart plus
// the client id of the affected line item.
type AddItemView struct {
	ClientID string `json:"clientId"`
	*cartsvc.Cart
}

func newCartView(c *cartsvc.Cart) CartView {
	return CartView{Cart: c}
}

func newAddItemView(c *cartsvc.Cart, clientID string) AddItemView {
	return AddItemView{ClientID: clientID, Cart: c}
}
