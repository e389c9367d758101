package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brightcart/storefront-backend/internal/catalog"
	"github.com/brightcart/storefront-backend/internal/delivery"
	pkgerrors "github.com/brightcart/storefront-backend/pkg/errors"
	"github.com/brightcart/storefront-backend/pkg/metrics"
	"github.com/brightcart/storefront-backend/pkg/money"
)

type stockPriceLookup interface {
	Lookup(ctx context.Context, productID uuid.UUID, color, size string) (*catalog.StockPrice, error)
}

type estimator interface {
	Estimate(ctx context.Context, input delivery.EstimateInput) (*delivery.Quote, error)
}

// Engine owns every cart mutation. Mutations are serialized per session and
// applied all-or-nothing: the stored cart only changes after stock checks,
// aggregate recomputation and the estimator call have all succeeded.
type Engine struct {
	store     Store
	stock     stockPriceLookup
	estimator estimator
	locks     *sessionLocks
	metrics   *metrics.CartMetrics
}

// NewEngine builds a cart engine. metrics may be nil.
func NewEngine(store Store, stock stockPriceLookup, est estimator, m *metrics.CartMetrics) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock price lookup required")
	}
	if est == nil {
		return nil, fmt.Errorf("delivery estimator required")
	}
	return &Engine{
		store:     store,
		stock:     stock,
		estimator: est,
		locks:     newSessionLocks(),
		metrics:   m,
	}, nil
}

// AddItemInput carries the variant to add plus display snapshot fields. The
// unit price and stock ceiling come from the catalog, never from the caller.
type AddItemInput struct {
	ProductID uuid.UUID
	Name      string
	Slug      string
	Image     string
	Color     string
	Size      string
	Quantity  int
}

// AddItem adds the requested quantity of a variant. Quantities merge into an
// existing line item for the same (product, color, size) key; the merged
// quantity may not exceed the variant's current stock. Returns the updated
// cart and the client id of the affected line item.
func (e *Engine) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*Cart, string, error) {
	if input.Quantity <= 0 {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	var clientID string
	cart, err := e.mutate(ctx, sessionID, "add_item", func(ctx context.Context, next *Cart) error {
		sp, err := e.stock.Lookup(ctx, input.ProductID, input.Color, input.Size)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
				return pkgerrors.New(pkgerrors.CodeOutOfStock, "product variant unavailable")
			}
			return err
		}

		key := ItemKey{ProductID: input.ProductID, Color: input.Color, Size: input.Size}
		idx := next.findItem(key)

		requested := input.Quantity
		if idx >= 0 {
			requested += next.Items[idx].Quantity
		}
		if requested > sp.CountInStock {
			return pkgerrors.New(pkgerrors.CodeOutOfStock, "not enough items in stock").
				WithDetails(map[string]any{"countInStock": sp.CountInStock, "requested": requested})
		}

		if idx >= 0 {
			next.Items[idx].Quantity = requested
			next.Items[idx].UnitPrice = sp.UnitPrice
			next.Items[idx].CountInStock = sp.CountInStock
			clientID = next.Items[idx].ClientID
		} else {
			clientID = uuid.NewString()
			next.Items = append(next.Items, LineItem{
				ClientID:     clientID,
				ProductID:    input.ProductID,
				Name:         input.Name,
				Slug:         input.Slug,
				Image:        input.Image,
				Color:        input.Color,
				Size:         input.Size,
				Quantity:     input.Quantity,
				UnitPrice:    sp.UnitPrice,
				CountInStock: sp.CountInStock,
			})
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	// the returned client id must resolve to a live entry
	found := false
	for i := range cart.Items {
		if cart.Items[i].ClientID == clientID {
			found = true
			break
		}
	}
	if !found {
		return nil, "", pkgerrors.New(pkgerrors.CodeInternal, "added line item missing after mutation")
	}
	return cart, clientID, nil
}

// UpdateItem sets the quantity of the line item matching key. A missing key
// is a silent no-op so callers racing a removal do not fail. The new quantity
// is re-validated against the item's stock ceiling.
func (e *Engine) UpdateItem(ctx context.Context, sessionID string, key ItemKey, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	return e.mutate(ctx, sessionID, "update_item", func(_ context.Context, next *Cart) error {
		idx := next.findItem(key)
		if idx < 0 {
			return nil
		}
		if quantity > next.Items[idx].CountInStock {
			return pkgerrors.New(pkgerrors.CodeOutOfStock, "not enough items in stock").
				WithDetails(map[string]any{"countInStock": next.Items[idx].CountInStock, "requested": quantity})
		}
		next.Items[idx].Quantity = quantity
		return nil
	})
}

// RemoveItem drops the line item matching key. Removing an absent key is a
// no-op.
func (e *Engine) RemoveItem(ctx context.Context, sessionID string, key ItemKey) (*Cart, error) {
	return e.mutate(ctx, sessionID, "remove_item", func(_ context.Context, next *Cart) error {
		idx := next.findItem(key)
		if idx < 0 {
			return nil
		}
		next.Items = append(next.Items[:idx], next.Items[idx+1:]...)
		return nil
	})
}

// SetShippingAddress stores the destination and recomputes charges, which
// become defined once both an address and items exist.
func (e *Engine) SetShippingAddress(ctx context.Context, sessionID string, addr Address) (*Cart, error) {
	return e.mutate(ctx, sessionID, "set_address", func(_ context.Context, next *Cart) error {
		next.ShippingAddress = &addr
		return nil
	})
}

// SetDeliveryDateIndex stores the shopper's delivery option choice. The
// estimator treats out-of-range values as the default option.
func (e *Engine) SetDeliveryDateIndex(ctx context.Context, sessionID string, index int) (*Cart, error) {
	if index < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery option index must not be negative")
	}
	return e.mutate(ctx, sessionID, "set_delivery_option", func(_ context.Context, next *Cart) error {
		next.DeliveryDateIndex = &index
		return nil
	})
}

// SetPaymentMethod stores the payment method. Charges are unaffected, so no
// recomputation happens.
func (e *Engine) SetPaymentMethod(ctx context.Context, sessionID string, method string) (*Cart, error) {
	if err := e.requireSession("set_payment_method", sessionID); err != nil {
		return nil, err
	}
	if method == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}

	unlock := e.locks.lock(sessionID)
	defer unlock()

	cart, err := e.loadOrCreate(ctx, sessionID)
	if err != nil {
		e.metrics.IncMutation("set_payment_method", err)
		return nil, err
	}

	next := cart.Clone()
	next.PaymentMethod = method
	next.UpdatedAt = time.Now().UTC()

	if err := e.store.Save(ctx, next); err != nil {
		e.metrics.IncMutation("set_payment_method", err)
		return nil, err
	}
	e.metrics.IncMutation("set_payment_method", nil)
	return next, nil
}

// ClearCart empties the item sequence and zeroes the aggregates. The chosen
// address and payment method survive for the next order.
func (e *Engine) ClearCart(ctx context.Context, sessionID string) (*Cart, error) {
	if err := e.requireSession("clear_cart", sessionID); err != nil {
		return nil, err
	}

	unlock := e.locks.lock(sessionID)
	defer unlock()

	cart, err := e.loadOrCreate(ctx, sessionID)
	if err != nil {
		e.metrics.IncMutation("clear_cart", err)
		return nil, err
	}

	next := cart.Clone()
	next.Items = []LineItem{}
	next.ItemsPrice = decimal.Zero
	next.TotalPrice = decimal.Zero
	next.ShippingPrice = nil
	next.TaxPrice = nil
	next.ExpectedDeliveryDate = nil
	next.UpdatedAt = time.Now().UTC()

	if err := e.store.Save(ctx, next); err != nil {
		e.metrics.IncMutation("clear_cart", err)
		return nil, err
	}
	e.metrics.IncMutation("clear_cart", nil)
	return next, nil
}

// GetCart returns the session's cart, or a fresh empty cart if none has been
// persisted yet. The empty cart is not saved until the first mutation.
func (e *Engine) GetCart(ctx context.Context, sessionID string) (*Cart, error) {
	cart, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return NewCart(sessionID), nil
	}
	return cart, nil
}

// mutate runs the standard mutation cycle: load, clone, apply, recompute
// aggregates, persist. Any failure leaves the stored cart untouched.
func (e *Engine) mutate(ctx context.Context, sessionID string, op string, apply func(context.Context, *Cart) error) (*Cart, error) {
	if err := e.requireSession(op, sessionID); err != nil {
		return nil, err
	}

	unlock := e.locks.lock(sessionID)
	defer unlock()

	cart, err := e.loadOrCreate(ctx, sessionID)
	if err != nil {
		e.metrics.IncMutation(op, err)
		return nil, err
	}

	next := cart.Clone()
	if err := apply(ctx, next); err != nil {
		e.metrics.IncMutation(op, err)
		return nil, err
	}

	if err := e.refresh(ctx, next); err != nil {
		e.metrics.IncMutation(op, err)
		return nil, err
	}
	next.UpdatedAt = time.Now().UTC()

	if err := e.store.Save(ctx, next); err != nil {
		e.metrics.IncMutation(op, err)
		return nil, err
	}

	e.metrics.IncMutation(op, nil)
	return next, nil
}

// requireSession rejects blank session ids before any store access, so every
// operation reports the same validation error.
func (e *Engine) requireSession(op, sessionID string) error {
	if sessionID == "" {
		err := pkgerrors.New(pkgerrors.CodeValidation, "cart session id is required")
		e.metrics.IncMutation(op, err)
		return err
	}
	return nil
}

func (e *Engine) loadOrCreate(ctx context.Context, sessionID string) (*Cart, error) {
	cart, err := e.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = NewCart(sessionID)
	}
	return cart, nil
}

// refresh recomputes every derived aggregate from the item sequence, address
// and selected delivery option.
func (e *Engine) refresh(ctx context.Context, c *Cart) error {
	subtotal := decimal.Zero
	for i := range c.Items {
		subtotal = subtotal.Add(c.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(c.Items[i].Quantity))))
	}
	c.ItemsPrice = money.Round2(subtotal)

	started := time.Now()
	quote, err := e.estimator.Estimate(ctx, delivery.EstimateInput{
		ItemsPrice:        c.ItemsPrice,
		HasItems:          !c.IsEmpty(),
		HasAddress:        c.HasAddress(),
		DeliveryDateIndex: c.DeliveryDateIndex,
	})
	e.metrics.ObserveEstimate(time.Since(started), err)
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return err
		}
		return pkgerrors.Wrap(pkgerrors.CodeEstimation, err, "delivery estimation failed")
	}

	c.DeliveryOptions = quote.Options
	c.ShippingPrice = quote.ShippingPrice
	c.TaxPrice = quote.TaxPrice
	c.ExpectedDeliveryDate = quote.ExpectedDeliveryDate

	total := c.ItemsPrice
	if c.ShippingPrice != nil {
		total = total.Add(*c.ShippingPrice)
	}
	if c.TaxPrice != nil {
		total = total.Add(*c.TaxPrice)
	}
	c.TotalPrice = money.Round2(total)
	return nil
}
