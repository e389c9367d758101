package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/brightcart/storefront-backend/pkg/errors"
	"github.com/brightcart/storefront-backend/pkg/money"
)

// EstimateInput carries the cart facts the estimator needs. Amounts are the
// cart's already-rounded items subtotal.
type EstimateInput struct {
	ItemsPrice decimal.Decimal
	HasItems   bool
	HasAddress bool
	// DeliveryDateIndex is the shopper's requested option, nil meaning the
	// default. Out-of-range values fall back to the default.
	DeliveryDateIndex *int
}

// Quote is the estimator's answer: the menu of options plus the charges for
// the effective choice. Shipping and tax are nil while the cart lacks an
// address or items, matching the "not yet computable" checkout states.
type Quote struct {
	Options              []Option
	DeliveryDateIndex    int
	ShippingPrice        *decimal.Decimal
	TaxPrice             *decimal.Decimal
	ExpectedDeliveryDate *time.Time
}

type optionLister interface {
	ListOptions(ctx context.Context) ([]OptionRecord, error)
}

// Estimator computes shipping and tax for a cart snapshot.
type Estimator struct {
	options optionLister
	taxRate decimal.Decimal
	now     func() time.Time
}

// NewEstimator builds an estimator backed by the delivery options table.
// taxRate is a fraction, e.g. 0.15 for 15 percent.
func NewEstimator(options optionLister, taxRate float64) (*Estimator, error) {
	if options == nil {
		return nil, fmt.Errorf("delivery options repository required")
	}
	if taxRate < 0 || taxRate >= 1 {
		return nil, fmt.Errorf("tax rate %v out of range", taxRate)
	}
	return &Estimator{
		options: options,
		taxRate: decimal.NewFromFloat(taxRate),
		now:     time.Now,
	}, nil
}

// defaultOptions backs the estimator when the options table is empty, so a
// fresh deployment still quotes sensible charges.
func defaultOptions() []Option {
	return []Option{
		{Name: "Tomorrow", DaysToDeliver: 1, ShippingPrice: money.MustParse("12.90"), FreeShippingMinPrice: decimal.Zero},
		{Name: "Next 3 Days", DaysToDeliver: 3, ShippingPrice: money.MustParse("6.90"), FreeShippingMinPrice: decimal.Zero},
		{Name: "Next 5 Days", DaysToDeliver: 5, ShippingPrice: money.MustParse("4.90"), FreeShippingMinPrice: money.MustParse("35.00")},
	}
}

// Estimate resolves the delivery option menu and computes shipping and tax
// for the given cart facts. The default option is the last one, which is the
// cheapest in the seeded configuration.
func (e *Estimator) Estimate(ctx context.Context, input EstimateInput) (*Quote, error) {
	options, err := e.loadOptions(ctx)
	if err != nil {
		return nil, err
	}

	effective := len(options) - 1
	if input.DeliveryDateIndex != nil {
		if idx := *input.DeliveryDateIndex; idx >= 0 && idx < len(options) {
			effective = idx
		}
	}
	chosen := options[effective]

	quote := &Quote{
		Options:           options,
		DeliveryDateIndex: effective,
	}

	if input.HasAddress && input.HasItems {
		shipping := chosen.ShippingPrice
		if chosen.FreeShippingMinPrice.IsPositive() && input.ItemsPrice.GreaterThanOrEqual(chosen.FreeShippingMinPrice) {
			shipping = decimal.Zero
		}
		tax := money.Round2(input.ItemsPrice.Mul(e.taxRate))
		quote.ShippingPrice = &shipping
		quote.TaxPrice = &tax

		eta := e.now().AddDate(0, 0, chosen.DaysToDeliver)
		quote.ExpectedDeliveryDate = &eta
	}

	return quote, nil
}

// Options returns the current delivery option menu.
func (e *Estimator) Options(ctx context.Context) ([]Option, error) {
	return e.loadOptions(ctx)
}

func (e *Estimator) loadOptions(ctx context.Context) ([]Option, error) {
	records, err := e.options.ListOptions(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeEstimation, err, "failed to load delivery options")
	}
	if len(records) == 0 {
		return defaultOptions(), nil
	}
	options := make([]Option, 0, len(records))
	for _, r := range records {
		options = append(options, r.toOption())
	}
	return options, nil
}
