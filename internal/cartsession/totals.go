package cartsession

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/giftnest/giftnest-backend/pkg/config"
	"github.com/giftnest/giftnest-backend/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// ShippingRates holds the adjustments applied on top of the cart subtotal.
// All amounts are integer minor units; the pickup discount is a percentage
// of the subtotal, evaluated with decimal arithmetic and rounded to cents.
type ShippingRates struct {
	ExpressSurchargeCents int64
	PickupDiscountPct     decimal.Decimal
}

// NewShippingRates parses the configured shipping adjustments.
func NewShippingRates(cfg config.ShippingConfig) (ShippingRates, error) {
	if cfg.ExpressSurchargeCents < 0 {
		return ShippingRates{}, fmt.Errorf("express surcharge must be non-negative, got %d", cfg.ExpressSurchargeCents)
	}
	pct, err := decimal.NewFromString(cfg.PickupDiscountPercent)
	if err != nil {
		return ShippingRates{}, fmt.Errorf("parsing pickup discount percent %q: %w", cfg.PickupDiscountPercent, err)
	}
	if pct.IsNegative() || pct.GreaterThan(oneHundred) {
		return ShippingRates{}, fmt.Errorf("pickup discount percent must be within [0, 100], got %s", pct)
	}
	return ShippingRates{
		ExpressSurchargeCents: cfg.ExpressSurchargeCents,
		PickupDiscountPct:     pct,
	}, nil
}

// SubtotalCents sums quantity times unit price over the given line items.
func SubtotalCents(items []LineItem) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += int64(item.Quantity) * item.UnitPriceCents
	}
	return subtotal
}

// TotalCents applies the selected shipping option to a subtotal: free adds
// nothing, express adds a flat surcharge, pickup subtracts a percentage
// discount. Unknown options fall back to free shipping.
func TotalCents(subtotalCents int64, option enums.ShippingOption, rates ShippingRates) int64 {
	switch option {
	case enums.ShippingOptionExpress:
		return subtotalCents + rates.ExpressSurchargeCents
	case enums.ShippingOptionPickup:
		discount := decimal.NewFromInt(subtotalCents).
			Mul(rates.PickupDiscountPct).
			Div(oneHundred).
			Round(0)
		return subtotalCents - discount.IntPart()
	default:
		return subtotalCents
	}
}
