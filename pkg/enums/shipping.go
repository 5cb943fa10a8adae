package enums

import "strings"

// ShippingOption selects the delivery adjustment applied on top of the cart
// subtotal: free adds nothing, express adds a flat surcharge, pickup grants a
// percentage discount.
type ShippingOption string

const (
	ShippingOptionFree    ShippingOption = "free"
	ShippingOptionExpress ShippingOption = "express"
	ShippingOptionPickup  ShippingOption = "pickup"
)

func (o ShippingOption) IsValid() bool {
	switch o {
	case ShippingOptionFree, ShippingOptionExpress, ShippingOptionPickup:
		return true
	}
	return false
}

func (o ShippingOption) String() string { return string(o) }

// ParseShippingOption normalizes a raw string; unknown values map to free.
func ParseShippingOption(raw string) ShippingOption {
	option := ShippingOption(strings.ToLower(strings.TrimSpace(raw)))
	if !option.IsValid() {
		return ShippingOptionFree
	}
	return option
}
