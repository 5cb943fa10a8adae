package cartsession

import (
	"testing"

	"github.com/google/uuid"

	"github.com/giftnest/giftnest-backend/pkg/config"
	"github.com/giftnest/giftnest-backend/pkg/enums"
)

func testRates(t *testing.T) ShippingRates {
	t.Helper()
	rates, err := NewShippingRates(config.ShippingConfig{
		ExpressSurchargeCents: 1500,
		PickupDiscountPercent: "5",
	})
	if err != nil {
		t.Fatalf("new shipping rates: %v", err)
	}
	return rates
}

func TestSubtotalAndExpressTotal(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{ProductID: uuid.New(), Quantity: 2, UnitPriceCents: 1000},
		{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 500},
	}

	subtotal := SubtotalCents(items)
	if subtotal != 2500 {
		t.Fatalf("expected subtotal 2500, got %d", subtotal)
	}
	if got := TotalCents(subtotal, enums.ShippingOptionExpress, testRates(t)); got != 4000 {
		t.Fatalf("expected express total 4000, got %d", got)
	}
}

func TestFreeShippingAddsNothing(t *testing.T) {
	t.Parallel()

	if got := TotalCents(2500, enums.ShippingOptionFree, testRates(t)); got != 2500 {
		t.Fatalf("expected free total 2500, got %d", got)
	}
}

func TestPickupDiscountRoundsToCents(t *testing.T) {
	t.Parallel()

	rates := testRates(t)
	// 5% of 2500 is exactly 125
	if got := TotalCents(2500, enums.ShippingOptionPickup, rates); got != 2375 {
		t.Fatalf("expected pickup total 2375, got %d", got)
	}
	// 5% of 1111 is 55.55, rounds to 56
	if got := TotalCents(1111, enums.ShippingOptionPickup, rates); got != 1055 {
		t.Fatalf("expected pickup total 1055, got %d", got)
	}
}

func TestUnknownOptionFallsBackToFree(t *testing.T) {
	t.Parallel()

	if got := TotalCents(2500, enums.ShippingOption("teleport"), testRates(t)); got != 2500 {
		t.Fatalf("expected fallback total 2500, got %d", got)
	}
}

func TestNewShippingRatesValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewShippingRates(config.ShippingConfig{ExpressSurchargeCents: -1, PickupDiscountPercent: "5"}); err == nil {
		t.Fatal("expected negative surcharge to fail")
	}
	if _, err := NewShippingRates(config.ShippingConfig{PickupDiscountPercent: "five"}); err == nil {
		t.Fatal("expected unparsable percent to fail")
	}
	if _, err := NewShippingRates(config.ShippingConfig{PickupDiscountPercent: "150"}); err == nil {
		t.Fatal("expected percent above 100 to fail")
	}
}

func TestSubtotalIgnoresZeroQuantityFavourites(t *testing.T) {
	t.Parallel()

	items := []LineItem{
		{ProductID: uuid.New(), Quantity: 0, IsFavourite: true, UnitPriceCents: 9999},
		{ProductID: uuid.New(), Quantity: 1, UnitPriceCents: 500},
	}
	if got := SubtotalCents(items); got != 500 {
		t.Fatalf("expected subtotal 500, got %d", got)
	}
}
