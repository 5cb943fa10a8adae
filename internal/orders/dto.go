package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/giftnest/giftnest-backend/pkg/enums"
)

// LineItemDTO is one frozen order line.
type LineItemDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	ProductName    string    `json:"product_name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	LineTotalCents int64     `json:"line_total_cents"`
}

// OrderDTO is a full order view with its lines.
type OrderDTO struct {
	ID             uuid.UUID            `json:"id"`
	Status         enums.OrderStatus    `json:"status"`
	ShippingOption enums.ShippingOption `json:"shipping_option"`
	SubtotalCents  int64                `json:"subtotal_cents"`
	ShippingCents  int64                `json:"shipping_cents"`
	TotalCents     int64                `json:"total_cents"`
	CreatedAt      time.Time            `json:"created_at"`
	LineItems      []LineItemDTO        `json:"line_items"`
}

// CheckoutInput carries a checkout request from the API layer.
type CheckoutInput struct {
	UserID         uuid.UUID
	ShippingOption enums.ShippingOption
}
