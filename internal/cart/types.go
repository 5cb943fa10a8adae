package cart

import "github.com/google/uuid"

// LineDTO is one cart row joined with its catalog display fields. The field
// names form the wire contract consumed by the cart session client.
type LineDTO struct {
	ProductID         uuid.UUID `json:"product_id"`
	ProductName       string    `json:"product_name"`
	ProductPriceCents int64     `json:"product_price_cents"`
	ProductImage      string    `json:"product_image"`
	Quantity          int       `json:"quantity"`
	IsFavourite       bool      `json:"is_favourite"`
}

// CartDTO is the full cart view for one user.
type CartDTO struct {
	CartItems     []LineDTO `json:"cart_items"`
	SubtotalCents int64     `json:"subtotal_cents"`
}

// WriteInput carries one cart mutation from the API layer.
type WriteInput struct {
	UserID      uuid.UUID
	ProductID   uuid.UUID
	Quantity    int
	IsFavourite bool
}
