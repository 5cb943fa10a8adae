package cartsession

import "github.com/google/uuid"

// LineItem is one product's entry in the in-memory cart: quantity, favourite
// flag, and display fields denormalized from the catalog at load time. The
// unit price is frozen for the lifetime of the line item.
type LineItem struct {
	ProductID      uuid.UUID
	Name           string
	ImageURL       string
	UnitPriceCents int64
	Quantity       int
	IsFavourite    bool
}

// deletable reports whether the item no longer needs a remote record.
func (i LineItem) deletable() bool {
	return i.Quantity == 0 && !i.IsFavourite
}

// Session identifies the cart owner. A zero UserID marks an anonymous
// browsing session, for which all cart operations are local no-ops.
type Session struct {
	UserID uuid.UUID
}

// Anonymous reports whether the session has no authenticated user.
func (s Session) Anonymous() bool {
	return s.UserID == uuid.Nil
}
