package cartsession

import (
	"context"

	"github.com/google/uuid"
)

// Remote is the durable cart owner. The HTTP client in pkg/cartapi is the
// production implementation; tests substitute fakes.
//
// The remote document carries no revision or version field, so concurrent
// sessions for the same user overwrite each other last-flush-wins. This
// limitation is inherited from the storage contract and is not resolved here.
type Remote interface {
	// Fetch returns the user's cart lines joined with catalog display fields.
	Fetch(ctx context.Context, userID uuid.UUID) ([]LineItem, error)
	// Upsert sets the absolute quantity/favourite state for one product,
	// creating the line if absent.
	Upsert(ctx context.Context, userID uuid.UUID, item LineItem) error
	// Delete removes one product's line from the remote cart.
	Delete(ctx context.Context, userID uuid.UUID, productID uuid.UUID) error
}
