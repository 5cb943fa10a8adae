package cartsession

import (
	"sync"

	"github.com/google/uuid"
)

// Tracker accumulates pending cart mutations between flushes. Each product
// holds at most one pending entry; a newer mutation overwrites the prior one,
// so only the latest desired state per product survives to the next flush.
type Tracker struct {
	mu      sync.Mutex
	pending map[uuid.UUID]LineItem
}

// NewTracker returns an empty change tracker.
func NewTracker() *Tracker {
	return &Tracker{pending: make(map[uuid.UUID]LineItem)}
}

// Record upserts the latest desired state for the item's product.
func (t *Tracker) Record(item LineItem) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending[item.ProductID] = item
}

// Remove drops any pending entry for the product. Used when a delete is sent
// out of band so a stale upsert cannot resurrect the line at the next flush.
func (t *Tracker) Remove(productID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.pending, productID)
}

// Drain returns all pending entries and clears the tracker atomically.
func (t *Tracker) Drain() []LineItem {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.pending) == 0 {
		return nil
	}
	drained := make([]LineItem, 0, len(t.pending))
	for _, item := range t.pending {
		drained = append(drained, item)
	}
	t.pending = make(map[uuid.UUID]LineItem)
	return drained
}

// Len returns the number of products with pending changes.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}
