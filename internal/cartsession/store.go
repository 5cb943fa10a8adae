package cartsession

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/giftnest/giftnest-backend/pkg/logger"
)

// Store holds the in-session view of a user's cart. Mutations apply
// optimistically to local state and record a pending change for the flusher;
// deletions go to the remote immediately instead of waiting for a flush.
//
// The store is a cache over the remote cart document. Its staleness window is
// bounded by the flush interval; Load rehydrates from the remote on session
// start.
type Store struct {
	mu      sync.Mutex
	session Session
	items   map[uuid.UUID]*LineItem
	order   []uuid.UUID

	tracker *Tracker
	remote  Remote
	logg    *logger.Logger
}

// StoreParams carries the dependencies for NewStore.
type StoreParams struct {
	Session Session
	Tracker *Tracker
	Remote  Remote
	Logger  *logger.Logger
}

// NewStore validates dependencies and returns an empty cart store.
func NewStore(params StoreParams) (*Store, error) {
	if params.Tracker == nil {
		return nil, errors.New("cart store requires a tracker")
	}
	if params.Remote == nil {
		return nil, errors.New("cart store requires a remote")
	}
	if params.Logger == nil {
		return nil, errors.New("cart store requires a logger")
	}
	return &Store{
		session: params.Session,
		items:   make(map[uuid.UUID]*LineItem),
		tracker: params.Tracker,
		remote:  params.Remote,
		logg:    params.Logger,
	}, nil
}

// Session returns the owning session handle.
func (s *Store) Session() Session {
	return s.session
}

// Load replaces local state with the remote cart. Anonymous sessions are a
// no-op. On fetch failure the local state is left unchanged and the error is
// returned for the caller to surface or ignore.
func (s *Store) Load(ctx context.Context) error {
	if s.session.Anonymous() {
		return nil
	}

	lines, err := s.remote.Fetch(ctx, s.session.UserID)
	if err != nil {
		s.logg.Error(ctx, "fetching remote cart", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make(map[uuid.UUID]*LineItem, len(lines))
	s.order = s.order[:0]
	for i := range lines {
		line := lines[i]
		if _, exists := s.items[line.ProductID]; exists {
			continue
		}
		s.items[line.ProductID] = &line
		s.order = append(s.order, line.ProductID)
	}
	return nil
}

// Increment raises the item's quantity by one. Unknown products are ignored.
func (s *Store) Increment(productID uuid.UUID) {
	if s.session.Anonymous() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[productID]
	if !ok {
		return
	}
	item.Quantity++
	s.tracker.Record(*item)
}

// Decrement lowers the item's quantity by one, but never below 1 through this
// path. Unknown products and items already at quantity 1 are ignored.
func (s *Store) Decrement(productID uuid.UUID) {
	if s.session.Anonymous() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[productID]
	if !ok || item.Quantity <= 1 {
		return
	}
	item.Quantity--
	s.tracker.Record(*item)
}

// ToggleFavourite flips the item's favourite flag. If the flip leaves the
// item with quantity 0 and no favourite mark, it is deleted immediately
// instead of being queued for the next flush.
func (s *Store) ToggleFavourite(ctx context.Context, productID uuid.UUID) {
	if s.session.Anonymous() {
		return
	}
	s.mu.Lock()

	item, ok := s.items[productID]
	if !ok {
		s.mu.Unlock()
		return
	}
	item.IsFavourite = !item.IsFavourite
	if item.deletable() {
		s.removeLocked(productID)
		s.mu.Unlock()
		s.deleteRemote(ctx, productID)
		return
	}
	s.tracker.Record(*item)
	s.mu.Unlock()
}

// Delete removes the item locally and issues an immediate remote delete,
// bypassing the batched flush. Unknown products are ignored.
func (s *Store) Delete(ctx context.Context, productID uuid.UUID) {
	if s.session.Anonymous() {
		return
	}
	s.mu.Lock()
	if _, ok := s.items[productID]; !ok {
		s.mu.Unlock()
		return
	}
	s.removeLocked(productID)
	s.mu.Unlock()
	s.deleteRemote(ctx, productID)
}

// SubtotalCents returns the sum of quantity times unit price over all items.
func (s *Store) SubtotalCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var subtotal int64
	for _, item := range s.items {
		subtotal += int64(item.Quantity) * item.UnitPriceCents
	}
	return subtotal
}

// Items returns a copy of the current line items in load/insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]LineItem, 0, len(s.order))
	for _, id := range s.order {
		if item, ok := s.items[id]; ok {
			items = append(items, *item)
		}
	}
	return items
}

// Len returns the number of line items held locally.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) removeLocked(productID uuid.UUID) {
	delete(s.items, productID)
	for i, id := range s.order {
		if id == productID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.tracker.Remove(productID)
}

func (s *Store) deleteRemote(ctx context.Context, productID uuid.UUID) {
	if err := s.remote.Delete(ctx, s.session.UserID, productID); err != nil {
		ctx = s.logg.WithProductID(ctx, productID.String())
		s.logg.Error(ctx, "deleting remote cart line", err)
	}
}
