package cartsession

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/giftnest/giftnest-backend/pkg/config"
	"github.com/giftnest/giftnest-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "cartsession-test",
		Level:       zerolog.Disabled,
		Output:      io.Discard,
	})
}

func testSyncConfig() config.CartSyncConfig {
	return config.CartSyncConfig{
		FlushInterval:   time.Hour,
		TeardownTimeout: time.Second,
		RetryAttempts:   2,
		RetryBaseDelay:  time.Millisecond,
	}
}

type remoteCall struct {
	op   string
	item LineItem
}

// fakeRemote records calls and serves a canned cart.
type fakeRemote struct {
	mu         sync.Mutex
	cart       []LineItem
	fetchErr   error
	upsertErr  error
	deleteErr  error
	calls      []remoteCall
	upsertSeen int
	deleteSeen int
}

func (f *fakeRemote) Fetch(_ context.Context, _ uuid.UUID) ([]LineItem, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]LineItem(nil), f.cart...), nil
}

func (f *fakeRemote) Upsert(_ context.Context, _ uuid.UUID, item LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertSeen++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.calls = append(f.calls, remoteCall{op: "upsert", item: item})
	return nil
}

func (f *fakeRemote) Delete(_ context.Context, _ uuid.UUID, productID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteSeen++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.calls = append(f.calls, remoteCall{op: "delete", item: LineItem{ProductID: productID}})
	return nil
}

func (f *fakeRemote) recorded() []remoteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remoteCall(nil), f.calls...)
}

func newLoadedStore(t interface {
	Helper()
	Fatalf(string, ...any)
}, remote *fakeRemote, tracker *Tracker) *Store {
	t.Helper()
	store, err := NewStore(StoreParams{
		Session: Session{UserID: uuid.New()},
		Tracker: tracker,
		Remote:  remote,
		Logger:  testLogger(),
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return store
}
