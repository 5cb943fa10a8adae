package session

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no active session exists for a token id.
var ErrNotFound = errors.New("session not found")

// AccessSessionChecker is the read side of the session manager, used by the
// auth middleware to confirm a token has not been revoked.
type AccessSessionChecker interface {
	HasSession(ctx context.Context, accessID string) (bool, error)
}

type store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	AccessSessionKey(accessID string) string
}

// Manager tracks active access-token sessions in Redis so tokens can be
// revoked before their JWT expiry. Sessions are registered by the credential
// provider at login and checked by the auth middleware on every request.
type Manager struct {
	store store
	ttl   time.Duration
}

// ManagerParams carries the dependencies for NewManager.
type ManagerParams struct {
	Store store
	TTL   time.Duration
}

// NewManager validates dependencies and returns a session manager.
func NewManager(params ManagerParams) (*Manager, error) {
	if params.Store == nil {
		return nil, errors.New("session manager requires a store")
	}
	if params.TTL <= 0 {
		return nil, errors.New("session manager requires a positive ttl")
	}
	return &Manager{store: params.Store, ttl: params.TTL}, nil
}

// Register records an active session for the given access token id.
func (m *Manager) Register(ctx context.Context, accessID string) error {
	if accessID == "" {
		return errors.New("access id is required")
	}
	return m.store.Set(ctx, m.store.AccessSessionKey(accessID), "1", m.ttl)
}

// Revoke deletes the session for the given access token id.
func (m *Manager) Revoke(ctx context.Context, accessID string) error {
	if accessID == "" {
		return errors.New("access id is required")
	}
	return m.store.Del(ctx, m.store.AccessSessionKey(accessID))
}

// HasSession reports whether the access token id has an active session.
func (m *Manager) HasSession(ctx context.Context, accessID string) (bool, error) {
	if accessID == "" {
		return false, errors.New("access id is required")
	}
	_, err := m.store.Get(ctx, m.store.AccessSessionKey(accessID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
