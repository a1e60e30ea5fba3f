package session

import (
	"context"
	"time"
)

// Manager creates and revokes sessions on top of a Store.
type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// Create records a new session under the given id (the token JTI).
func (m *Manager) Create(ctx context.Context, id, userID, email, role string) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        id,
		UserID:    userID,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, sess, m.ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

// Validate returns the live session for an id, or ErrSessionExpired.
func (m *Manager) Validate(ctx context.Context, id string) (*Session, error) {
	return m.store.Get(ctx, id)
}

// Revoke deletes a session, ending it before its token expires.
func (m *Manager) Revoke(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}
