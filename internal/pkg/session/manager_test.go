package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	xerrors "github.com/vincehvac/servicepro-crm/internal/pkg/errors"
)

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour)

	sess, err := m.Create(ctx, "jti-1", "user-1", "jane@x.com", "admin")
	require.NoError(t, err)
	assert.Equal(t, "jti-1", sess.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)

	got, err := m.Validate(ctx, "jti-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "admin", got.Role)

	require.NoError(t, m.Revoke(ctx, "jti-1"))

	_, err = m.Validate(ctx, "jti-1")
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}

func TestValidateUnknownSession(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour)

	_, err := m.Validate(context.Background(), "missing")
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	sess := &Session{ID: "jti-2", UserID: "user-2", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, store.Save(ctx, sess, time.Hour))

	_, err := store.Get(ctx, "jti-2")
	assert.ErrorIs(t, err, xerrors.ErrSessionExpired)
}
