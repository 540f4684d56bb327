package session

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monikajha100/prime-admin-gateway/internal/models"
)

func adminUser() models.User {
	return models.User{ID: "u1", Email: "admin@academy.test", FullName: "Admin", Role: models.RoleAdmin, Active: true}
}

func TestMemoryStoreLifecycle(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess := New("tok-1", adminUser())
	require.NotEmpty(t, sess.ID)
	require.NoError(t, store.Set(ctx, sess))

	loaded, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", loaded.Token)
	assert.Equal(t, "u1", loaded.User.ID)

	require.NoError(t, store.Clear(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	sess := New("tok-1", adminUser())
	require.NoError(t, store.Set(context.Background(), sess))

	store.mu.Lock()
	entry := store.sessions[sess.ID]
	entry.expires = time.Now().Add(-time.Minute)
	store.sessions[sess.ID] = entry
	store.mu.Unlock()

	_, err := store.Get(context.Background(), sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestImpersonationStashAndRestore(t *testing.T) {
	sess := New("tok-admin", adminUser())
	target := models.User{ID: "u2", Email: "faculty@academy.test", Role: models.RoleFaculty}

	sess.Impersonate("tok-faculty", target)
	assert.True(t, sess.Impersonating())
	assert.Equal(t, "tok-faculty", sess.Token)
	assert.Equal(t, "u2", sess.User.ID)
	require.NotNil(t, sess.OriginalUser)
	assert.Equal(t, "u1", sess.OriginalUser.ID)
	assert.Equal(t, "tok-admin", sess.OriginalToken)

	// Nested impersonation keeps the first original.
	sess.Impersonate("tok-staff", models.User{ID: "u3", Role: models.RoleStaff})
	assert.Equal(t, "u1", sess.OriginalUser.ID)

	sess.StopImpersonating()
	assert.False(t, sess.Impersonating())
	assert.Equal(t, "tok-admin", sess.Token)
	assert.Equal(t, "u1", sess.User.ID)
	assert.Empty(t, sess.OriginalToken)

	// Stopping again is a no-op.
	sess.StopImpersonating()
	assert.Equal(t, "u1", sess.User.ID)
}

func TestTokenExpired(t *testing.T) {
	signed := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix()})
		raw, err := token.SignedString([]byte("upstream-secret"))
		require.NoError(t, err)
		return raw
	}

	now := time.Now()
	assert.False(t, TokenExpired(signed(now.Add(time.Hour)), now))
	assert.True(t, TokenExpired(signed(now.Add(-time.Hour)), now))
	assert.False(t, TokenExpired("not-a-jwt", now), "unparseable tokens defer to upstream")

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u1"})
	raw, err := noExp.SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	assert.False(t, TokenExpired(raw, now))
}
