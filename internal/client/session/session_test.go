package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/roomos/internal/client/storage/boltdb"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	store, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return NewManager(store)
}

func signedToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "7",
		"exp": expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSave_ExtractsJWTExpiry(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	session, err := m.Save(ctx, signedToken(t, expiresAt), 7, "sumit", 2)
	require.NoError(t, err)
	assert.Equal(t, expiresAt.Unix(), session.ExpiresAt.Unix())
	assert.False(t, session.Expired(time.Now()))
	assert.True(t, session.Expired(expiresAt.Add(time.Minute)))
}

func TestSave_OpaqueToken_UnknownExpiry(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	session, err := m.Save(ctx, "not-a-jwt-token", 7, "sumit", 2)
	require.NoError(t, err)
	assert.True(t, session.ExpiresAt.IsZero())
	// Неизвестный срок действия считается действующей сессией
	assert.False(t, session.Expired(time.Now()))
}

func TestToken_RoundTrip(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	// Без сессии токен пустой, но это не ошибка
	token, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	_, err = m.Save(ctx, "bearer-abc", 7, "sumit", 2)
	require.NoError(t, err)

	token, err = m.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bearer-abc", token)
}

func TestClear_Idempotent(t *testing.T) {
	m := newTestManager(t)
	ctx := context.Background()

	_, err := m.Save(ctx, "bearer-abc", 7, "sumit", 2)
	require.NoError(t, err)

	require.NoError(t, m.Clear(ctx))
	// Повторная очистка — no-op
	require.NoError(t, m.Clear(ctx))

	token, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}
