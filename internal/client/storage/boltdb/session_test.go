package boltdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/models"
)

func TestSaveSession_AndGet(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	session := &models.AuthSession{
		Token:    "bearer-token-123",
		UserID:   7,
		UserName: "sumit",
		GroupID:  2,
		SavedAt:  time.Now(),
	}
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token-123", got.Token)
	assert.Equal(t, int64(7), got.UserID)
	assert.Equal(t, "sumit", got.UserName)
}

func TestGetSession_NotFound(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.GetSession(context.Background())
	assert.Nil(t, got)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}

func TestDeleteSession(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSession(ctx, &models.AuthSession{Token: "t"}))
	require.NoError(t, store.DeleteSession(ctx))

	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	// Повторное удаление сообщает об отсутствии сессии
	err = store.DeleteSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
}
