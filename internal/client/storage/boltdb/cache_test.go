package boltdb

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/roomos/internal/client/storage"
)

func TestPutCachedResponse_AndGet(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	payload := json.RawMessage(`{"roster":[{"day_index":0}]}`)
	err := store.PutCachedResponse(ctx, "/roster/week", payload)
	require.NoError(t, err)

	got, err := store.GetCachedResponse(ctx, "/roster/week")
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(got))
}

func TestPutCachedResponse_Overwrites(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	// Первый успешный GET кладет запись, второй — перезаписывает.
	// Достижимым должен остаться только второй payload.
	require.NoError(t, store.PutCachedResponse(ctx, "/tasks/today", json.RawMessage(`{"tasks":[]}`)))
	second := json.RawMessage(`{"tasks":[{"task_name":"Water"}]}`)
	require.NoError(t, store.PutCachedResponse(ctx, "/tasks/today", second))

	got, err := store.GetCachedResponse(ctx, "/tasks/today")
	require.NoError(t, err)
	assert.JSONEq(t, string(second), string(got))
}

func TestGetCachedResponse_Miss(t *testing.T) {
	store := newTestStorage(t)

	got, err := store.GetCachedResponse(context.Background(), "/never/fetched")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, storage.ErrCacheMiss)
	// Промах кэша — не ошибка I/O
	assert.NotErrorIs(t, err, storage.ErrRead)
}

func TestCachedResponses_IndependentEndpoints(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.PutCachedResponse(ctx, "/roster/week", json.RawMessage(`{"a":1}`)))
	require.NoError(t, store.PutCachedResponse(ctx, "/group/members", json.RawMessage(`{"b":2}`)))

	got, err := store.GetCachedResponse(ctx, "/roster/week")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))

	got, err = store.GetCachedResponse(ctx, "/group/members")
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":2}`, string(got))
}
