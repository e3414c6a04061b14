package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/models"
)

// PutCachedResponse stores or overwrites the cached response for an endpoint
func (s *Storage) PutCachedResponse(ctx context.Context, endpoint string, payload json.RawMessage) error {
	entry := models.CachedResponse{
		Endpoint:  endpoint,
		Payload:   payload,
		FetchedAt: time.Now(),
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAPICache)
		if bucket == nil {
			return fmt.Errorf("api_cache bucket not found")
		}

		// Сериализуем запись в JSON
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal cached response: %w", err)
		}

		// Ключ — endpoint, повторный Put перезаписывает старую запись
		if err := bucket.Put([]byte(endpoint), data); err != nil {
			return fmt.Errorf("failed to save cached response: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrWrite, err)
	}

	return nil
}

// GetCachedResponse retrieves the cached payload for an endpoint.
// Returns storage.ErrCacheMiss when no entry exists.
func (s *Storage) GetCachedResponse(ctx context.Context, endpoint string) (json.RawMessage, error) {
	var payload json.RawMessage

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketAPICache)
		if bucket == nil {
			return fmt.Errorf("api_cache bucket not found")
		}

		data := bucket.Get([]byte(endpoint))
		if data == nil {
			// Отсутствие записи — не ошибка I/O
			return storage.ErrCacheMiss
		}

		entry := &models.CachedResponse{}
		if err := json.Unmarshal(data, entry); err != nil {
			return fmt.Errorf("failed to unmarshal cached response: %w", err)
		}

		payload = entry.Payload
		return nil
	})

	if err != nil {
		if err == storage.ErrCacheMiss {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrRead, err)
	}

	return payload, nil
}
