package sqlitedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/roomos/internal/client/storage"
)

// PutCachedResponse stores or overwrites the cached response for an endpoint
func (s *Storage) PutCachedResponse(ctx context.Context, endpoint string, payload json.RawMessage) error {
	query := `
		INSERT INTO api_cache (endpoint, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(endpoint) DO UPDATE SET
			payload = excluded.payload,
			fetched_at = excluded.fetched_at`

	if _, err := s.db.ExecContext(ctx, query, endpoint, []byte(payload), time.Now()); err != nil {
		return fmt.Errorf("%w: failed to upsert cached response: %w", storage.ErrWrite, err)
	}

	return nil
}

// GetCachedResponse retrieves the cached payload for an endpoint.
// Returns storage.ErrCacheMiss when no entry exists.
func (s *Storage) GetCachedResponse(ctx context.Context, endpoint string) (json.RawMessage, error) {
	var payload []byte

	query := `SELECT payload FROM api_cache WHERE endpoint = ?`
	err := s.db.QueryRowContext(ctx, query, endpoint).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: failed to query cached response: %w", storage.ErrRead, err)
	}

	return payload, nil
}
