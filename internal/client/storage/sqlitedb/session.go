package sqlitedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/models"
)

// SaveSession stores the current user session
func (s *Storage) SaveSession(ctx context.Context, session *models.AuthSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal session: %w", storage.ErrWrite, err)
	}

	query := `
		INSERT INTO session (id, data, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, data, time.Now()); err != nil {
		return fmt.Errorf("%w: failed to save session: %w", storage.ErrWrite, err)
	}

	return nil
}

// GetSession retrieves the stored session.
// Returns storage.ErrSessionNotFound when no session exists.
func (s *Storage) GetSession(ctx context.Context) (*models.AuthSession, error) {
	var data []byte

	err := s.db.QueryRowContext(ctx, `SELECT data FROM session WHERE id = 1`).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("%w: failed to query session: %w", storage.ErrRead, err)
	}

	session := &models.AuthSession{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal session: %w", storage.ErrRead, err)
	}

	return session, nil
}

// DeleteSession removes the stored session (logout)
func (s *Storage) DeleteSession(ctx context.Context) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("%w: failed to delete session: %w", storage.ErrWrite, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: failed to check deleted rows: %w", storage.ErrWrite, err)
	}
	if affected == 0 {
		return storage.ErrSessionNotFound
	}

	return nil
}
