package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/models"
)

var sessionKey = []byte("current")

// SaveSession stores the current user session
func (s *Storage) SaveSession(ctx context.Context, session *models.AuthSession) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data, err := json.Marshal(session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		if err := bucket.Put(sessionKey, data); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrWrite, err)
	}

	return nil
}

// GetSession retrieves the stored session.
// Returns storage.ErrSessionNotFound when no session exists.
func (s *Storage) GetSession(ctx context.Context) (*models.AuthSession, error) {
	var session *models.AuthSession

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		data := bucket.Get(sessionKey)
		if data == nil {
			return storage.ErrSessionNotFound
		}

		session = &models.AuthSession{}
		if err := json.Unmarshal(data, session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}

		return nil
	})

	if err != nil {
		if err == storage.ErrSessionNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", storage.ErrRead, err)
	}

	return session, nil
}

// DeleteSession removes the stored session (logout)
func (s *Storage) DeleteSession(ctx context.Context) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketSession)
		if bucket == nil {
			return fmt.Errorf("session bucket not found")
		}

		if bucket.Get(sessionKey) == nil {
			return storage.ErrSessionNotFound
		}

		if err := bucket.Delete(sessionKey); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}

		return nil
	})
	if err != nil {
		if err == storage.ErrSessionNotFound {
			return err
		}
		return fmt.Errorf("%w: %w", storage.ErrWrite, err)
	}

	return nil
}
