package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/roomos/internal/client/storage"
)

var (
	// BoltDB bucket names
	bucketAPICache       = []byte("api_cache")
	bucketPendingActions = []byte("pending_actions")
	bucketSession        = []byte("session")
)

// Storage represents BoltDB storage implementation for the client
type Storage struct {
	db *bbolt.DB
}

// Compile-time check that Storage implements storage.Storage
var _ storage.Storage = (*Storage)(nil)

// New creates a new BoltDB storage instance.
// dbPath is the path to the BoltDB database file.
// Возвращает storage.ErrUnavailable, если файл БД открыть нельзя —
// без локального хранилища оффлайн-режим не работает.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open boltdb: %w", storage.ErrUnavailable, err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to initialize buckets: %w", storage.ErrUnavailable, err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		// Кэш ответов GET-эндпоинтов
		if _, err := tx.CreateBucketIfNotExists(bucketAPICache); err != nil {
			return fmt.Errorf("failed to create api_cache bucket: %w", err)
		}

		// Очередь отложенных мутирующих запросов
		if _, err := tx.CreateBucketIfNotExists(bucketPendingActions); err != nil {
			return fmt.Errorf("failed to create pending_actions bucket: %w", err)
		}

		// Текущая сессия пользователя
		if _, err := tx.CreateBucketIfNotExists(bucketSession); err != nil {
			return fmt.Errorf("failed to create session bucket: %w", err)
		}

		return nil
	})
}
