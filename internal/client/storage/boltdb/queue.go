package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"

	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/models"
)

// AppendPendingAction atomically inserts a new action at the tail of the queue.
// Sequence id назначается bucket'ом (NextSequence) и переживает рестарты —
// порядок ключей в BoltDB и есть порядок повтора.
func (s *Storage) AppendPendingAction(ctx context.Context, endpoint, method string, body json.RawMessage) (*models.PendingAction, error) {
	action := &models.PendingAction{
		ActionID: uuid.NewString(),
		Endpoint: endpoint,
		Method:   method,
		Body:     body,
		QueuedAt: time.Now(),
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPendingActions)
		if bucket == nil {
			return fmt.Errorf("pending_actions bucket not found")
		}

		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to assign sequence id: %w", err)
		}
		action.SequenceID = seq

		data, err := json.Marshal(action)
		if err != nil {
			return fmt.Errorf("failed to marshal pending action: %w", err)
		}

		// Big-endian ключ: байтовый порядок совпадает с числовым
		if err := bucket.Put(sequenceKey(seq), data); err != nil {
			return fmt.Errorf("failed to append pending action: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrWrite, err)
	}

	return action, nil
}

// ListPendingActions returns all queued actions in ascending sequence order
func (s *Storage) ListPendingActions(ctx context.Context) ([]models.PendingAction, error) {
	var actions []models.PendingAction

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketPendingActions)
		if bucket == nil {
			return fmt.Errorf("pending_actions bucket not found")
		}

		// ForEach обходит ключи в байтовом порядке, то есть по возрастанию sequence id
		return bucket.ForEach(func(k, v []byte) error {
			action := models.PendingAction{}
			if err := json.Unmarshal(v, &action); err != nil {
				return fmt.Errorf("failed to unmarshal pending action: %w", err)
			}
			actions = append(actions, action)
			return nil
		})
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %w", storage.ErrRead, err)
	}

	return actions, nil
}

// ClearPendingActions atomically empties the whole queue.
// Частичного удаления нет намеренно: повтор строго последовательный и
// прерывается на первом сбое, поэтому единственный безопасный момент
// мутации очереди — "все действия прошли".
func (s *Storage) ClearPendingActions(ctx context.Context) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(bucketPendingActions); err != nil {
			return fmt.Errorf("failed to delete pending_actions bucket: %w", err)
		}
		// Пересоздаем пустой bucket; счетчик sequence сбрасывается вместе с ним,
		// но монотонность внутри одной очереди сохраняется
		if _, err := tx.CreateBucket(bucketPendingActions); err != nil {
			return fmt.Errorf("failed to recreate pending_actions bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", storage.ErrWrite, err)
	}

	return nil
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}
