package sqlitedb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/roomos/internal/client/storage"
	"github.com/iudanet/roomos/internal/models"
)

// AppendPendingAction atomically inserts a new action at the tail of the queue
func (s *Storage) AppendPendingAction(ctx context.Context, endpoint, method string, body json.RawMessage) (*models.PendingAction, error) {
	action := &models.PendingAction{
		ActionID: uuid.NewString(),
		Endpoint: endpoint,
		Method:   method,
		Body:     body,
		QueuedAt: time.Now(),
	}

	query := `
		INSERT INTO pending_actions (action_id, endpoint, method, body, queued_at)
		VALUES (?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query, action.ActionID, endpoint, method, []byte(body), action.QueuedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to append pending action: %w", storage.ErrWrite, err)
	}

	// AUTOINCREMENT назначает монотонный sequence id
	seq, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read sequence id: %w", storage.ErrWrite, err)
	}
	action.SequenceID = uint64(seq)

	return action, nil
}

// ListPendingActions returns all queued actions in ascending sequence order
func (s *Storage) ListPendingActions(ctx context.Context) ([]models.PendingAction, error) {
	query := `
		SELECT sequence_id, action_id, endpoint, method, body, queued_at
		FROM pending_actions
		ORDER BY sequence_id ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query pending actions: %w", storage.ErrRead, err)
	}
	defer rows.Close()

	var actions []models.PendingAction
	for rows.Next() {
		var action models.PendingAction
		var body []byte
		if err := rows.Scan(&action.SequenceID, &action.ActionID, &action.Endpoint, &action.Method, &body, &action.QueuedAt); err != nil {
			return nil, fmt.Errorf("%w: failed to scan pending action: %w", storage.ErrRead, err)
		}
		action.Body = body
		actions = append(actions, action)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to iterate pending actions: %w", storage.ErrRead, err)
	}

	return actions, nil
}

// ClearPendingActions atomically empties the whole queue.
// Счетчик AUTOINCREMENT при этом не сбрасывается, поэтому sequence id
// остаются монотонными между циклами синхронизации.
func (s *Storage) ClearPendingActions(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM pending_actions`); err != nil {
		return fmt.Errorf("%w: failed to clear pending actions: %w", storage.ErrWrite, err)
	}
	return nil
}
