package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/roomos/internal/client/storage"
)

func (a *App) runStatus(ctx context.Context) error {
	a.println("=== RoomOS Status ===")
	a.println()

	current, err := a.sessions.Current(ctx)
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		a.println("Session: none")
	case err != nil:
		return fmt.Errorf("failed to read session: %w", err)
	default:
		a.printf("Session: %s (group %d)\n", current.UserName, current.GroupID)
		if current.ExpiresAt.IsZero() {
			a.println("Token expires: unknown")
		} else {
			a.printf("Token expires: %s\n", current.ExpiresAt.Format(time.RFC3339))
			if current.Expired(time.Now()) {
				a.println("Token has expired. Please login again.")
			}
		}
	}

	actions, err := a.queue.ListPendingActions(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pending queue: %w", err)
	}

	a.println()
	if len(actions) > 0 {
		a.printf("Pending sync: %d action(s) waiting\n", len(actions))
		a.println("Run 'roomos sync' to push them to the server.")
	} else {
		a.println("All actions synchronized with server.")
	}

	return nil
}

func (a *App) runQueue(ctx context.Context) error {
	actions, err := a.queue.ListPendingActions(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pending queue: %w", err)
	}

	if len(actions) == 0 {
		a.println("Queue is empty.")
		return nil
	}

	a.printf("%d pending action(s):\n", len(actions))
	a.println()
	for i, action := range actions {
		a.printf("%d. %s %s\n", i+1, action.Method, action.Endpoint)
		a.printf("   queued: %s\n", action.QueuedAt.Format(time.RFC3339))
		if len(action.Body) > 0 {
			a.printf("   body:   %s\n", string(action.Body))
		}
	}

	return nil
}
