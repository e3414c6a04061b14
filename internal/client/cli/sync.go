package cli

import (
	"context"
	"fmt"
)

func (a *App) runSync(ctx context.Context) error {
	actions, err := a.queue.ListPendingActions(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pending queue: %w", err)
	}
	if len(actions) == 0 {
		a.println("Nothing to sync.")
		return nil
	}

	a.printf("Syncing %d pending action(s)...\n", len(actions))

	if err := a.syncer.Trigger(ctx); err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	// Движок мог пропустить разгрузку (сервер недоступен) — проверяем остаток
	remaining, err := a.queue.ListPendingActions(ctx)
	if err != nil {
		return fmt.Errorf("failed to read pending queue: %w", err)
	}
	if len(remaining) > 0 {
		a.printf("Server unreachable: %d action(s) still pending.\n", len(remaining))
		return nil
	}

	a.println("Synchronization complete.")
	return nil
}
