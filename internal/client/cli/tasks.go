package cli

import (
	"context"
	"errors"

	"github.com/iudanet/roomos/internal/client/api"
	pkgapi "github.com/iudanet/roomos/pkg/api"
)

func (a *App) runTasks(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	resp, err := a.apiClient.TodayTasks(ctx, token)
	if err != nil {
		return err
	}

	a.println("=== Today's Tasks ===")
	a.println()
	a.printTasks(resp.Tasks)
	return nil
}

func (a *App) runAssign(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	resp, err := a.apiClient.AssignTasks(ctx, token)
	if err != nil {
		// Лотерея встала в очередь: результат появится после синка
		if api.IsQueuedForSync(err) {
			a.println("Offline: task assignment queued, it will run when the server is reachable.")
			return nil
		}
		return err
	}

	a.println("Tasks assigned:")
	a.println()
	a.printTasks(resp.Tasks)
	return nil
}

func (a *App) runGeneratePlan(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	if err := a.apiClient.GeneratePlan(ctx, token); err != nil {
		if api.IsQueuedForSync(err) {
			a.println("Offline: plan generation queued, it will run when the server is reachable.")
			return nil
		}
		return err
	}

	a.println("Weekly plan regenerated.")
	return nil
}

func (a *App) runUpdates(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	resp, err := a.apiClient.CheckUpdates(ctx, token)
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Kind == api.KindNoOfflineData {
			a.println("Offline: update check requires a server connection.")
			return nil
		}
		return err
	}

	if !resp.HasUpdate {
		a.println("You are on the latest version.")
		return nil
	}

	a.printf("Update available: %s\n", resp.LatestVersion)
	if resp.Changelog != "" {
		a.println()
		a.println(resp.Changelog)
	}
	if resp.DownloadURL != "" {
		a.println()
		a.printf("Download: %s\n", resp.DownloadURL)
	}
	return nil
}

func (a *App) printTasks(tasks []pkgapi.Task) {
	if len(tasks) == 0 {
		a.println("No tasks for today.")
		return
	}
	for _, task := range tasks {
		a.printf("  %-12s -> %s\n", task.TaskName, task.AssignedToName)
	}
}
