package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// runLogin сохраняет выданный сервером токен. Сам обмен логина и
// пароля на токен происходит вне клиента.
func (a *App) runLogin(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: roomos login TOKEN [NAME [USER_ID GROUP_ID]]")
	}

	token := args[0]
	var userName string
	var userID, groupID int64
	if len(args) > 1 {
		userName = args[1]
	}
	if len(args) > 3 {
		var err error
		if userID, err = strconv.ParseInt(args[2], 10, 64); err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[2], err)
		}
		if groupID, err = strconv.ParseInt(args[3], 10, 64); err != nil {
			return fmt.Errorf("invalid group id %q: %w", args[3], err)
		}
	}

	// Токен проверяется живым запросом: битый токен не сохраняем
	if err := a.apiClient.CheckAccess(ctx, token); err != nil {
		return fmt.Errorf("token rejected by server: %w", err)
	}

	session, err := a.sessions.Save(ctx, token, userID, userName, groupID)
	if err != nil {
		return err
	}

	a.println("Logged in.")
	if !session.ExpiresAt.IsZero() {
		a.printf("Token expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func (a *App) runLogout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	a.println("Logged out.")
	return nil
}
