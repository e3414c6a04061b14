package cli

import (
	"context"
	"fmt"
	"strings"

	pkgapi "github.com/iudanet/roomos/pkg/api"
)

// weekdays в порядке day_index сервера
var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func (a *App) runRoster(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	resp, err := a.apiClient.WeekRoster(ctx, token)
	if err != nil {
		return err
	}

	a.println("=== Weekly Roster ===")
	a.println()
	for i := range resp.Roster {
		day := &resp.Roster[i]
		name := "?"
		if day.DayIndex >= 0 && day.DayIndex < len(weekdays) {
			name = weekdays[day.DayIndex]
		}
		a.printf("%s\n", name)
		a.printf("  morning: %s", formatShift(day.MorningTeam))
		if day.PassengerM != "" {
			a.printf(" (passenger: %s)", day.PassengerM)
		}
		a.println()
		a.printf("  night:   %s", formatShift(day.NightTeam))
		if day.PassengerN != "" {
			a.printf(" (passenger: %s)", day.PassengerN)
		}
		a.println()
	}

	return nil
}

func (a *App) runToday(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	resp, err := a.apiClient.TodayRoster(ctx, token)
	if err != nil {
		return err
	}

	if resp.Day == nil {
		a.println("No roster entry for today.")
		return nil
	}

	a.println("=== Today ===")
	a.printf("morning: %s\n", formatShift(resp.Day.MorningTeam))
	a.printf("night:   %s\n", formatShift(resp.Day.NightTeam))
	return nil
}

// formatShift печатает команду смены; ошибка декодирования превращается в "?"
func formatShift(team func() ([]pkgapi.Assignment, error)) string {
	members, err := team()
	if err != nil {
		return "?"
	}
	if len(members) == 0 {
		return "-"
	}

	parts := make([]string, 0, len(members))
	for _, m := range members {
		if m.LeaveAt != "" {
			parts = append(parts, fmt.Sprintf("%s (leaves %s)", m.Name, m.LeaveAt))
		} else {
			parts = append(parts, m.Name)
		}
	}
	return strings.Join(parts, ", ")
}
