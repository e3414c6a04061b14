package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	pkgapi "github.com/iudanet/roomos/pkg/api"
)

// Endpoint paths of the RoomOS server API
const (
	EndpointWeekRoster        = "/roster/week"
	EndpointTodayRoster       = "/roster/today"
	EndpointTodayTasks        = "/tasks/today"
	EndpointAssignTasks       = "/tasks/assign"
	EndpointSchedule          = "/schedule/get"
	EndpointGeneratePlan      = "/schedule/generate-plan"
	EndpointTransactions      = "/transactions/list"
	EndpointAddTransaction    = "/transactions/add"
	EndpointDeleteTransaction = "/transactions/delete"
	EndpointGroupMembers      = "/group/members"
	EndpointUpdateCheck       = "/updates/check"
)

// validate проверяет мутирующие запросы до того, как они уйдут в сеть
// или встанут в очередь: невалидную запись нет смысла хранить оффлайн
var validate = validator.New()

// WeekRoster fetches the weekly chore plan
func (c *Client) WeekRoster(ctx context.Context, token string) (*pkgapi.WeekRosterResponse, error) {
	var resp pkgapi.WeekRosterResponse
	if err := c.get(ctx, EndpointWeekRoster, token, &resp); err != nil {
		return nil, fmt.Errorf("week roster request failed: %w", err)
	}
	return &resp, nil
}

// TodayRoster fetches today's plan entry
func (c *Client) TodayRoster(ctx context.Context, token string) (*pkgapi.TodayRosterResponse, error) {
	var resp pkgapi.TodayRosterResponse
	if err := c.get(ctx, EndpointTodayRoster, token, &resp); err != nil {
		return nil, fmt.Errorf("today roster request failed: %w", err)
	}
	return &resp, nil
}

// TodayTasks fetches the micro-tasks drawn for today
func (c *Client) TodayTasks(ctx context.Context, token string) (*pkgapi.TasksResponse, error) {
	var resp pkgapi.TasksResponse
	if err := c.get(ctx, EndpointTodayTasks, token, &resp); err != nil {
		return nil, fmt.Errorf("today tasks request failed: %w", err)
	}
	return &resp, nil
}

// AssignTasks runs the task lottery on the server
func (c *Client) AssignTasks(ctx context.Context, token string) (*pkgapi.AssignTasksResponse, error) {
	raw, err := c.Call(ctx, EndpointAssignTasks, http.MethodPost, nil, token)
	if err != nil {
		return nil, fmt.Errorf("assign tasks request failed: %w", err)
	}
	var resp pkgapi.AssignTasksResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode assign tasks response: %w", err)
	}
	return &resp, nil
}

// GeneratePlan regenerates the weekly plan from the latest schedules
func (c *Client) GeneratePlan(ctx context.Context, token string) error {
	if _, err := c.Call(ctx, EndpointGeneratePlan, http.MethodPost, nil, token); err != nil {
		return fmt.Errorf("generate plan request failed: %w", err)
	}
	return nil
}

// CheckAccess probes an authenticated endpoint to verify the stored token.
// Используется на старте: 401 здесь означает, что сессия больше не действует.
func (c *Client) CheckAccess(ctx context.Context, token string) error {
	if _, err := c.Call(ctx, EndpointSchedule, http.MethodGet, nil, token); err != nil {
		return fmt.Errorf("access check failed: %w", err)
	}
	return nil
}

// Transactions fetches the expense list with balances
func (c *Client) Transactions(ctx context.Context, token string) (*pkgapi.TransactionsResponse, error) {
	var resp pkgapi.TransactionsResponse
	if err := c.get(ctx, EndpointTransactions, token, &resp); err != nil {
		return nil, fmt.Errorf("transactions request failed: %w", err)
	}
	return &resp, nil
}

// AddTransaction records a shared expense.
// Под сбоем сети возвращает KindQueuedForSync: запись сохранена локально.
func (c *Client) AddTransaction(ctx context.Context, req pkgapi.AddTransactionRequest, token string) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	if _, err := c.Call(ctx, EndpointAddTransaction, http.MethodPost, req, token); err != nil {
		return fmt.Errorf("add transaction request failed: %w", err)
	}
	return nil
}

// DeleteTransaction removes an expense and reverses its balance changes
func (c *Client) DeleteTransaction(ctx context.Context, req pkgapi.DeleteTransactionRequest, token string) error {
	if err := validate.Struct(req); err != nil {
		return fmt.Errorf("invalid delete request: %w", err)
	}
	if _, err := c.Call(ctx, EndpointDeleteTransaction, http.MethodPost, req, token); err != nil {
		return fmt.Errorf("delete transaction request failed: %w", err)
	}
	return nil
}

// Members fetches the group (crew) member list
func (c *Client) Members(ctx context.Context, token string) (*pkgapi.MembersResponse, error) {
	var resp pkgapi.MembersResponse
	if err := c.get(ctx, EndpointGroupMembers, token, &resp); err != nil {
		return nil, fmt.Errorf("group members request failed: %w", err)
	}
	return &resp, nil
}

// CheckUpdates asks the server whether a newer app build exists
func (c *Client) CheckUpdates(ctx context.Context, token string) (*pkgapi.UpdateCheckResponse, error) {
	var resp pkgapi.UpdateCheckResponse
	if err := c.get(ctx, EndpointUpdateCheck, token, &resp); err != nil {
		return nil, fmt.Errorf("update check request failed: %w", err)
	}
	return &resp, nil
}

// get выполняет GET и декодирует ответ в result
func (c *Client) get(ctx context.Context, endpoint, token string, result any) error {
	raw, err := c.Call(ctx, endpoint, http.MethodGet, nil, token)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
