package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/iudanet/roomos/internal/client/api"
	"github.com/iudanet/roomos/internal/settle"
	pkgapi "github.com/iudanet/roomos/pkg/api"
)

func (a *App) runExpenses(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	resp, err := a.apiClient.Transactions(ctx, token)
	if err != nil {
		return err
	}

	a.println("=== Shared Expenses ===")
	a.println()

	if len(resp.Transactions) == 0 {
		a.println("No expenses recorded.")
	}
	for i := range resp.Transactions {
		tx := &resp.Transactions[i]
		a.printf("%d. %s — %.2f\n", tx.ID, tx.Description, float64(tx.Amount))
		if ok, err := settle.IsSettlement(tx); err == nil && ok {
			a.println("   (settlement)")
		}
	}

	a.println()
	a.printf("My balance: %.2f\n", float64(resp.MyBalance))
	for _, b := range resp.Balances {
		verb := "owes you"
		amount := float64(b.Balance)
		if amount < 0 {
			verb = "you owe"
			amount = -amount
		}
		a.printf("  %s: %s %.2f\n", b.OtherUserName, verb, amount)
	}

	return nil
}

func (a *App) runAddExpense(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: roomos add-expense DESCRIPTION AMOUNT ID,ID,...")
	}

	amount, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[1], err)
	}

	var split []int64
	for _, part := range strings.Split(args[2], ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid member id %q: %w", part, err)
		}
		split = append(split, id)
	}

	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	req := pkgapi.AddTransactionRequest{
		Description:  args[0],
		Amount:       amount,
		SplitBetween: split,
	}
	if err := a.apiClient.AddTransaction(ctx, req, token); err != nil {
		// Оффлайн — не сбой: запись сохранена и уйдет при синке
		if api.IsQueuedForSync(err) {
			a.println("Offline: expense saved locally, it will sync when the server is reachable.")
			return nil
		}
		return err
	}

	a.println("Expense recorded.")
	return nil
}

func (a *App) runDeleteExpense(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: roomos delete-expense ID")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid expense id %q: %w", args[0], err)
	}

	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	if err := a.apiClient.DeleteTransaction(ctx, pkgapi.DeleteTransactionRequest{ID: id}, token); err != nil {
		if api.IsQueuedForSync(err) {
			a.println("Offline: deletion saved locally, it will sync when the server is reachable.")
			return nil
		}
		return err
	}

	a.println("Expense deleted.")
	return nil
}

func (a *App) runMembers(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	resp, err := a.apiClient.Members(ctx, token)
	if err != nil {
		return err
	}

	a.println("=== Group Members ===")
	a.println()
	for _, m := range resp.Members {
		a.printf("  %d. %s\n", m.ID, m.Name)
	}
	return nil
}

func (a *App) runSettle(ctx context.Context) error {
	token, err := a.token(ctx)
	if err != nil {
		return err
	}

	txResp, err := a.apiClient.Transactions(ctx, token)
	if err != nil {
		return err
	}
	membersResp, err := a.apiClient.Members(ctx, token)
	if err != nil {
		return err
	}

	balances, err := settle.NetBalances(txResp.Transactions, membersResp.Members)
	if err != nil {
		return fmt.Errorf("failed to compute balances: %w", err)
	}

	plan := settle.Plan(balances, membersResp.Members)
	if len(plan) == 0 {
		a.println("Everyone is settled up.")
		return nil
	}

	a.println("=== Settlement Plan ===")
	a.println()
	for _, tr := range plan {
		a.printf("  %s pays %s %.2f\n", tr.FromName, tr.ToName, tr.Amount)
	}
	return nil
}
