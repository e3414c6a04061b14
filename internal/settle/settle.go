// Package settle считает сальдо по общим расходам и строит план
// взаиморасчетов с минимальным числом переводов.
package settle

import (
	"fmt"
	"math"
	"sort"

	"github.com/iudanet/roomos/pkg/api"
)

// epsilon гасит копеечные остатки от деления сумм на участников
const epsilon = 0.01

// Transfer — один перевод в плане взаиморасчетов
type Transfer struct {
	FromID   int64
	FromName string
	ToID     int64
	ToName   string
	Amount   float64
}

// IsSettlement reports whether the transaction is a direct repayment
// rather than a shared expense: деньги отданы одному человеку, и это
// не сам плательщик.
func IsSettlement(tx *api.Transaction) (bool, error) {
	ids, err := tx.Participants()
	if err != nil {
		return false, err
	}
	return len(ids) == 1 && ids[0] != tx.UserID, nil
}

// NetBalances computes each member's net position over the
// transaction history. Положительное сальдо — человеку должны.
//
// Обычный расход делится поровну между участниками, и доля
// плательщика тоже входит в деление. Прямой возврат долга целиком
// переносится с плательщика на получателя.
func NetBalances(transactions []api.Transaction, members []api.Member) (map[int64]float64, error) {
	balances := make(map[int64]float64, len(members))
	for _, m := range members {
		balances[m.ID] = 0
	}

	for i := range transactions {
		tx := &transactions[i]
		ids, err := tx.Participants()
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", tx.ID, err)
		}
		if len(ids) == 0 {
			continue
		}

		amount := float64(tx.Amount)

		settlement, err := IsSettlement(tx)
		if err != nil {
			return nil, fmt.Errorf("transaction %d: %w", tx.ID, err)
		}
		if settlement {
			// Возврат долга: плательщик погасил, получатель получил
			balances[tx.UserID] += amount
			balances[ids[0]] -= amount
			continue
		}

		share := amount / float64(len(ids))
		balances[tx.UserID] += amount
		for _, id := range ids {
			balances[id] -= share
		}
	}

	return balances, nil
}

// Plan builds a transfer plan that settles all debts.
// Жадная схема: самый большой должник платит самому большому
// кредитору, пока у всех не обнулится сальдо. Для N участников
// получается не больше N-1 переводов.
func Plan(balances map[int64]float64, members []api.Member) []Transfer {
	names := make(map[int64]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}

	type position struct {
		id      int64
		balance float64
	}

	var creditors, debtors []position
	for id, b := range balances {
		switch {
		case b > epsilon:
			creditors = append(creditors, position{id: id, balance: b})
		case b < -epsilon:
			debtors = append(debtors, position{id: id, balance: -b})
		}
	}

	// Сортируем по убыванию, при равенстве — по ID для стабильного плана
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].balance != creditors[j].balance {
			return creditors[i].balance > creditors[j].balance
		}
		return creditors[i].id < creditors[j].id
	})
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].balance != debtors[j].balance {
			return debtors[i].balance > debtors[j].balance
		}
		return debtors[i].id < debtors[j].id
	})

	var plan []Transfer
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		c := &creditors[ci]
		d := &debtors[di]

		amount := math.Min(c.balance, d.balance)
		plan = append(plan, Transfer{
			FromID:   d.id,
			FromName: names[d.id],
			ToID:     c.id,
			ToName:   names[c.id],
			Amount:   round2(amount),
		})

		c.balance -= amount
		d.balance -= amount
		if c.balance <= epsilon {
			ci++
		}
		if d.balance <= epsilon {
			di++
		}
	}

	return plan
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
