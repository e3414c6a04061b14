package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Money представляет денежную сумму.
// Сервер отдает суммы то числом, то строкой (наследие PHP-бэкенда),
// поэтому декодер принимает обе формы.
type Money float64

// UnmarshalJSON декодирует число или строку с числом
func (m *Money) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*m = Money(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("amount is neither number nor string: %w", err)
	}
	num, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return fmt.Errorf("failed to parse amount %q: %w", str, err)
	}
	*m = Money(num)
	return nil
}

// Transaction представляет одну запись о расходе.
// split_between хранится как JSON-строка с массивом ID участников.
type Transaction struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user_id"`       // кто заплатил
	Description  string    `json:"description"`   // на что потрачено
	Amount       Money     `json:"amount"`        // сумма
	SplitBetween string    `json:"split_between"` // JSON-массив ID участников
	CreatedAt    time.Time `json:"created_at"`
}

// Participants декодирует список ID участников, между которыми делится расход
func (t *Transaction) Participants() ([]int64, error) {
	if t.SplitBetween == "" {
		return nil, nil
	}
	var ids []int64
	if err := json.Unmarshal([]byte(t.SplitBetween), &ids); err != nil {
		return nil, fmt.Errorf("failed to decode split_between: %w", err)
	}
	return ids, nil
}

// Balance представляет сальдо с одним участником группы.
// Положительное значение — участник должен текущему пользователю.
type Balance struct {
	OtherUserID   int64  `json:"other_user_id"`
	OtherUserName string `json:"other_user_name"`
	Balance       Money  `json:"balance"`
}

// TransactionsResponse представляет ответ GET /transactions/list
type TransactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	Balances     []Balance     `json:"balances"`
	MyBalance    Money         `json:"my_balance"` // итоговое сальдо пользователя
}

// AddTransactionRequest представляет тело POST /transactions/add
type AddTransactionRequest struct {
	Description  string  `json:"description" validate:"required,min=1,max=200"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
	SplitBetween []int64 `json:"split_between" validate:"required,min=1,dive,gt=0"`
}

// DeleteTransactionRequest представляет тело POST /transactions/delete
type DeleteTransactionRequest struct {
	ID int64 `json:"id" validate:"required,gt=0"`
}
