package settle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/roomos/pkg/api"
)

var testMembers = []api.Member{
	{ID: 1, Name: "Sumit"},
	{ID: 2, Name: "Ravi"},
	{ID: 3, Name: "Amit"},
}

func tx(id, userID int64, amount float64, split string) api.Transaction {
	return api.Transaction{
		ID:           id,
		UserID:       userID,
		Amount:       api.Money(amount),
		SplitBetween: split,
	}
}

func TestIsSettlement(t *testing.T) {
	tests := []struct {
		name string
		tx   api.Transaction
		want bool
	}{
		{
			name: "direct repayment to another member",
			tx:   tx(1, 1, 50, `[2]`),
			want: true,
		},
		{
			name: "shared expense between two",
			tx:   tx(2, 1, 50, `[1,2]`),
			want: false,
		},
		{
			name: "solo expense on yourself",
			tx:   tx(3, 1, 50, `[1]`),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsSettlement(&tt.tx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNetBalances_SharedExpense(t *testing.T) {
	// Sumit заплатил 90 за троих: каждому по 30
	transactions := []api.Transaction{
		tx(1, 1, 90, `[1,2,3]`),
	}

	balances, err := NetBalances(transactions, testMembers)
	require.NoError(t, err)
	assert.InDelta(t, 60, balances[1], 0.001)
	assert.InDelta(t, -30, balances[2], 0.001)
	assert.InDelta(t, -30, balances[3], 0.001)
}

func TestNetBalances_SettlementCancelsDebt(t *testing.T) {
	transactions := []api.Transaction{
		// Sumit заплатил 60 за себя и Ravi
		tx(1, 1, 60, `[1,2]`),
		// Ravi вернул свои 30
		tx(2, 2, 30, `[1]`),
	}

	balances, err := NetBalances(transactions, testMembers)
	require.NoError(t, err)
	assert.InDelta(t, 0, balances[1], 0.001)
	assert.InDelta(t, 0, balances[2], 0.001)
}

func TestNetBalances_BadSplitJSON(t *testing.T) {
	transactions := []api.Transaction{
		tx(7, 1, 60, `not-json`),
	}

	_, err := NetBalances(transactions, testMembers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction 7")
}

func TestPlan_TwoTransfersForThreeMembers(t *testing.T) {
	// Sumit: +60, Ravi: -30, Amit: -30 → два перевода на Sumit
	balances := map[int64]float64{1: 60, 2: -30, 3: -30}

	plan := Plan(balances, testMembers)
	require.Len(t, plan, 2)
	for _, tr := range plan {
		assert.Equal(t, int64(1), tr.ToID)
		assert.Equal(t, "Sumit", tr.ToName)
		assert.InDelta(t, 30, tr.Amount, 0.001)
	}
	assert.NotEqual(t, plan[0].FromID, plan[1].FromID)
}

func TestPlan_ChainCollapsesToSingleTransfer(t *testing.T) {
	// Ravi должен 50, Sumit ждет 50, Amit в нуле — один перевод
	balances := map[int64]float64{1: 50, 2: -50, 3: 0}

	plan := Plan(balances, testMembers)
	require.Len(t, plan, 1)
	assert.Equal(t, int64(2), plan[0].FromID)
	assert.Equal(t, int64(1), plan[0].ToID)
	assert.InDelta(t, 50, plan[0].Amount, 0.001)
}

func TestPlan_IgnoresCentResidue(t *testing.T) {
	// Остатки меньше копейки не порождают переводов
	balances := map[int64]float64{1: 0.004, 2: -0.004, 3: 0}

	plan := Plan(balances, testMembers)
	assert.Empty(t, plan)
}

func TestPlan_EmptyBalances(t *testing.T) {
	assert.Empty(t, Plan(map[int64]float64{}, testMembers))
}
