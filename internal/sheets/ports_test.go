package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
)

func TestBuildRows(t *testing.T) {
	state := core.FinanceState{
		Categories: []core.Category{{ID: "5", Name: "Food", Type: core.Expense, Color: "#FF9800"}},
		Transactions: []core.Transaction{
			{ID: "a", Type: core.Expense, Amount: core.Cents(1250), Date: "2024-01-02", CategoryID: "5", Notes: "lunch"},
			{ID: "b", Type: core.Income, Amount: core.Cents(300000), Date: "2024-01-05", CategoryID: "gone"},
			{ID: "c", Type: core.Expense, Amount: core.Cents(5), Date: "2024-01-02", CategoryID: "5"},
		},
	}

	rows := BuildRows(state)

	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []any{"2024-01-05", "income", core.UncategorizedName, "3000.00", "", "b"}, rows[1])
	assert.Equal(t, []any{"2024-01-02", "expense", "Food", "12.50", "lunch", "a"}, rows[2])
	assert.Equal(t, "0.05", rows[3][3])
	assert.Equal(t, "a", state.Transactions[0].ID, "input order is untouched")
}

func TestBuildRows_Empty(t *testing.T) {
	rows := BuildRows(core.FinanceState{})
	assert.Equal(t, [][]any{Header}, rows)
}
