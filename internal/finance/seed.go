package finance

import "fintrack/internal/core"

var defaultCategories = [...]core.Category{
	{ID: "1", Name: "Salary", Type: core.Income, Color: "#4CAF50"},
	{ID: "2", Name: "Freelance", Type: core.Income, Color: "#8BC34A"},
	{ID: "3", Name: "Investments", Type: core.Income, Color: "#CDDC39"},
	{ID: "4", Name: "Housing", Type: core.Expense, Color: "#F44336"},
	{ID: "5", Name: "Food", Type: core.Expense, Color: "#FF9800"},
	{ID: "6", Name: "Transportation", Type: core.Expense, Color: "#2196F3"},
	{ID: "7", Name: "Entertainment", Type: core.Expense, Color: "#9C27B0"},
	{ID: "8", Name: "Utilities", Type: core.Expense, Color: "#607D8B"},
}

// DefaultCategories returns a fresh copy of the built-in categories.
func DefaultCategories() []core.Category {
	out := make([]core.Category, len(defaultCategories))
	copy(out, defaultCategories[:])
	return out
}

// DefaultState is the state used when nothing has been persisted.
func DefaultState() core.FinanceState {
	return core.FinanceState{
		Transactions: []core.Transaction{},
		Categories:   DefaultCategories(),
	}
}
