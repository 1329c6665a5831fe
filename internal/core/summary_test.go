package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id string, tt TransactionType, cents int64, date Date, categoryID string) Transaction {
	return Transaction{ID: id, Type: tt, Amount: Cents(cents), Date: date, CategoryID: categoryID}
}

func TestCalculateSummary_Example(t *testing.T) {
	categories := []Category{
		{ID: "salary", Name: "Salary", Type: Income, Color: "#4CAF50"},
		{ID: "food", Name: "Food", Type: Expense, Color: "#FF9800"},
	}
	transactions := []Transaction{
		tx("1", Income, 10000, "2024-01-01", "salary"),
		tx("2", Expense, 4000, "2024-01-01", "food"),
		tx("3", Expense, 2000, "2024-01-02", "food"),
	}

	s := CalculateSummary(transactions, categories)

	assert.Equal(t, Cents(10000), s.TotalIncome)
	assert.Equal(t, Cents(6000), s.TotalExpenses)
	assert.Equal(t, Cents(4000), s.Balance)

	require.Len(t, s.TopIncomeCategories, 1)
	assert.Equal(t, "Salary", s.TopIncomeCategories[0].CategoryName)
	assert.Equal(t, 100.0, s.TopIncomeCategories[0].Percentage)

	require.Len(t, s.TopExpenseCategories, 1)
	food := s.TopExpenseCategories[0]
	assert.Equal(t, "food", food.CategoryID)
	assert.Equal(t, Cents(6000), food.Total)
	assert.Equal(t, 100.0, food.Percentage)
	assert.Equal(t, "#FF9800", food.Color)
}

func TestCalculateSummary_Empty(t *testing.T) {
	s := CalculateSummary(nil, seedCategories())

	assert.True(t, s.TotalIncome.IsZero())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.True(t, s.Balance.IsZero())
	assert.NotNil(t, s.TopIncomeCategories)
	assert.Empty(t, s.TopIncomeCategories)
	assert.NotNil(t, s.TopExpenseCategories)
	assert.Empty(t, s.TopExpenseCategories)
}

func TestCalculateSummary_BalanceIdentity(t *testing.T) {
	// Amounts that drift under binary floating point.
	var transactions []Transaction
	for i := 0; i < 1000; i++ {
		transactions = append(transactions,
			tx(fmt.Sprint("i", i), Income, 10, "2024-01-01", "x"),
			tx(fmt.Sprint("e", i), Expense, 20, "2024-01-01", "y"),
		)
	}
	s := CalculateSummary(transactions, nil)

	assert.Equal(t, Cents(10000), s.TotalIncome)
	assert.Equal(t, Cents(20000), s.TotalExpenses)
	assert.Equal(t, s.TotalIncome.Cents-s.TotalExpenses.Cents, s.Balance.Cents)
}

func TestCalculateSummary_DanglingCategoryCountsInTotalsOnly(t *testing.T) {
	categories := []Category{{ID: "food", Name: "Food", Type: Expense, Color: "#FF9800"}}
	transactions := []Transaction{
		tx("1", Expense, 500, "2024-01-01", "food"),
		tx("2", Expense, 1500, "2024-01-01", "gone"),
	}

	s := CalculateSummary(transactions, categories)

	assert.Equal(t, Cents(2000), s.TotalExpenses)
	require.Len(t, s.TopExpenseCategories, 1)
	assert.Equal(t, 25.0, s.TopExpenseCategories[0].Percentage)
}

func TestCalculateSummary_ZeroBucketClampsPercentage(t *testing.T) {
	// An income category that only received expense transactions: the
	// income total is zero.
	categories := []Category{{ID: "bonus", Name: "Bonus", Type: Income, Color: "#000000"}}
	transactions := []Transaction{tx("1", Expense, 700, "2024-01-01", "bonus")}

	s := CalculateSummary(transactions, categories)

	require.Len(t, s.TopIncomeCategories, 1)
	assert.Equal(t, Cents(700), s.TopIncomeCategories[0].Total)
	assert.Equal(t, 0.0, s.TopIncomeCategories[0].Percentage)
}

func TestCalculateSummary_TopFiveSortedDescendingStableTies(t *testing.T) {
	var categories []Category
	var transactions []Transaction
	amounts := []int64{100, 700, 300, 700, 200, 900, 50}
	for i, a := range amounts {
		id := fmt.Sprint("c", i)
		categories = append(categories, Category{ID: id, Name: id, Type: Expense, Color: "#111111"})
		transactions = append(transactions, tx(fmt.Sprint("t", i), Expense, a, "2024-01-01", id))
	}

	s := CalculateSummary(transactions, categories)

	require.Len(t, s.TopExpenseCategories, TopCategoriesLimit)
	var ids []string
	for i, c := range s.TopExpenseCategories {
		ids = append(ids, c.CategoryID)
		if i > 0 {
			assert.GreaterOrEqual(t, s.TopExpenseCategories[i-1].Total.Cents, c.Total.Cents)
		}
	}
	assert.Equal(t, []string{"c5", "c1", "c3", "c2", "c4"}, ids)
	assert.Empty(t, s.TopIncomeCategories)
}

func TestCalculateSummary_DoesNotMutateInput(t *testing.T) {
	categories := []Category{
		{ID: "a", Name: "A", Type: Expense, Color: "#111111"},
		{ID: "b", Name: "B", Type: Expense, Color: "#222222"},
	}
	transactions := []Transaction{
		tx("1", Expense, 100, "2024-01-02", "a"),
		tx("2", Expense, 900, "2024-01-01", "b"),
	}
	before := append([]Transaction{}, transactions...)
	beforeCats := append([]Category{}, categories...)

	CalculateSummary(transactions, categories)

	assert.Equal(t, before, transactions)
	assert.Equal(t, beforeCats, categories)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(Cents(100), Cents(0)))
	assert.Equal(t, 33.33, Percentage(Cents(1), Cents(3)))
	assert.Equal(t, 66.67, Percentage(Cents(2), Cents(3)))
	assert.Equal(t, 250.0, Percentage(Cents(5), Cents(2)))
}

func TestIncomeExpenseRatio(t *testing.T) {
	assert.Equal(t, 0.0, IncomeExpenseRatio(FinanceSummary{TotalIncome: Cents(500)}))
	assert.Equal(t, 50.0, IncomeExpenseRatio(FinanceSummary{TotalIncome: Cents(500), TotalExpenses: Cents(1000)}))
}

// seedCategories mirrors a small seed without importing the
// repository package.
func seedCategories() []Category {
	return []Category{
		{ID: "1", Name: "Salary", Type: Income, Color: "#4CAF50"},
		{ID: "4", Name: "Housing", Type: Expense, Color: "#F44336"},
	}
}
