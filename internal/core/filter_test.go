package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moneyPtr(cents int64) *Money {
	m := Cents(cents)
	return &m
}

func sampleTransactions() []Transaction {
	return []Transaction{
		{ID: "1", Type: Income, Amount: Cents(250000), Date: "2024-01-01", CategoryID: "1", Notes: "January salary"},
		{ID: "2", Type: Expense, Amount: Cents(4550), Date: "2024-01-03", CategoryID: "5", Notes: "Groceries at Market"},
		{ID: "3", Type: Expense, Amount: Cents(120000), Date: "2024-01-05", CategoryID: "4"},
		{ID: "4", Type: Expense, Amount: Cents(1299), Date: "2024-02-01", CategoryID: "7", Notes: "cinema"},
		{ID: "5", Type: Income, Amount: Cents(30000), Date: "2024-02-10", CategoryID: "2", Notes: "freelance MARKET study"},
	}
}

func ids(ts []Transaction) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestFilterTransactions(t *testing.T) {
	all := sampleTransactions()

	tests := []struct {
		name    string
		filters TransactionFilters
		want    []string
	}{
		{"no filters", TransactionFilters{}, []string{"1", "2", "3", "4", "5"}},
		{"start date inclusive", TransactionFilters{StartDate: "2024-01-05"}, []string{"3", "4", "5"}},
		{"end date inclusive", TransactionFilters{EndDate: "2024-01-03"}, []string{"1", "2"}},
		{"date range", TransactionFilters{StartDate: "2024-01-02", EndDate: "2024-02-01"}, []string{"2", "3", "4"}},
		{"type", TransactionFilters{Type: Income}, []string{"1", "5"}},
		{"category", TransactionFilters{CategoryID: "5"}, []string{"2"}},
		{"min amount inclusive", TransactionFilters{MinAmount: moneyPtr(30000)}, []string{"1", "3", "5"}},
		{"max amount inclusive", TransactionFilters{MaxAmount: moneyPtr(4550)}, []string{"2", "4"}},
		{"search is case-insensitive", TransactionFilters{SearchTerm: "market"}, []string{"2", "5"}},
		{"search skips empty notes", TransactionFilters{SearchTerm: "a"}, []string{"1", "2", "4", "5"}},
		{"and semantics", TransactionFilters{Type: Expense, MaxAmount: moneyPtr(5000), SearchTerm: "MARKET"}, []string{"2"}},
		{"nothing matches", TransactionFilters{CategoryID: "missing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterTransactions(all, tt.filters)
			assert.Equal(t, tt.want, ids(got))

			again := FilterTransactions(got, tt.filters)
			assert.Equal(t, got, again, "filtering must be idempotent")
		})
	}

	assert.Equal(t, sampleTransactions(), all, "input must not be mutated")
}

func TestTransactionFiltersKey(t *testing.T) {
	a := TransactionFilters{Type: Expense, MinAmount: moneyPtr(100), SearchTerm: "Food"}
	b := TransactionFilters{Type: Expense, MinAmount: moneyPtr(100), SearchTerm: "food"}
	c := TransactionFilters{Type: Expense, MaxAmount: moneyPtr(100), SearchTerm: "food"}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.True(t, TransactionFilters{}.IsZero())
	assert.False(t, a.IsZero())
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		now         time.Time
		first, last Date
	}{
		{time.Date(2024, 2, 15, 12, 0, 0, 0, time.UTC), "2024-02-01", "2024-02-29"},
		{time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), "2023-02-01", "2023-02-28"},
		{time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC), "2024-12-01", "2024-12-31"},
		{time.Date(2024, 4, 30, 23, 0, 0, 0, time.FixedZone("UTC+10", 10*3600)), "2024-04-01", "2024-04-30"},
	}
	for _, tt := range tests {
		first, last := MonthBounds(tt.now)
		assert.Equal(t, tt.first, first)
		assert.Equal(t, tt.last, last)
	}
}

func TestGetCurrentMonthTransactions(t *testing.T) {
	now := time.Date(2024, 1, 20, 9, 0, 0, 0, time.Local)
	got := GetCurrentMonthTransactions(sampleTransactions(), now)
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestGroupTransactionsByDate(t *testing.T) {
	in := []Transaction{
		{ID: "a", Date: "2024-01-02"},
		{ID: "b", Date: "2024-01-01"},
		{ID: "c", Date: "2024-01-02"},
		{ID: "d", Date: "2024-01-03"},
		{ID: "e", Date: "2024-01-02"},
	}

	grouped := GroupTransactionsByDate(in)

	total := 0
	for _, g := range grouped {
		total += len(g)
	}
	assert.Equal(t, len(in), total)
	require.Len(t, grouped, 3)
	assert.Equal(t, []string{"a", "c", "e"}, ids(grouped["2024-01-02"]))
	assert.Equal(t, []Date{"2024-01-03", "2024-01-02", "2024-01-01"}, SortedDates(grouped))

	assert.Empty(t, GroupTransactionsByDate(nil))
}

func TestGetCategoryByID(t *testing.T) {
	cats := []Category{{ID: "1", Name: "Salary"}, {ID: "2", Name: "Freelance"}}

	c, ok := GetCategoryByID(cats, "2")
	assert.True(t, ok)
	assert.Equal(t, "Freelance", c.Name)

	_, ok = GetCategoryByID(cats, "9")
	assert.False(t, ok)

	assert.Equal(t, "Salary", CategoryName(cats, "1"))
	assert.Equal(t, UncategorizedName, CategoryName(cats, "9"))
}
