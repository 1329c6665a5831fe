package core

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TopCategoriesLimit caps each ranked list in a FinanceSummary.
const TopCategoriesLimit = 5

var hundred = decimal.NewFromInt(100)

// CategorySummary is one ranked category entry of a summary.
type CategorySummary struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Total        Money   `json:"total"`
	Percentage   float64 `json:"percentage"`
	Color        string  `json:"color"`
}

// FinanceSummary aggregates a transaction list.
type FinanceSummary struct {
	TotalIncome          Money             `json:"totalIncome"`
	TotalExpenses        Money             `json:"totalExpenses"`
	Balance              Money             `json:"balance"`
	TopIncomeCategories  []CategorySummary `json:"topIncomeCategories"`
	TopExpenseCategories []CategorySummary `json:"topExpenseCategories"`
}

// Percentage returns part/whole*100 rounded to two decimals. A zero whole
// yields 0 rather than a non-finite value.
func Percentage(part, whole Money) float64 {
	if whole.Cents == 0 {
		return 0
	}
	return decimal.NewFromInt(part.Cents).
		Mul(hundred).
		Div(decimal.NewFromInt(whole.Cents)).
		Round(2).
		InexactFloat64()
}

// CalculateSummary computes totals, the balance and the top categories of
// each type.
//
// Category totals accumulate across every transaction regardless of its
// type. A category's percentage is taken against the income total when the
// category is an income category and against the expense total otherwise.
// Transactions whose category is unknown count toward the type totals only.
func CalculateSummary(transactions []Transaction, categories []Category) FinanceSummary {
	var income, expenses Money
	totals := make(map[string]Money, len(categories))

	for _, t := range transactions {
		if t.Type == Income {
			income = income.Add(t.Amount)
		} else {
			expenses = expenses.Add(t.Amount)
		}
		totals[t.CategoryID] = totals[t.CategoryID].Add(t.Amount)
	}

	incomeCats := make([]CategorySummary, 0)
	expenseCats := make([]CategorySummary, 0)

	for _, c := range categories {
		total := totals[c.ID]
		if total.IsZero() {
			continue
		}

		bucket := expenses
		if c.Type == Income {
			bucket = income
		}
		cs := CategorySummary{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Total:        total,
			Percentage:   Percentage(total, bucket),
			Color:        c.Color,
		}

		if c.Type == Income {
			incomeCats = append(incomeCats, cs)
		} else {
			expenseCats = append(expenseCats, cs)
		}
	}

	return FinanceSummary{
		TotalIncome:          income,
		TotalExpenses:        expenses,
		Balance:              income.Sub(expenses),
		TopIncomeCategories:  topCategories(incomeCats),
		TopExpenseCategories: topCategories(expenseCats),
	}
}

// topCategories sorts descending by total, ties keeping category order.
func topCategories(in []CategorySummary) []CategorySummary {
	sort.SliceStable(in, func(i, j int) bool {
		return in[i].Total.Cents > in[j].Total.Cents
	})
	if len(in) > TopCategoriesLimit {
		in = in[:TopCategoriesLimit]
	}
	return in
}

// IncomeExpenseRatio is income as a percentage of expenses, 0 when there are
// no expenses.
func IncomeExpenseRatio(s FinanceSummary) float64 {
	return Percentage(s.TotalIncome, s.TotalExpenses)
}
