package core

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// TransactionFilters selects transactions. Zero-valued fields are not applied.
type TransactionFilters struct {
	StartDate  Date
	EndDate    Date
	Type       TransactionType
	CategoryID string
	MinAmount  *Money
	MaxAmount  *Money
	SearchTerm string
}

// Matches reports whether t satisfies every set predicate.
func (f TransactionFilters) Matches(t Transaction) bool {
	if f.StartDate != "" && t.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && t.Date > f.EndDate {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.CategoryID != "" && t.CategoryID != f.CategoryID {
		return false
	}
	if f.MinAmount != nil && t.Amount.Cents < f.MinAmount.Cents {
		return false
	}
	if f.MaxAmount != nil && t.Amount.Cents > f.MaxAmount.Cents {
		return false
	}
	if f.SearchTerm != "" &&
		!strings.Contains(strings.ToLower(t.Notes), strings.ToLower(f.SearchTerm)) {
		return false
	}
	return true
}

// IsZero reports whether no filter is set.
func (f TransactionFilters) IsZero() bool {
	return f == TransactionFilters{}
}

// Key is a stable string form of the filters, usable as a cache key.
func (f TransactionFilters) Key() string {
	amount := func(m *Money) string {
		if m == nil {
			return ""
		}
		return strconv.FormatInt(m.Cents, 10)
	}
	return strings.Join([]string{
		string(f.StartDate),
		string(f.EndDate),
		string(f.Type),
		f.CategoryID,
		amount(f.MinAmount),
		amount(f.MaxAmount),
		strings.ToLower(f.SearchTerm),
	}, "|")
}

// FilterTransactions returns the transactions matching all set filters, in
// input order. The input slice is never modified.
func FilterTransactions(transactions []Transaction, filters TransactionFilters) []Transaction {
	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if filters.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// MonthBounds returns the first and last calendar day of now's month in
// now's location.
func MonthBounds(now time.Time) (first, last Date) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, -1)
	return DateOf(start), DateOf(end)
}

// GetCurrentMonthTransactions keeps the transactions dated within now's
// calendar month.
func GetCurrentMonthTransactions(transactions []Transaction, now time.Time) []Transaction {
	first, last := MonthBounds(now)
	return FilterTransactions(transactions, TransactionFilters{StartDate: first, EndDate: last})
}

// GroupTransactionsByDate partitions transactions by exact date, keeping
// input order within each group.
func GroupTransactionsByDate(transactions []Transaction) map[Date][]Transaction {
	grouped := make(map[Date][]Transaction)
	for _, t := range transactions {
		grouped[t.Date] = append(grouped[t.Date], t)
	}
	return grouped
}

// SortedDates returns the group keys newest first.
func SortedDates(grouped map[Date][]Transaction) []Date {
	dates := make([]Date, 0, len(grouped))
	for d := range grouped {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] > dates[j] })
	return dates
}

// GetCategoryByID finds a category by id.
func GetCategoryByID(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryName resolves a category name, falling back to UncategorizedName.
func CategoryName(categories []Category, id string) string {
	if c, ok := GetCategoryByID(categories, id); ok {
		return c.Name
	}
	return UncategorizedName
}
