// Package sheets mirrors the finance state into a spreadsheet.
package sheets

import (
	"context"
	"sort"

	"fintrack/internal/core"
)

// Mirror replaces the mirrored copy of the transactions with state.
type Mirror interface {
	MirrorState(ctx context.Context, state core.FinanceState) error
}

// Header is the first row of the mirrored sheet.
var Header = []any{"Date", "Type", "Category", "Amount", "Notes", "ID"}

// BuildRows renders state as sheet rows: the header, then one row per
// transaction, newest date first. Amounts are plain decimals so the sheet
// parses them as numbers.
func BuildRows(state core.FinanceState) [][]any {
	ts := append([]core.Transaction(nil), state.Transactions...)
	sort.SliceStable(ts, func(i, j int) bool { return ts[i].Date > ts[j].Date })

	rows := make([][]any, 0, len(ts)+1)
	rows = append(rows, Header)
	for _, t := range ts {
		rows = append(rows, []any{
			string(t.Date),
			string(t.Type),
			core.CategoryName(state.Categories, t.CategoryID),
			t.Amount.Decimal().StringFixed(2),
			t.Notes,
			t.ID,
		})
	}
	return rows
}
