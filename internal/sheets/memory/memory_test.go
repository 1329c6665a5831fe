package memory

import (
	"context"
	"errors"
	"testing"

	"fintrack/internal/core"
)

func TestMirrorKeepsLastRows(t *testing.T) {
	m := New()
	ctx := context.Background()
	state := core.FinanceState{Transactions: []core.Transaction{
		{ID: "a", Type: core.Expense, Amount: core.Cents(100), Date: "2024-01-01", CategoryID: "x"},
	}}

	if err := m.MirrorState(ctx, state); err != nil {
		t.Fatalf("mirror: %v", err)
	}
	if got := m.Rows(); len(got) != 2 || got[1][5] != "a" {
		t.Fatalf("unexpected rows %v", got)
	}

	boom := errors.New("quota exceeded")
	m.FailWith(boom)
	if err := m.MirrorState(ctx, core.FinanceState{}); !errors.Is(err, boom) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if m.Writes() != 1 || len(m.Rows()) != 2 {
		t.Fatalf("failed write must not change state: writes=%d rows=%d", m.Writes(), len(m.Rows()))
	}
}
