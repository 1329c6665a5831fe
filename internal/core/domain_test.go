package core

import (
	"errors"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{"2024-02-29", true},
		{"2023-02-29", false},
		{"2024-1-1", false},
		{"", false},
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidDate) {
			t.Fatalf("case %d expected ErrInvalidDate, got %v", i, err)
		}
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	ts := time.Date(2024, 3, 1, 2, 0, 0, 0, time.UTC).In(loc)
	if got := DateOf(ts); got != "2024-02-29" {
		t.Fatalf("expected local calendar date, got %s", got)
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:         "t1",
		Type:       Expense,
		Amount:     Cents(100),
		Date:       NewDate(2025, 1, 1),
		CategoryID: "5",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		mutate func(*Transaction)
		want   error
	}{
		{func(tx *Transaction) { tx.ID = " " }, ErrEmptyID},
		{func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{func(tx *Transaction) { tx.Amount = Cents(0) }, ErrInvalidAmount},
		{func(tx *Transaction) { tx.Amount = Cents(-5) }, ErrInvalidAmount},
		{func(tx *Transaction) { tx.Date = "01/02/2025" }, ErrInvalidDate},
		{func(tx *Transaction) { tx.CategoryID = "" }, ErrEmptyCategoryID},
	}
	for i, b := range bads {
		tx := good
		b.mutate(&tx)
		if err := tx.Validate(); !errors.Is(err, b.want) {
			t.Fatalf("case %d expected %v, got %v", i, b.want, err)
		}
	}
}

func TestCategoryValidate(t *testing.T) {
	good := Category{ID: "c", Name: "Food", Type: Expense, Color: "#FF9800"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	short := good
	short.Color = "#abc"
	if err := short.Validate(); err != nil {
		t.Fatalf("expected short hex ok, got %v", err)
	}

	bads := []Category{
		{ID: "", Name: "Food", Type: Expense, Color: "#FF9800"},
		{ID: "c", Name: "  ", Type: Expense, Color: "#FF9800"},
		{ID: "c", Name: "Food", Type: "other", Color: "#FF9800"},
		{ID: "c", Name: "Food", Type: Expense, Color: "orange"},
		{ID: "c", Name: "Food", Type: Expense, Color: "#FF98"},
	}
	for i, c := range bads {
		if err := c.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestFinanceStateValidateDuplicates(t *testing.T) {
	tx := Transaction{ID: "t", Type: Income, Amount: Cents(1), Date: "2024-01-01", CategoryID: "x"}
	s := FinanceState{Transactions: []Transaction{tx, tx}}
	if err := s.Validate(); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	c := Category{ID: "c", Name: "A", Type: Income, Color: "#000"}
	s = FinanceState{Transactions: []Transaction{tx}, Categories: []Category{c, c}}
	if err := s.Validate(); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}

	// dangling category references are tolerated
	s = FinanceState{Transactions: []Transaction{tx}, Categories: []Category{c}}
	if err := s.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}
