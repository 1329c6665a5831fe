package core

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// UncategorizedName is shown for transactions whose category no longer exists.
const UncategorizedName = "Uncategorized"

const dateLayout = "2006-01-02"

type (
	TransactionType string

	// Date is an ISO calendar date (YYYY-MM-DD). Lexicographic order is
	// chronological order.
	Date string

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID         string          `json:"id"`
		Type       TransactionType `json:"type"`
		Amount     Money           `json:"amount"`
		Date       Date            `json:"date"`
		CategoryID string          `json:"categoryId"`
		Notes      string          `json:"notes,omitempty"`
		CreatedAt  string          `json:"createdAt"`
	}

	Category struct {
		ID    string          `json:"id"`
		Name  string          `json:"name"`
		Type  TransactionType `json:"type"`
		Color string          `json:"color"`
	}

	// FinanceState is the single persisted aggregate.
	FinanceState struct {
		Transactions []Transaction `json:"transactions"`
		Categories   []Category    `json:"categories"`
	}
)

var (
	ErrEmptyID         = errors.New("empty id")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyCategoryID = errors.New("empty category id")
	ErrEmptyName       = errors.New("empty category name")
	ErrInvalidColor    = errors.New("invalid color")
	ErrDuplicateID     = errors.New("duplicate id")
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (tt TransactionType) Validate() error {
	switch tt {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

// NewDate creates a Date from year, month, day. Out-of-range values are
// normalized the way time.Date does.
func NewDate(year, month, day int) Date {
	return DateOf(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

func (d Date) Time() (time.Time, error) {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, string(d))
	}
	return t, nil
}

func (d Date) Validate() error {
	_, err := d.Time()
	return err
}

func (d Date) String() string {
	return string(d)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.CategoryID) == "" {
		return ErrEmptyCategoryID
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if err := c.Type.Validate(); err != nil {
		return err
	}
	if !hexColor.MatchString(c.Color) {
		return ErrInvalidColor
	}
	return nil
}

// Validate checks every entity and id uniqueness within each collection.
// Dangling category references are allowed.
func (s FinanceState) Validate() error {
	seen := make(map[string]struct{}, len(s.Transactions))
	for i, t := range s.Transactions {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
		if _, dup := seen[t.ID]; dup {
			return fmt.Errorf("transaction %q: %w", t.ID, ErrDuplicateID)
		}
		seen[t.ID] = struct{}{}
	}

	seen = make(map[string]struct{}, len(s.Categories))
	for i, c := range s.Categories {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("category %d: %w", i, err)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("category %q: %w", c.ID, ErrDuplicateID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

