package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fintrack/internal/amqp"
	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/log"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrCategoryInUse       = errors.New("category is used by transactions")
	ErrUnknownCategory     = errors.New("unknown category")
)

// Repository is the persistence the service needs; *finance.Repository
// satisfies it.
type Repository interface {
	LoadFinanceData(ctx context.Context) core.FinanceState
	SaveFinanceData(ctx context.Context, state core.FinanceState)
	AddTransaction(ctx context.Context, t core.Transaction)
	UpdateTransaction(ctx context.Context, t core.Transaction)
	DeleteTransaction(ctx context.Context, id string)
	AddCategory(ctx context.Context, c core.Category)
	UpdateCategory(ctx context.Context, c core.Category)
	DeleteCategory(ctx context.Context, id string) bool
	ClearAllData(ctx context.Context)
}

// EventPublisher announces writes; *amqp.Client satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, event amqp.ChangeEvent) error
}

// TransactionInput is the caller-supplied part of a transaction.
type TransactionInput struct {
	Type       core.TransactionType `json:"type"`
	Amount     core.Money           `json:"amount"`
	Date       core.Date            `json:"date"`
	CategoryID string               `json:"categoryId"`
	Notes      string               `json:"notes,omitempty"`
}

// CategoryInput is the caller-supplied part of a category. An empty color
// is replaced by a palette color on create.
type CategoryInput struct {
	Name  string               `json:"name"`
	Type  core.TransactionType `json:"type"`
	Color string               `json:"color"`
}

// Options configures optional collaborators of a FinanceService.
type Options struct {
	Publisher    EventPublisher
	SummaryCache *cache.Loader[core.FinanceSummary]
	Logger       *log.Logger
	Now          func() time.Time
}

// FinanceService validates API writes, keeps the summary cache coherent
// and publishes change events after each successful write.
type FinanceService struct {
	repo      Repository
	publisher EventPublisher
	summaries *cache.Loader[core.FinanceSummary]
	logger    *log.Logger
	now       func() time.Time
}

func NewFinanceService(repo Repository, opts Options) *FinanceService {
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &FinanceService{
		repo:      repo,
		publisher: opts.Publisher,
		summaries: opts.SummaryCache,
		logger:    opts.Logger.WithComponent(log.ComponentService),
		now:       opts.Now,
	}
}

// State returns the full persisted state.
func (s *FinanceService) State(ctx context.Context) core.FinanceState {
	return s.repo.LoadFinanceData(ctx)
}

// ReplaceState validates and persists a whole new state.
func (s *FinanceService) ReplaceState(ctx context.Context, state core.FinanceState) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("invalid state: %w", err)
	}
	s.repo.SaveFinanceData(ctx, state)
	s.afterWrite(ctx, amqp.StateSaved, "")
	return nil
}

// Clear removes all persisted data.
func (s *FinanceService) Clear(ctx context.Context) {
	s.repo.ClearAllData(ctx)
	s.afterWrite(ctx, amqp.StateCleared, "")
}

// Transactions returns the transactions matching filters.
func (s *FinanceService) Transactions(ctx context.Context, filters core.TransactionFilters) []core.Transaction {
	return core.FilterTransactions(s.repo.LoadFinanceData(ctx).Transactions, filters)
}

// Categories returns every category.
func (s *FinanceService) Categories(ctx context.Context) []core.Category {
	return s.repo.LoadFinanceData(ctx).Categories
}

// CreateTransaction assigns an id and creation time and stores the result.
func (s *FinanceService) CreateTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	t := in.transaction(core.NewID(), core.Timestamp(s.now()))
	if err := s.validateTransaction(ctx, t); err != nil {
		return core.Transaction{}, err
	}

	s.repo.AddTransaction(ctx, t)
	s.logger.InfoContext(ctx, "Transaction created",
		log.NewFields().WithOperation(log.OpCreate).
			WithTransaction(t.ID, string(t.Type), t.Amount.Cents, t.CategoryID).ToSlice()...)
	s.afterWrite(ctx, amqp.TransactionCreated, t.ID)
	return t, nil
}

// EditTransaction replaces the fields of an existing transaction, keeping
// its id and creation time.
func (s *FinanceService) EditTransaction(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	state := s.repo.LoadFinanceData(ctx)
	existing, ok := findTransaction(state.Transactions, id)
	if !ok {
		return core.Transaction{}, fmt.Errorf("edit %s: %w", id, ErrTransactionNotFound)
	}

	t := in.transaction(existing.ID, existing.CreatedAt)
	if err := t.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}
	if _, ok := core.GetCategoryByID(state.Categories, t.CategoryID); !ok {
		return core.Transaction{}, fmt.Errorf("category %s: %w", t.CategoryID, ErrUnknownCategory)
	}

	s.repo.UpdateTransaction(ctx, t)
	s.logger.InfoContext(ctx, "Transaction updated",
		log.NewFields().WithOperation(log.OpUpdate).
			WithTransaction(t.ID, string(t.Type), t.Amount.Cents, t.CategoryID).ToSlice()...)
	s.afterWrite(ctx, amqp.TransactionUpdated, t.ID)
	return t, nil
}

// RemoveTransaction deletes a transaction. Deleting an unknown id succeeds.
func (s *FinanceService) RemoveTransaction(ctx context.Context, id string) {
	s.repo.DeleteTransaction(ctx, id)
	s.logger.InfoContext(ctx, "Transaction deleted", log.FieldOperation, log.OpDelete, log.FieldTransactionID, id)
	s.afterWrite(ctx, amqp.TransactionDeleted, id)
}

// CreateCategory stores a new category with a fresh id.
func (s *FinanceService) CreateCategory(ctx context.Context, in CategoryInput) (core.Category, error) {
	if strings.TrimSpace(in.Color) == "" {
		in.Color = core.RandomColor()
	}
	c := in.category(core.NewID())
	if err := c.Validate(); err != nil {
		return core.Category{}, fmt.Errorf("invalid category: %w", err)
	}

	s.repo.AddCategory(ctx, c)
	s.logger.InfoContext(ctx, "Category created",
		log.FieldOperation, log.OpCreate, log.FieldCategoryID, c.ID, "name", c.Name)
	s.afterWrite(ctx, amqp.CategoryCreated, c.ID)
	return c, nil
}

// EditCategory replaces an existing category. An empty color keeps the
// current one.
func (s *FinanceService) EditCategory(ctx context.Context, id string, in CategoryInput) (core.Category, error) {
	existing, ok := core.GetCategoryByID(s.repo.LoadFinanceData(ctx).Categories, id)
	if !ok {
		return core.Category{}, fmt.Errorf("edit %s: %w", id, ErrCategoryNotFound)
	}
	if strings.TrimSpace(in.Color) == "" {
		in.Color = existing.Color
	}
	c := in.category(id)
	if err := c.Validate(); err != nil {
		return core.Category{}, fmt.Errorf("invalid category: %w", err)
	}

	s.repo.UpdateCategory(ctx, c)
	s.afterWrite(ctx, amqp.CategoryUpdated, id)
	return c, nil
}

// RemoveCategory deletes a category unless transactions still use it.
func (s *FinanceService) RemoveCategory(ctx context.Context, id string) error {
	if !s.repo.DeleteCategory(ctx, id) {
		return fmt.Errorf("delete %s: %w", id, ErrCategoryInUse)
	}
	s.logger.InfoContext(ctx, "Category deleted", log.FieldOperation, log.OpDelete, log.FieldCategoryID, id)
	s.afterWrite(ctx, amqp.CategoryDeleted, id)
	return nil
}

// Summary aggregates the transactions matching filters. Results are cached
// until the next write.
func (s *FinanceService) Summary(ctx context.Context, filters core.TransactionFilters) (core.FinanceSummary, error) {
	compute := func(ctx context.Context) (core.FinanceSummary, error) {
		state := s.repo.LoadFinanceData(ctx)
		return core.CalculateSummary(core.FilterTransactions(state.Transactions, filters), state.Categories), nil
	}
	if s.summaries == nil {
		return compute(ctx)
	}
	return s.summaries.Get(ctx, filters.Key(), compute)
}

// CurrentMonthSummary aggregates the transactions of the current month.
func (s *FinanceService) CurrentMonthSummary(ctx context.Context) (core.FinanceSummary, error) {
	first, last := core.MonthBounds(s.now())
	return s.Summary(ctx, core.TransactionFilters{StartDate: first, EndDate: last})
}

// Chart returns the category distribution of one transaction type over the
// transactions matching filters, with pie segment angles.
func (s *FinanceService) Chart(ctx context.Context, tt core.TransactionType, filters core.TransactionFilters) ([]core.DistributionEntry, []core.Segment, error) {
	if err := tt.Validate(); err != nil {
		return nil, nil, err
	}
	state := s.repo.LoadFinanceData(ctx)
	entries := core.CategoryDistribution(core.FilterTransactions(state.Transactions, filters), state.Categories, tt)
	return entries, core.DistributionSegments(entries), nil
}

// CachedSummaries reports how many summaries are cached.
func (s *FinanceService) CachedSummaries() int {
	if s.summaries == nil {
		return 0
	}
	return s.summaries.Size()
}

// Now returns the service clock's current time.
func (s *FinanceService) Now() time.Time {
	return s.now()
}

func (s *FinanceService) validateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}
	if _, ok := core.GetCategoryByID(s.repo.LoadFinanceData(ctx).Categories, t.CategoryID); !ok {
		return fmt.Errorf("category %s: %w", t.CategoryID, ErrUnknownCategory)
	}
	return nil
}

func (s *FinanceService) afterWrite(ctx context.Context, kind amqp.EventKind, entityID string) {
	if s.summaries != nil {
		s.summaries.Invalidate()
	}
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, amqp.NewChangeEvent(kind, entityID)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish change event",
			log.FieldOperation, log.OpPublish, log.FieldEventKind, kind, log.FieldError, err)
	}
}

func (in TransactionInput) transaction(id, createdAt string) core.Transaction {
	return core.Transaction{
		ID:         id,
		Type:       in.Type,
		Amount:     in.Amount,
		Date:       in.Date,
		CategoryID: strings.TrimSpace(in.CategoryID),
		Notes:      strings.TrimSpace(in.Notes),
		CreatedAt:  createdAt,
	}
}

func (in CategoryInput) category(id string) core.Category {
	return core.Category{
		ID:    id,
		Name:  strings.TrimSpace(in.Name),
		Type:  in.Type,
		Color: strings.TrimSpace(in.Color),
	}
}

func findTransaction(ts []core.Transaction, id string) (core.Transaction, bool) {
	for _, t := range ts {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}
