// Package finance persists the finance state as a single JSON document in a
// key-value store.
//
// Every write is a read-modify-write of the whole document with no locking,
// so overlapping writers may lose updates. Storage and decoding failures are
// logged and swallowed. Reads fall back to the default seed; a write whose
// read fails becomes a no-op so the stored value is never replaced by the
// seed.
package finance

import (
	"context"
	"encoding/json"

	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/storage"
)

type Repository struct {
	store  storage.Store
	key    string
	logger *log.Logger
}

// NewRepository returns a repository over store. An empty key selects
// storage.DefaultKey; a nil logger discards output.
func NewRepository(store storage.Store, key string, logger *log.Logger) *Repository {
	if key == "" {
		key = storage.DefaultKey
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Repository{
		store:  store,
		key:    key,
		logger: logger.WithComponent(log.ComponentRepository).With(log.FieldStorageKey, key),
	}
}

// Key returns the storage key the state lives under.
func (r *Repository) Key() string { return r.key }

// LoadFinanceData returns the persisted state, or a fresh default seed when
// nothing is stored or the stored value cannot be read.
func (r *Repository) LoadFinanceData(ctx context.Context) core.FinanceState {
	state, err := r.load(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read finance data, using defaults",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
		return DefaultState()
	}
	return state
}

// load returns the persisted state. A missing or undecodable value yields
// the seed; only a failed store read is an error.
func (r *Repository) load(ctx context.Context) (core.FinanceState, error) {
	raw, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return core.FinanceState{}, err
	}
	if !found {
		return DefaultState(), nil
	}

	var state core.FinanceState
	if err := json.Unmarshal(raw, &state); err != nil {
		r.logger.ErrorContext(ctx, "Failed to decode finance data, using defaults",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
		return DefaultState(), nil
	}
	return normalize(state), nil
}

// loadForWrite is load for read-modify-write callers. It reports false
// after a failed read so the caller writes nothing over the stored value.
func (r *Repository) loadForWrite(ctx context.Context, op string) (core.FinanceState, bool) {
	state, err := r.load(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to read finance data, write skipped",
			log.FieldOperation, op, log.FieldError, err)
		return core.FinanceState{}, false
	}
	return state, true
}

// SaveFinanceData replaces the persisted state.
func (r *Repository) SaveFinanceData(ctx context.Context, state core.FinanceState) {
	raw, err := json.Marshal(normalize(state))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to encode finance data",
			log.FieldOperation, log.OpSave, log.FieldError, err)
		return
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		r.logger.ErrorContext(ctx, "Failed to save finance data",
			log.FieldOperation, log.OpSave, log.FieldError, err)
		return
	}
	r.logger.DebugContext(ctx, "Finance data saved",
		log.FieldOperation, log.OpSave,
		"transactions", len(state.Transactions),
		"categories", len(state.Categories))
}

// AddTransaction appends t. Ids are not checked for uniqueness.
func (r *Repository) AddTransaction(ctx context.Context, t core.Transaction) {
	state, ok := r.loadForWrite(ctx, log.OpCreate)
	if !ok {
		return
	}
	state.Transactions = append(state.Transactions, t)
	r.SaveFinanceData(ctx, state)
}

// UpdateTransaction replaces the transaction with t's id. Nothing is
// written when no transaction has that id.
func (r *Repository) UpdateTransaction(ctx context.Context, t core.Transaction) {
	state, ok := r.loadForWrite(ctx, log.OpUpdate)
	if !ok {
		return
	}
	for i := range state.Transactions {
		if state.Transactions[i].ID == t.ID {
			state.Transactions[i] = t
			r.SaveFinanceData(ctx, state)
			return
		}
	}
	r.logger.DebugContext(ctx, "Transaction not found, update skipped", log.FieldTransactionID, t.ID)
}

// DeleteTransaction removes the transaction with id, if any.
func (r *Repository) DeleteTransaction(ctx context.Context, id string) {
	state, ok := r.loadForWrite(ctx, log.OpDelete)
	if !ok {
		return
	}
	kept := state.Transactions[:0:0]
	for _, t := range state.Transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	state.Transactions = kept
	r.SaveFinanceData(ctx, state)
}

// AddCategory appends c. Ids are not checked for uniqueness.
func (r *Repository) AddCategory(ctx context.Context, c core.Category) {
	state, ok := r.loadForWrite(ctx, log.OpCreate)
	if !ok {
		return
	}
	state.Categories = append(state.Categories, c)
	r.SaveFinanceData(ctx, state)
}

// UpdateCategory replaces the category with c's id. Nothing is written when
// no category has that id.
func (r *Repository) UpdateCategory(ctx context.Context, c core.Category) {
	state, ok := r.loadForWrite(ctx, log.OpUpdate)
	if !ok {
		return
	}
	for i := range state.Categories {
		if state.Categories[i].ID == c.ID {
			state.Categories[i] = c
			r.SaveFinanceData(ctx, state)
			return
		}
	}
	r.logger.DebugContext(ctx, "Category not found, update skipped", log.FieldCategoryID, c.ID)
}

// DeleteCategory removes the category with id and reports true. It reports
// false and changes nothing when a transaction still references the
// category or the state cannot be read.
func (r *Repository) DeleteCategory(ctx context.Context, id string) bool {
	state, ok := r.loadForWrite(ctx, log.OpDelete)
	if !ok {
		return false
	}
	for _, t := range state.Transactions {
		if t.CategoryID == id {
			return false
		}
	}

	kept := state.Categories[:0:0]
	for _, c := range state.Categories {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	state.Categories = kept
	r.SaveFinanceData(ctx, state)
	return true
}

// ClearAllData removes the stored state; the next load yields the seed.
func (r *Repository) ClearAllData(ctx context.Context) {
	if err := r.store.Remove(ctx, r.key); err != nil {
		r.logger.ErrorContext(ctx, "Failed to clear finance data",
			log.FieldOperation, log.OpClear, log.FieldError, err)
	}
}

// normalize replaces nil collections so the document always carries arrays.
func normalize(s core.FinanceState) core.FinanceState {
	if s.Transactions == nil {
		s.Transactions = []core.Transaction{}
	}
	if s.Categories == nil {
		s.Categories = []core.Category{}
	}
	return s
}
