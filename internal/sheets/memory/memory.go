// Package memory provides an in-process sheets.Mirror that keeps the last
// rendered rows, for tests and runs without a spreadsheet.
package memory

import (
	"context"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/sheets"
)

var _ sheets.Mirror = (*Mirror)(nil)

type Mirror struct {
	mu     sync.Mutex
	rows   [][]any
	writes int
	err    error
}

func New() *Mirror {
	return &Mirror{}
}

// FailWith makes subsequent writes return err until called with nil.
func (m *Mirror) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *Mirror) MirrorState(_ context.Context, state core.FinanceState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.rows = sheets.BuildRows(state)
	m.writes++
	return nil
}

// Rows returns the rows of the last successful write.
func (m *Mirror) Rows() [][]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]any(nil), m.rows...)
}

// Writes counts successful writes.
func (m *Mirror) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
