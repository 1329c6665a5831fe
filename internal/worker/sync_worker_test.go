package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/finance"
	sheetmem "fintrack/internal/sheets/memory"
	"fintrack/internal/storage/memory"
)

func seededRepo(t *testing.T) *finance.Repository {
	t.Helper()
	repo := finance.NewRepository(memory.New(), "", nil)
	repo.AddTransaction(context.Background(), core.Transaction{
		ID: "t1", Type: core.Expense, Amount: core.Cents(1999), Date: "2024-03-02", CategoryID: "5",
		CreatedAt: "2024-03-02T09:00:00.000Z",
	})
	return repo
}

func TestHandleChange_MirrorsState(t *testing.T) {
	mirror := sheetmem.New()
	w := NewSyncWorker(seededRepo(t), mirror, nil)

	err := w.HandleChange(context.Background(), amqp.NewChangeEvent(amqp.TransactionCreated, "t1"))
	require.NoError(t, err)

	assert.Equal(t, 1, mirror.Writes())
	rows := mirror.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, []any{"2024-03-02", "expense", "Food", "19.99", "", "t1"}, rows[1])
}

func TestHandleChange_MirrorFailureIsReturned(t *testing.T) {
	mirror := sheetmem.New()
	mirror.FailWith(errors.New("quota exceeded"))
	w := NewSyncWorker(seededRepo(t), mirror, nil)

	err := w.HandleChange(context.Background(), amqp.NewChangeEvent(amqp.StateSaved, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Zero(t, mirror.Writes())
}

func TestHandleChange_WithoutMirror(t *testing.T) {
	w := NewSyncWorker(seededRepo(t), nil, nil)

	assert.NoError(t, w.HandleChange(context.Background(), amqp.NewChangeEvent(amqp.StateCleared, "")))
	assert.NoError(t, w.StartupSync(context.Background()))
}

func TestStartupSync(t *testing.T) {
	mirror := sheetmem.New()
	w := NewSyncWorker(seededRepo(t), mirror, nil)

	require.NoError(t, w.StartupSync(context.Background()))
	assert.Equal(t, 1, mirror.Writes())
}
