package worker

import (
	"context"
	"fmt"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/log"
	"fintrack/internal/sheets"
)

// StateLoader reads the shared finance state; *finance.Repository
// satisfies it.
type StateLoader interface {
	LoadFinanceData(ctx context.Context) core.FinanceState
}

// SyncWorker mirrors the finance state to a spreadsheet whenever a change
// event arrives.
type SyncWorker struct {
	repo   StateLoader
	mirror sheets.Mirror
	logger *log.Logger
}

// NewSyncWorker returns a worker over repo. A nil mirror turns every
// event into a logged no-op.
func NewSyncWorker(repo StateLoader, mirror sheets.Mirror, logger *log.Logger) *SyncWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &SyncWorker{
		repo:   repo,
		mirror: mirror,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleChange reloads the state and rewrites the mirror. A returned error
// makes the consumer requeue the event.
func (w *SyncWorker) HandleChange(ctx context.Context, event amqp.ChangeEvent) error {
	w.logger.InfoContext(ctx, "Processing change event",
		log.FieldEventKind, event.Kind,
		"entity_id", event.EntityID,
		"timestamp", event.Timestamp)

	if w.mirror == nil {
		w.logger.DebugContext(ctx, "No mirror configured, skipping", log.FieldEventKind, event.Kind)
		return nil
	}
	if err := w.sync(ctx); err != nil {
		return fmt.Errorf("handle %s: %w", event.Kind, err)
	}
	return nil
}

// StartupSync mirrors the current state once, covering events missed while
// the worker was down.
func (w *SyncWorker) StartupSync(ctx context.Context) error {
	if w.mirror == nil {
		w.logger.InfoContext(ctx, "Skipping startup sync - no mirror configured")
		return nil
	}
	w.logger.InfoContext(ctx, "Performing startup sync", log.FieldOperation, log.OpStartup)
	if err := w.sync(ctx); err != nil {
		return fmt.Errorf("startup sync: %w", err)
	}
	return nil
}

func (w *SyncWorker) sync(ctx context.Context) error {
	state := w.repo.LoadFinanceData(ctx)
	if err := w.mirror.MirrorState(ctx, state); err != nil {
		w.logger.ErrorContext(ctx, "Failed to mirror finance state",
			log.FieldOperation, log.OpMirror, log.FieldError, err)
		return fmt.Errorf("mirror state: %w", err)
	}

	w.logger.InfoContext(ctx, "Successfully mirrored finance state",
		log.FieldOperation, log.OpMirror,
		log.FieldCount, len(state.Transactions))
	return nil
}
