package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/config"
	"fintrack/internal/log"
)

// ChangeSource delivers change events; *amqp.Client satisfies it.
type ChangeSource interface {
	ConsumeChanges(ctx context.Context, handler func(context.Context, amqp.ChangeEvent) error) error
}

// Runner runs the change consumer and the digest schedule side by side.
type Runner struct {
	source   ChangeSource
	sync     *SyncWorker
	digest   *Digest
	schedule string
	logger   *log.Logger
}

// NewRunner wires the worker loops. A nil source disables consumption; an
// empty schedule disables the digest.
func NewRunner(source ChangeSource, sync *SyncWorker, digest *Digest, schedule string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Discard()
	}
	return &Runner{
		source:   source,
		sync:     sync,
		digest:   digest,
		schedule: schedule,
		logger:   logger.WithComponent(log.ComponentWorker),
	}
}

// Run blocks until ctx is done or a loop fails.
func (r *Runner) Run(ctx context.Context) error {
	scheduler, err := r.newScheduler(ctx)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	if r.source != nil && r.sync != nil {
		g.Go(func() error {
			err := r.source.ConsumeChanges(ctx, r.sync.HandleChange)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		r.logger.InfoContext(ctx, "Skipping change consumption - no AMQP source configured")
	}

	g.Go(func() error {
		if scheduler != nil {
			scheduler.Start()
			r.logger.InfoContext(ctx, "Digest scheduler started", "schedule", r.schedule)
		}
		<-ctx.Done()
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		return nil
	})

	return g.Wait()
}

func (r *Runner) newScheduler(ctx context.Context) (*cron.Cron, error) {
	if r.digest == nil || r.schedule == "" {
		return nil, nil
	}
	c := cron.New(
		cron.WithParser(config.CronParser),
		cron.WithLogger(cronLogger{r.logger}),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{r.logger})),
	)
	if _, err := c.AddFunc(r.schedule, func() { _ = r.digest.Run(ctx) }); err != nil {
		return nil, fmt.Errorf("schedule digest %q: %w", r.schedule, err)
	}
	return c, nil
}

// cronLogger adapts the application logger to cron.Logger.
type cronLogger struct {
	logger *log.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, log.FieldError, err)...)
}
