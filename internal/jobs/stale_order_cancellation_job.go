package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrderCancellationJob cancels orders that were checked out but never
// confirmed. Runs every minute and cancels Pending orders older than the
// configured time to live.
type StaleOrderCancellationJob struct {
	handler  commands.CancelStaleOrdersCommandHandler
	staleTTL time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewStaleOrderCancellationJob creates a new job for cancelling stale orders.
// staleTTL is how long an order may stay Pending before it is cancelled.
func NewStaleOrderCancellationJob(
	handler commands.CancelStaleOrdersCommandHandler,
	staleTTL time.Duration,
	logger *slog.Logger,
) *StaleOrderCancellationJob {
	return &StaleOrderCancellationJob{
		handler:  handler,
		staleTTL: staleTTL,
		cron:     cron.New(),
		logger:   logger.With("component", "stale_order_cancellation_job"),
	}
}

// Start begins the stale order cancellation job to run every minute.
func (j *StaleOrderCancellationJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewCancelStaleOrdersCommand(j.staleTTL)
		if err != nil {
			j.logger.ErrorContext(ctx, "Stale order cancellation command is invalid", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Stale order cancellation job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job started (running every minute)",
		"stale_ttl", j.staleTTL.String())
	return nil
}

// Stop stops the stale order cancellation job.
func (j *StaleOrderCancellationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job stopped")
}
