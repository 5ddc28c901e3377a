package jobs

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
)

// Dispatcher assigns one waiting order per call.
type Dispatcher interface {
	Handle(ctx context.Context, command commands.DispatchPendingOrderCommand) (*order.Order, error)
}

// DispatchJob periodically hands the oldest PREPARING order without a
// partner to the longest-registered free partner.
type DispatchJob struct {
	dispatcher Dispatcher
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewDispatchJob creates the job. schedule is a six-field cron expression
// (seconds first), e.g. "*/10 * * * * *".
func NewDispatchJob(dispatcher Dispatcher, schedule string, logger *slog.Logger) *DispatchJob {
	return &DispatchJob{
		dispatcher: dispatcher,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "dispatch_job"),
	}
}

func (j *DispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started", "schedule", j.schedule)
	return nil
}

// Run performs a single dispatch attempt.
func (j *DispatchJob) Run() {
	ctx := context.Background()
	assigned, err := j.dispatcher.Handle(ctx, commands.NewDispatchPendingOrderCommand())
	switch {
	case errors.Is(err, commands.ErrNoOrderAwaitingDispatch), errors.Is(err, commands.ErrNoAvailablePartner):
		j.logger.DebugContext(ctx, "Nothing to dispatch", "reason", err)
	case err != nil:
		j.logger.ErrorContext(ctx, "Dispatch job failed", "error", err)
	default:
		j.logger.InfoContext(ctx, "Order dispatched",
			"order_id", assigned.ID().String(),
			"partner_id", assigned.Partner().String(),
		)
	}
}

// Stop waits for a running dispatch to finish.
func (j *DispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}
