package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/ghuser/stocktracker/pkg/logger"
)

const (
	// RetentionWorkflowID keeps a single cron run per namespace.
	RetentionWorkflowID = "stock-history-retention"
	// RetentionSchedule runs the prune daily at 03:00 UTC.
	RetentionSchedule = "0 3 * * *"
)

// HistoryPruner deletes stock history recorded before cutoff.
type HistoryPruner interface {
	PruneHistory(ctx context.Context, cutoff time.Time) (int64, error)
}

// RetentionActivities holds the activity implementations for
// PruneStockHistoryWorkflow.
type RetentionActivities struct {
	Pruner HistoryPruner
	Log    logger.Logger
}

// PruneStockHistory deletes entries older than cutoff and returns the count.
func (a *RetentionActivities) PruneStockHistory(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := a.Pruner.PruneHistory(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune stock history: %w", err)
	}
	a.Log.InfoContext(ctx, "stock history pruned", "cutoff", cutoff, "deleted", n)
	return n, nil
}

// PruneStockHistoryWorkflow removes history older than retentionDays.
// A non-positive retentionDays keeps everything.
func PruneStockHistoryWorkflow(ctx workflow.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}

	ctx = workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 10 * time.Second,
			MaximumAttempts: 5,
		},
	})

	cutoff := workflow.Now(ctx).UTC().AddDate(0, 0, -retentionDays)

	var acts *RetentionActivities
	var deleted int64
	if err := workflow.ExecuteActivity(ctx, acts.PruneStockHistory, cutoff).Get(ctx, &deleted); err != nil {
		return 0, err
	}
	return deleted, nil
}

// Register adds the retention workflow and its activities to w.
func Register(w worker.Registry, pruner HistoryPruner, log logger.Logger) {
	w.RegisterWorkflow(PruneStockHistoryWorkflow)
	w.RegisterActivity(&RetentionActivities{Pruner: pruner, Log: log})
}

// ScheduleRetention replaces any running retention cron with one that prunes
// history older than retentionDays. The cron carries retentionDays as its
// argument, so it is restarted rather than reused. A non-positive
// retentionDays only cancels the existing cron.
func (tc *TemporalClient) ScheduleRetention(ctx context.Context, retentionDays int) error {
	if err := tc.CancelRetention(ctx); err != nil {
		return err
	}
	if retentionDays <= 0 {
		tc.log.InfoContext(ctx, "stock history retention disabled")
		return nil
	}

	run, err := tc.Client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           RetentionWorkflowID,
		TaskQueue:    tc.TaskQueue,
		CronSchedule: RetentionSchedule,
	}, PruneStockHistoryWorkflow, retentionDays)
	if err != nil {
		return fmt.Errorf("schedule stock history retention: %w", err)
	}
	tc.log.InfoContext(ctx, "stock history retention scheduled",
		"workflow_id", run.GetID(), "run_id", run.GetRunID(), "retention_days", retentionDays)
	return nil
}

// CancelRetention terminates the retention cron. A missing cron is not an error.
func (tc *TemporalClient) CancelRetention(ctx context.Context) error {
	err := tc.Client.TerminateWorkflow(ctx, RetentionWorkflowID, "", "stock history retention rescheduled")
	var notFound *serviceerror.NotFound
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("cancel stock history retention: %w", err)
	}
	return nil
}
