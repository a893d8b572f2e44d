package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	uploadactivities "github.com/rawatr0788-code/Gamerz-Kit/internal/platform/temporal/activities/uploads"
)

// RunOrphanReconcileSequence executes the activities needed to sweep orphaned blobs.
func RunOrphanReconcileSequence(ctx workflow.Context, grace time.Duration) (*domain.ReconcileReport, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("orphan reconcile sequence started", "gracePeriod", grace.String())
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var report domain.ReconcileReport
	err := workflow.ExecuteActivity(ctx, uploadactivities.ReconcileOrphansActivityName,
		uploadactivities.ReconcileOrphansInput{GracePeriod: grace}).Get(ctx, &report)
	if err != nil {
		logger.Error("orphan reconcile sequence failed", "error", err)
		return nil, err
	}
	logger.Info("orphan reconcile sequence completed", "deleted", len(report.Deleted))
	return &report, nil
}
