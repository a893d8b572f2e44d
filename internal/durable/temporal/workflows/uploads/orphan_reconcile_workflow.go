package uploads

import (
	"time"

	"go.temporal.io/sdk/workflow"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/durable/temporal/sequences"
)

const (
	// OrphanReconcileWorkflowName is the public identifier for registering the workflow.
	OrphanReconcileWorkflowName = "uploads.workflows.OrphanReconcile"
	// OrphanReconcileTaskQueue is the queue consumed by the worker processing upload workflows.
	OrphanReconcileTaskQueue = "UPLOAD_RECONCILE"
	// OrphanReconcileCronWorkflowID identifies the recurring sweep started by the worker.
	OrphanReconcileCronWorkflowID = "upload-reconcile-cron"
)

// OrphanReconcileWorkflowInput captures the sweep parameters.
type OrphanReconcileWorkflowInput struct {
	GracePeriod time.Duration
	TraceID     string
}

// OrphanReconcileWorkflow deletes blobs that were uploaded but never referenced by a persisted record.
func OrphanReconcileWorkflow(ctx workflow.Context, input OrphanReconcileWorkflowInput) (*domain.ReconcileReport, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrphanReconcileWorkflow started", withTraceID(input.TraceID, "gracePeriod", input.GracePeriod.String())...)
	report, err := sequences.RunOrphanReconcileSequence(ctx, input.GracePeriod)
	if err != nil {
		logger.Error("OrphanReconcileWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("OrphanReconcileWorkflow completed", withTraceID(input.TraceID, "deleted", len(report.Deleted), "failed", len(report.Failed))...)
	return report, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
