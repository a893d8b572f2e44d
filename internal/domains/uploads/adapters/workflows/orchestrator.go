package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"
	uploadworkflows "github.com/rawatr0788-code/Gamerz-Kit/internal/durable/temporal/workflows/uploads"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalUploadWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineUploadWorkflows)(nil)
)

// TemporalUploadWorkflows starts upload workflows on a Temporal cluster.
type TemporalUploadWorkflows struct {
	client    client.Client
	taskQueue string
}

// NewTemporalUploadWorkflows wires a Temporal client into the orchestrator.
func NewTemporalUploadWorkflows(c client.Client) *TemporalUploadWorkflows {
	return &TemporalUploadWorkflows{client: c, taskQueue: uploadworkflows.OrphanReconcileTaskQueue}
}

// ReconcileOrphans runs the reconcile workflow and waits for its report. A
// sweep already in flight for the same trace is joined instead of duplicated.
func (o *TemporalUploadWorkflows) ReconcileOrphans(ctx context.Context, grace time.Duration) (*domain.ReconcileReport, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal upload workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := fmt.Sprintf("upload-reconcile-%s", traceComponent)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		uploadworkflows.OrphanReconcileWorkflow,
		uploadworkflows.OrphanReconcileWorkflowInput{GracePeriod: grace, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, workflowID, alreadyStarted.RunId)
	}
	var report domain.ReconcileReport
	if err := run.Get(ctx, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ScheduleOrphanReconcile starts the recurring sweep. Calling it again while the
// cron workflow runs is a no-op.
func (o *TemporalUploadWorkflows) ScheduleOrphanReconcile(ctx context.Context, cron string, grace time.Duration) error {
	if o == nil || o.client == nil {
		return errors.New("temporal upload workflows not configured")
	}
	_, err := o.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:           uploadworkflows.OrphanReconcileCronWorkflowID,
		TaskQueue:    o.taskQueue,
		CronSchedule: cron,
	}, uploadworkflows.OrphanReconcileWorkflow, uploadworkflows.OrphanReconcileWorkflowInput{GracePeriod: grace})
	var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &alreadyStarted) {
		return nil
	}
	return err
}

// InlineUploadWorkflows executes the reconciler directly without Temporal, useful for tests or dev fallbacks.
type InlineUploadWorkflows struct {
	reconciler ports.Reconciler
}

// NewInlineUploadWorkflows wraps the coordinator for synchronous execution.
func NewInlineUploadWorkflows(reconciler ports.Reconciler) *InlineUploadWorkflows {
	return &InlineUploadWorkflows{reconciler: reconciler}
}

// ReconcileOrphans delegates to the coordinator without durable orchestration.
func (o *InlineUploadWorkflows) ReconcileOrphans(ctx context.Context, grace time.Duration) (*domain.ReconcileReport, error) {
	if o == nil || o.reconciler == nil {
		return nil, errors.New("inline upload workflows not configured")
	}
	report, err := o.reconciler.Reconcile(ctx, grace)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
