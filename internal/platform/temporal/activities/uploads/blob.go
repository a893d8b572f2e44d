package uploads

import (
	"context"
	"errors"
	"time"

	"go.temporal.io/sdk/activity"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"
)

// ReconcileOrphansActivityName deletes blobs whose upload intents expired.
const ReconcileOrphansActivityName = "uploads.activities.ReconcileOrphans"

// ReconcileOrphansInput is the activity payload.
type ReconcileOrphansInput struct {
	GracePeriod time.Duration
}

// Activities groups activities that operate on the uploads bounded context.
type Activities struct {
	reconciler ports.Reconciler
}

// NewActivities wires the upload coordinator into the Temporal activities bundle.
func NewActivities(reconciler ports.Reconciler) *Activities {
	return &Activities{reconciler: reconciler}
}

// ReconcileOrphans runs one sweep and returns what it deleted.
func (a *Activities) ReconcileOrphans(ctx context.Context, input ReconcileOrphansInput) (*domain.ReconcileReport, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.reconciler == nil {
		logger.Error("reconcile activity not initialized")
		return nil, errors.New("reconcile activity not initialized")
	}
	logger.Info("ReconcileOrphans activity started", "gracePeriod", input.GracePeriod.String())
	report, err := a.reconciler.Reconcile(ctx, input.GracePeriod)
	if err != nil {
		logger.Error("ReconcileOrphans activity failed", "error", err)
		return nil, err
	}
	logger.Info("ReconcileOrphans activity completed", "scanned", report.Scanned, "deleted", len(report.Deleted), "failed", len(report.Failed))
	return &report, nil
}
