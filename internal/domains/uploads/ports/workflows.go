package ports

import (
	"context"
	"time"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
)

// WorkflowOrchestrator runs orphan reconciliation durably or inline.
type WorkflowOrchestrator interface {
	ReconcileOrphans(ctx context.Context, grace time.Duration) (*domain.ReconcileReport, error)
}
