package ports

import (
	"context"
	"time"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
)

// Uploader is what catalog and order writes need from the coordinator.
type Uploader interface {
	Upload(ctx context.Context, file domain.File) (string, error)
	UploadAll(ctx context.Context, files []domain.File) ([]string, error)
	Commit(ctx context.Context, urls ...string)
	Orphaned(ctx context.Context, cause error, urls ...string)
}

// Reconciler sweeps orphaned blobs.
type Reconciler interface {
	Reconcile(ctx context.Context, grace time.Duration) (domain.ReconcileReport, error)
}
