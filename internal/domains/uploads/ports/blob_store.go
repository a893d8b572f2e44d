package ports

import (
	"context"
	"time"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
)

// BlobStore is the blob upload service. It has no transactional rollback;
// Delete exists only for orphan reconciliation.
type BlobStore interface {
	Put(ctx context.Context, file domain.File) (string, error)
	Delete(ctx context.Context, url string) error
}

// IntentStore tracks uploaded blobs until their owning record is written.
type IntentStore interface {
	Record(ctx context.Context, intent domain.Intent) error
	Commit(ctx context.Context, urls ...string) error
	Expired(ctx context.Context, before time.Time, limit int) ([]domain.Intent, error)
}
