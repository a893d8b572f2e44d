package ports

import (
	"context"
	"errors"
	"time"
)

// ErrIdempotencyConflict indicates the same key was reused for a different checkout.
var ErrIdempotencyConflict = errors.New("idempotency key already used for a different order")

// IdempotencyRecord ties a buyer-scoped checkout key to the order it produced.
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	OrderID     string
	CreatedAt   time.Time
}

// IdempotencyStore remembers checkout keys so a resubmitted form replays the first order.
type IdempotencyStore interface {
	// Get returns nil without error when the key is unknown.
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	// Save stores record. A key already bound to another hash or order returns
	// ErrIdempotencyConflict with the stored record.
	Save(ctx context.Context, record IdempotencyRecord) (*IdempotencyRecord, error)
}
