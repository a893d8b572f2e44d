package ports

import (
	"context"
	"errors"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

var (
	ErrNotFound = apperrors.NotFound(errors.New("order not found"))

	// ErrStaleStatus means the stored status no longer matched the expected one.
	ErrStaleStatus = errors.New("order status changed concurrently")
)

// Repository persists orders. List results are unordered.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// UpdateStatus writes the status column only, and only while it still equals from.
	UpdateStatus(ctx context.Context, id string, from, to domain.Status) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
