package ports

import (
	"context"
	"errors"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

var ErrNotFound = apperrors.NotFound(errors.New("product not found"))

// Repository persists catalog products.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Product, error)
}
