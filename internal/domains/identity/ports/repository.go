package ports

import (
	"context"
	"errors"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

var (
	ErrNotFound   = apperrors.NotFound(errors.New("account not found"))
	ErrEmailInUse = errors.New("email already registered")
)

// Repository persists identity provider accounts.
type Repository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByUID(ctx context.Context, uid string) (*domain.Account, error)
}
