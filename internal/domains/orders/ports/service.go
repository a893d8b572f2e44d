package ports

import (
	"context"

	identity "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/application/types"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/domain"
)

// Service exposes order ledger use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, actor identity.Identity, input types.PlaceOrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, actor identity.Identity, id string, status string) (*domain.Order, error)
	DeleteOrder(ctx context.Context, actor identity.Identity, id string) error
	GetOrder(ctx context.Context, actor identity.Identity, id string) (*domain.Order, error)
	ListOrdersForUser(ctx context.Context, userID string) ([]*domain.Order, error)
	ListAllOrders(ctx context.Context, actor identity.Identity) ([]*domain.Order, error)
}
