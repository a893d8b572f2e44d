package ports

import (
	"context"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/application/types"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/domain"
	identity "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, actor identity.Identity, input types.CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, actor identity.Identity, input types.UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, actor identity.Identity, id string) error
}
