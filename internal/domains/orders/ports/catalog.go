package ports

import (
	"context"

	catalogdomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/domain"
)

// ProductCatalog resolves the product an order is placed against.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (*catalogdomain.Product, error)
}
