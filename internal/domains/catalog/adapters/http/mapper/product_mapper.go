package mapper

import (
	"encoding/json"
	"time"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/application/types"
	catalogdomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/domain"
	uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
)

// Product represents the transport-layer shape returned by the HTTP handlers.
type Product struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Price       json.Number `json:"price"`
	Description string      `json:"description"`
	Images      []string    `json:"images"`
	Tags        []string    `json:"tags"`
	QRCodeURL   string      `json:"qrCodeUrl"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// ProductForm is the multipart form posted by the admin product editor.
// Tags arrive as a single comma-separated field.
type ProductForm struct {
	Name        *string `form:"name"`
	Price       *string `form:"price"`
	Description *string `form:"description"`
	Tags        *string `form:"tags"`
	QRCodeURL   *string `form:"qrCodeUrl"`
}

// FromDomainProduct converts a domain product to the transport representation.
func FromDomainProduct(product *catalogdomain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:          product.ID,
		Name:        product.Name,
		Price:       json.Number(product.Price.String()),
		Description: product.Description,
		Images:      append([]string{}, product.Images...),
		Tags:        append([]string{}, product.Tags...),
		QRCodeURL:   product.QRCodeURL,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// FromDomainProducts converts a slice of products preserving order.
func FromDomainProducts(products []*catalogdomain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomainProduct(p))
	}
	return out
}

// ToCreateInput maps a create form and its image files to the service input.
func ToCreateInput(form ProductForm, images []uploaddomain.File) types.CreateProductInput {
	input := types.CreateProductInput{
		Name:        deref(form.Name),
		Price:       deref(form.Price),
		Description: deref(form.Description),
		QRCodeURL:   deref(form.QRCodeURL),
		Images:      images,
	}
	if form.Tags != nil {
		input.Tags = catalogdomain.SplitTags(*form.Tags)
	}
	return input
}

// ToUpdateInput maps an edit form to a partial update. Absent fields stay untouched.
func ToUpdateInput(id string, form ProductForm, images []uploaddomain.File) types.UpdateProductInput {
	input := types.UpdateProductInput{
		ID:          id,
		Name:        form.Name,
		Price:       form.Price,
		Description: form.Description,
		QRCodeURL:   form.QRCodeURL,
		NewImages:   images,
	}
	if form.Tags != nil {
		tags := catalogdomain.SplitTags(*form.Tags)
		input.Tags = &tags
	}
	return input
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
