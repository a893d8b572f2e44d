package types

import uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"

// CreateProductInput carries the admin form for a new listing. Price is the raw user input.
type CreateProductInput struct {
	Name        string
	Price       string
	Description string
	Tags        []string
	QRCodeURL   string
	Images      []uploaddomain.File
}

// UpdateProductInput carries a partial edit. Nil fields are left unchanged;
// NewImages are appended after the existing images.
type UpdateProductInput struct {
	ID          string
	Name        *string
	Price       *string
	Description *string
	Tags        *[]string
	QRCodeURL   *string
	NewImages   []uploaddomain.File
}
