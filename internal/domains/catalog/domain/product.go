package domain

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyID          = errors.New("product id is required")
	ErrEmptyName        = errors.New("product name is required")
	ErrMissingPrice     = errors.New("price is required")
	ErrInvalidPrice     = errors.New("price must be a number")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrPricePrecision   = errors.New("price must have at most two decimal places")
	ErrPriceTooLarge    = errors.New("price must be below 1000000000000")
	ErrMissingQRCodeURL = errors.New("qr code url is required")
	ErrInvalidQRCodeURL = errors.New("qr code url must be an absolute url")
	ErrNoImages         = errors.New("at least one product image is required")
	ErrInvalidImageURL  = errors.New("image url must be an absolute url")
)

// Product is a catalog listing. Images only ever grow; tags are a trimmed,
// deduplicated set.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Description string
	Images      []string
	Tags        []string
	QRCodeURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct validates the invariants and builds a new Product.
func NewProduct(id, name string, price decimal.Decimal, description string, tags []string, qrCodeURL string, images []string, now time.Time) (*Product, error) {
	p, err := NewDraft(id, name, price, description, tags, qrCodeURL, now)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	if err := p.AppendImages(images...); err != nil {
		return nil, err
	}
	return p, nil
}

// NewDraft validates every field except images, which are attached once uploaded.
// A draft fails Validate until it has at least one image.
func NewDraft(id, name string, price decimal.Decimal, description string, tags []string, qrCodeURL string, now time.Time) (*Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	p := &Product{ID: id, CreatedAt: now, UpdatedAt: now}
	if err := p.Rename(name); err != nil {
		return nil, err
	}
	if err := p.SetPrice(price); err != nil {
		return nil, err
	}
	if err := p.SetQRCodeURL(qrCodeURL); err != nil {
		return nil, err
	}
	p.SetDescription(description)
	p.SetTags(tags)
	return p, nil
}

// Rename sets a non-blank name.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// MaxPrice is the largest price a numeric(14,2) column holds.
var MaxPrice = decimal.RequireFromString("999999999999.99")

// SetPrice accepts non-negative prices with at most two decimals, up to MaxPrice.
func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := checkPrice(price); err != nil {
		return err
	}
	p.Price = price
	return nil
}

func checkPrice(price decimal.Decimal) error {
	switch {
	case price.IsNegative():
		return ErrNegativePrice
	case !price.Equal(price.Truncate(2)):
		return ErrPricePrecision
	case price.GreaterThan(MaxPrice):
		return ErrPriceTooLarge
	}
	return nil
}

// SetDescription stores the trimmed description; it may be empty.
func (p *Product) SetDescription(description string) {
	p.Description = strings.TrimSpace(description)
}

// SetQRCodeURL validates and stores the payment QR code location.
func (p *Product) SetQRCodeURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ErrMissingQRCodeURL
	}
	if !IsAbsoluteURL(raw) {
		return ErrInvalidQRCodeURL
	}
	p.QRCodeURL = raw
	return nil
}

// SetTags replaces the tag set.
func (p *Product) SetTags(tags []string) {
	p.Tags = NormalizeTags(tags)
}

// AppendImages adds urls after the existing images. Existing entries are never removed.
func (p *Product) AppendImages(urls ...string) error {
	for _, u := range urls {
		if !IsAbsoluteURL(u) {
			return ErrInvalidImageURL
		}
	}
	p.Images = append(append([]string(nil), p.Images...), urls...)
	return nil
}

// Touch stamps the last modification time.
func (p *Product) Touch(now time.Time) {
	p.UpdatedAt = now
}

// Validate re-applies the invariants for persistence.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if !IsAbsoluteURL(p.QRCodeURL) {
		return ErrInvalidQRCodeURL
	}
	if len(p.Images) == 0 {
		return ErrNoImages
	}
	return nil
}

// ParsePrice reads a decimal price from user input.
func ParsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrMissingPrice
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	if err := checkPrice(price); err != nil {
		return decimal.Zero, err
	}
	return price, nil
}

// NormalizeTags trims each tag, drops empties, and removes duplicates keeping first occurrence.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// SplitTags parses the comma-separated tag input used by the admin form.
func SplitTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

// IsAbsoluteURL reports whether raw parses as a URL with a scheme and a host or opaque part.
func IsAbsoluteURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme != "" && (u.Host != "" || u.Opaque != "")
}
