package application

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/application/types"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/ports"
	identity "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	uploadports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/authz"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/clock"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/events"
)

// Service orchestrates catalog use cases. Every mutation runs
// authorize, validate, upload, persist in that order and stops at the first failure.
type Service struct {
	repo      ports.Repository
	uploads   uploadports.Uploader
	gate      authz.Authorizer
	clock     clock.Clock
	publisher events.Publisher
	newID     func() string
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewService(repo ports.Repository, uploads uploadports.Uploader, gate authz.Authorizer, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		uploads:   uploads,
		gate:      gate,
		clock:     clock.NewSystem(),
		publisher: events.NoopPublisher,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListProducts returns every product in no particular order.
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(products, func(a, b *domain.Product) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return products, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) CreateProduct(ctx context.Context, actor identity.Identity, input types.CreateProductInput) (*domain.Product, error) {
	if err := s.gate.Authorize(actor); err != nil {
		return nil, err
	}
	price, err := domain.ParsePrice(input.Price)
	if err != nil {
		return nil, mapError(err)
	}
	if len(input.Images) == 0 {
		return nil, mapError(domain.ErrNoImages)
	}
	if err := validateFiles(input.Images); err != nil {
		return nil, err
	}
	now := s.clock.Now()
	product, err := domain.NewDraft(s.newID(), input.Name, price, input.Description, input.Tags, input.QRCodeURL, now)
	if err != nil {
		return nil, mapError(err)
	}

	urls, err := s.uploads.UploadAll(ctx, input.Images)
	if err != nil {
		return nil, err
	}
	if err := product.AppendImages(urls...); err != nil {
		s.uploads.Orphaned(ctx, err, urls...)
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		s.uploads.Orphaned(ctx, err, urls...)
		return nil, err
	}
	s.uploads.Commit(ctx, urls...)
	s.publisher.Publish(ctx, domain.ProductCreated{
		BaseEvent: events.BaseEvent{Timestamp: now},
		ProductID: saved.ID,
		Name:      saved.Name,
		Price:     saved.Price,
	})
	return saved, nil
}

func (s *Service) UpdateProduct(ctx context.Context, actor identity.Identity, input types.UpdateProductInput) (*domain.Product, error) {
	if err := s.gate.Authorize(actor); err != nil {
		return nil, err
	}
	var price *decimal.Decimal
	if input.Price != nil {
		parsed, err := domain.ParsePrice(*input.Price)
		if err != nil {
			return nil, mapError(err)
		}
		price = &parsed
	}
	if err := validateFiles(input.NewImages); err != nil {
		return nil, err
	}

	product, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	previousPrice := product.Price
	if err := applyUpdate(product, input, price); err != nil {
		return nil, mapError(err)
	}

	urls, err := s.uploads.UploadAll(ctx, input.NewImages)
	if err != nil {
		return nil, err
	}
	if err := product.AppendImages(urls...); err != nil {
		s.uploads.Orphaned(ctx, err, urls...)
		return nil, mapError(err)
	}
	now := s.clock.Now()
	product.Touch(now)
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		s.uploads.Orphaned(ctx, err, urls...)
		return nil, err
	}
	s.uploads.Commit(ctx, urls...)
	s.publisher.Publish(ctx, domain.ProductUpdated{
		BaseEvent:     events.BaseEvent{Timestamp: now},
		ProductID:     saved.ID,
		Name:          saved.Name,
		Price:         saved.Price,
		AddedImages:   len(urls),
		PreviousPrice: previousPrice,
	})
	return saved, nil
}

// DeleteProduct removes the listing only; orders that reference it keep their snapshot.
func (s *Service) DeleteProduct(ctx context.Context, actor identity.Identity, id string) error {
	if err := s.gate.Authorize(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(ctx, domain.ProductDeleted{
		BaseEvent: events.BaseEvent{Timestamp: s.clock.Now()},
		ProductID: id,
	})
	return nil
}

func applyUpdate(product *domain.Product, input types.UpdateProductInput, price *decimal.Decimal) error {
	if input.Name != nil {
		if err := product.Rename(*input.Name); err != nil {
			return err
		}
	}
	if price != nil {
		if err := product.SetPrice(*price); err != nil {
			return err
		}
	}
	if input.Description != nil {
		product.SetDescription(*input.Description)
	}
	if input.Tags != nil {
		product.SetTags(*input.Tags)
	}
	if input.QRCodeURL != nil {
		if err := product.SetQRCodeURL(*input.QRCodeURL); err != nil {
			return err
		}
	}
	return nil
}

func validateFiles(files []uploaddomain.File) error {
	var errs []error
	for _, file := range files {
		if err := file.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return mapError(errors.Join(errs...))
}

var _ ports.Service = (*Service)(nil)
