package application

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	identity "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/application/types"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/ports"
	uploadports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/authz"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/clock"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/events"
)

// Service orchestrates the order ledger.
type Service struct {
	repo      ports.Repository
	catalog   ports.ProductCatalog
	uploads   uploadports.Uploader
	gate      authz.Authorizer
	clock     clock.Clock
	publisher events.Publisher
	newID     func() string
	logger    *slog.Logger

	idempotency ports.IdempotencyStore
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

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIdempotencyStore lets buyers resubmit a checkout under the same key
// without creating a second order or uploading the screenshot again.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) {
		s.idempotency = store
	}
}

func NewService(repo ports.Repository, catalog ports.ProductCatalog, uploads uploadports.Uploader, gate authz.Authorizer, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		catalog:   catalog,
		uploads:   uploads,
		gate:      gate,
		clock:     clock.NewSystem(),
		publisher: events.NoopPublisher,
		newID:     uuid.NewString,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder records a pending payment claim for the signed-in buyer.
func (s *Service) CreateOrder(ctx context.Context, actor identity.Identity, input types.PlaceOrderInput) (*domain.Order, error) {
	buyer, ok := identity.AsAuthenticated(actor)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	details := domain.Details{
		ReceiverName: input.ReceiverName,
		Phone:        input.Phone,
		Address:      input.Address,
		UTR:          input.UTR,
	}
	if err := validatePlacement(input, details); err != nil {
		return nil, mapError(err)
	}
	quantity, _ := domain.NormalizeQuantity(input.Quantity)

	var key, fingerprint string
	if s.idempotency != nil {
		key = idempotencyKey(buyer.UID, input.IdempotencyKey)
	}
	if key != "" {
		var err error
		if fingerprint, err = FingerprintPlacement(input); err != nil {
			return nil, mapError(err)
		}
		if previous, err := s.replay(ctx, key, fingerprint); err != nil || previous != nil {
			return previous, err
		}
	}

	product, err := s.catalog.GetProduct(ctx, strings.TrimSpace(input.ProductID))
	if err != nil {
		return nil, err
	}
	if err := domain.CheckAmount(domain.AmountFor(product.Price, quantity)); err != nil {
		return nil, mapError(err)
	}

	screenshotURL, err := s.uploads.Upload(ctx, *input.Screenshot)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	order, err := domain.NewOrder(s.newID(), product.ID, product.Name, product.Price, quantity,
		domain.Buyer{
			UserID:    buyer.UID,
			UserName:  buyer.NameOr(domain.DefaultUserName),
			UserEmail: buyer.Email,
		},
		details, screenshotURL, now)
	if err != nil {
		s.uploads.Orphaned(ctx, err, screenshotURL)
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		s.uploads.Orphaned(ctx, err, screenshotURL)
		return nil, err
	}
	s.uploads.Commit(ctx, screenshotURL)
	if key != "" {
		s.remember(ctx, key, fingerprint, saved.ID)
	}
	s.publisher.Publish(ctx, domain.OrderPlaced{
		BaseEvent: events.BaseEvent{Timestamp: now},
		OrderID:   saved.ID,
		ProductID: saved.ProductID,
		UserID:    saved.UserID,
		Quantity:  saved.Quantity,
		Amount:    saved.Amount,
	})
	return saved, nil
}

// UpdateStatus moves a pending order to verified or rejected. Only the status is written.
func (s *Service) UpdateStatus(ctx context.Context, actor identity.Identity, id string, status string) (*domain.Order, error) {
	if err := s.gate.Authorize(actor); err != nil {
		return nil, err
	}
	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, mapError(err)
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	previous := order.Status
	if err := order.Transition(next); err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.UpdateStatus(ctx, order.ID, previous, next); err != nil {
		return nil, mapError(err)
	}
	s.publisher.Publish(ctx, domain.OrderStatusChanged{
		BaseEvent: events.BaseEvent{Timestamp: s.clock.Now()},
		OrderID:   order.ID,
		UserID:    order.UserID,
		From:      previous,
		To:        next,
	})
	return order, nil
}

// DeleteOrder permanently removes an order.
func (s *Service) DeleteOrder(ctx context.Context, actor identity.Identity, id string) error {
	if err := s.gate.Authorize(actor); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish(ctx, domain.OrderDeleted{
		BaseEvent: events.BaseEvent{Timestamp: s.clock.Now()},
		OrderID:   id,
	})
	return nil
}

// GetOrder returns one order to its owner or the admin.
func (s *Service) GetOrder(ctx context.Context, actor identity.Identity, id string) (*domain.Order, error) {
	caller, ok := identity.AsAuthenticated(actor)
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.OwnedBy(caller.UID) && !s.gate.IsAuthorized(actor) {
		return nil, apperrors.ErrAuthorization
	}
	return order, nil
}

// ListOrdersForUser returns the user's orders, newest first.
func (s *Service) ListOrdersForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(orders)
	return orders, nil
}

// ListAllOrders returns every order, newest first. Admin only.
func (s *Service) ListAllOrders(ctx context.Context, actor identity.Identity) ([]*domain.Order, error) {
	if err := s.gate.Authorize(actor); err != nil {
		return nil, err
	}
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	SortNewestFirst(orders)
	return orders, nil
}

// SortNewestFirst orders by CreatedAt descending, breaking ties by id.
func SortNewestFirst(orders []*domain.Order) {
	slices.SortStableFunc(orders, func(a, b *domain.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func validatePlacement(input types.PlaceOrderInput, details domain.Details) error {
	var errs []error
	if strings.TrimSpace(input.ProductID) == "" {
		errs = append(errs, domain.ErrEmptyProductID)
	}
	if _, err := domain.NormalizeQuantity(input.Quantity); err != nil {
		errs = append(errs, err)
	}
	if err := details.Validate(); err != nil {
		errs = append(errs, err)
	}
	if input.Screenshot == nil {
		errs = append(errs, domain.ErrMissingScreenshot)
	} else if err := input.Screenshot.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

var _ ports.Service = (*Service)(nil)
