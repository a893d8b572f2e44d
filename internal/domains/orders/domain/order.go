package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates order progression. Verified and rejected are terminal.
type Status string

const (
	StatusPending  Status = "pending"
	StatusVerified Status = "verified"
	StatusRejected Status = "rejected"
)

// DefaultUserName is recorded when the buyer has no display name.
const DefaultUserName = "Anonymous User"

var (
	ErrEmptyID             = errors.New("order id is required")
	ErrEmptyProductID      = errors.New("product id is required")
	ErrEmptyUserID         = errors.New("user id is required")
	ErrInvalidQuantity     = errors.New("quantity must not be negative")
	ErrMissingUTR          = errors.New("utr is required")
	ErrMissingPhone        = errors.New("phone is required")
	ErrMissingAddress      = errors.New("address is required")
	ErrMissingReceiverName = errors.New("receiver name is required")
	ErrMissingScreenshot   = errors.New("payment screenshot is required")
	ErrQuantityTooLarge    = errors.New("quantity must be at most 10000")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrAmountTooLarge      = errors.New("order total must be below 1000000000000")
	ErrUnknownStatus       = errors.New("order status is unknown")
	ErrInvalidTransition   = errors.New("order status transition is not allowed")
)

// Order records a purchase claim awaiting manual payment verification.
// ProductName and Amount are snapshots taken at creation.
type Order struct {
	ID            string
	ProductID     string
	ProductName   string
	Amount        decimal.Decimal
	Quantity      int
	UserID        string
	UserName      string
	UserEmail     string
	ReceiverName  string
	Phone         string
	Address       string
	UTR           string
	ScreenshotURL string
	Status        Status
	CreatedAt     time.Time
}

// Buyer identifies who placed the order.
type Buyer struct {
	UserID    string
	UserName  string
	UserEmail string
}

// Details is the buyer-supplied part of an order form.
type Details struct {
	ReceiverName string
	Phone        string
	Address      string
	UTR          string
}

// Normalize trims every field.
func (d Details) Normalize() Details {
	return Details{
		ReceiverName: strings.TrimSpace(d.ReceiverName),
		Phone:        strings.TrimSpace(d.Phone),
		Address:      strings.TrimSpace(d.Address),
		UTR:          strings.TrimSpace(d.UTR),
	}
}

// Validate reports every missing field.
func (d Details) Validate() error {
	d = d.Normalize()
	var errs []error
	if d.UTR == "" {
		errs = append(errs, ErrMissingUTR)
	}
	if d.Phone == "" {
		errs = append(errs, ErrMissingPhone)
	}
	if d.Address == "" {
		errs = append(errs, ErrMissingAddress)
	}
	if d.ReceiverName == "" {
		errs = append(errs, ErrMissingReceiverName)
	}
	return errors.Join(errs...)
}

// MaxQuantity bounds a single order line.
const MaxQuantity = 10000

// MaxAmount is the largest total a numeric(14,2) column holds.
var MaxAmount = decimal.RequireFromString("999999999999.99")

// NormalizeQuantity applies the default of one and rejects negatives and
// quantities above MaxQuantity.
func NormalizeQuantity(quantity int) (int, error) {
	switch {
	case quantity < 0:
		return 0, ErrInvalidQuantity
	case quantity == 0:
		return 1, nil
	case quantity > MaxQuantity:
		return 0, ErrQuantityTooLarge
	default:
		return quantity, nil
	}
}

// AmountFor computes the order total from the unit price at order time.
func AmountFor(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// CheckAmount rejects totals the ledger cannot store.
func CheckAmount(amount decimal.Decimal) error {
	switch {
	case amount.IsNegative():
		return ErrNegativeAmount
	case amount.GreaterThan(MaxAmount):
		return ErrAmountTooLarge
	}
	return nil
}

// NewOrder builds a pending order. The amount is fixed here and never recomputed.
func NewOrder(id, productID, productName string, unitPrice decimal.Decimal, quantity int, buyer Buyer, details Details, screenshotURL string, now time.Time) (*Order, error) {
	quantity, err := NormalizeQuantity(quantity)
	if err != nil {
		return nil, err
	}
	details = details.Normalize()
	order := &Order{
		ID:            strings.TrimSpace(id),
		ProductID:     strings.TrimSpace(productID),
		ProductName:   productName,
		Amount:        AmountFor(unitPrice, quantity),
		Quantity:      quantity,
		UserID:        buyer.UserID,
		UserName:      buyer.UserName,
		UserEmail:     buyer.UserEmail,
		ReceiverName:  details.ReceiverName,
		Phone:         details.Phone,
		Address:       details.Address,
		UTR:           details.UTR,
		ScreenshotURL: strings.TrimSpace(screenshotURL),
		Status:        StatusPending,
		CreatedAt:     now,
	}
	if strings.TrimSpace(order.UserName) == "" {
		order.UserName = DefaultUserName
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.ID == "" {
		return ErrEmptyID
	}
	if o.ProductID == "" {
		return ErrEmptyProductID
	}
	if o.UserID == "" {
		return ErrEmptyUserID
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if o.Quantity > MaxQuantity {
		return ErrQuantityTooLarge
	}
	if err := CheckAmount(o.Amount); err != nil {
		return err
	}
	if err := (Details{ReceiverName: o.ReceiverName, Phone: o.Phone, Address: o.Address, UTR: o.UTR}).Validate(); err != nil {
		return err
	}
	if o.ScreenshotURL == "" {
		return ErrMissingScreenshot
	}
	if _, err := ParseStatus(string(o.Status)); err != nil {
		return err
	}
	return nil
}

// Transition moves a pending order to a terminal status.
func (o *Order) Transition(next Status) error {
	if _, err := ParseStatus(string(next)); err != nil {
		return err
	}
	if !o.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.Status = next
	return nil
}

// OwnedBy reports whether userID placed the order.
func (o *Order) OwnedBy(userID string) bool {
	return userID != "" && o.UserID == userID
}

// ParseStatus accepts only the known status values.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusPending, StatusVerified, StatusRejected:
		return s, nil
	default:
		return "", ErrUnknownStatus
	}
}

// CanTransitionTo allows pending to verified and pending to rejected, nothing else.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && (next == StatusVerified || next == StatusRejected)
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusVerified || s == StatusRejected
}
