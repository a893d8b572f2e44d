package domain

import (
	"github.com/shopspring/decimal"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/events"
)

// OrderPlaced is raised when a buyer submits a payment claim.
type OrderPlaced struct {
	events.BaseEvent
	OrderID   string
	ProductID string
	UserID    string
	Quantity  int
	Amount    decimal.Decimal
}

func (e OrderPlaced) EventName() string   { return "orders.order.placed" }
func (e OrderPlaced) AggregateID() string { return e.OrderID }

// OrderStatusChanged is raised when the admin verifies or rejects a payment.
type OrderStatusChanged struct {
	events.BaseEvent
	OrderID string
	UserID  string
	From    Status
	To      Status
}

func (e OrderStatusChanged) EventName() string   { return "orders.order.status_changed" }
func (e OrderStatusChanged) AggregateID() string { return e.OrderID }

// OrderDeleted is raised when an order is removed from the ledger.
type OrderDeleted struct {
	events.BaseEvent
	OrderID string
}

func (e OrderDeleted) EventName() string   { return "orders.order.deleted" }
func (e OrderDeleted) AggregateID() string { return e.OrderID }
