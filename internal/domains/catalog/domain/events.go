package domain

import (
	"github.com/shopspring/decimal"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/events"
)

// ProductCreated is raised when a listing is added to the catalog.
type ProductCreated struct {
	events.BaseEvent
	ProductID string
	Name      string
	Price     decimal.Decimal
}

func (e ProductCreated) EventName() string   { return "catalog.product.created" }
func (e ProductCreated) AggregateID() string { return e.ProductID }

// ProductUpdated is raised when a listing is edited.
type ProductUpdated struct {
	events.BaseEvent
	ProductID     string
	Name          string
	Price         decimal.Decimal
	AddedImages   int
	PreviousPrice decimal.Decimal
}

func (e ProductUpdated) EventName() string   { return "catalog.product.updated" }
func (e ProductUpdated) AggregateID() string { return e.ProductID }

// ProductDeleted is raised when a listing is removed. Orders referencing it are untouched.
type ProductDeleted struct {
	events.BaseEvent
	ProductID string
}

func (e ProductDeleted) EventName() string   { return "catalog.product.deleted" }
func (e ProductDeleted) AggregateID() string { return e.ProductID }
