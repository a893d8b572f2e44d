package mapper

import (
	"encoding/json"
	"time"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/application/types"
	orderdomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/domain"
	uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
)

// Order represents the transport-layer shape returned by the HTTP handlers.
type Order struct {
	ID            string      `json:"id"`
	ProductID     string      `json:"productId"`
	ProductName   string      `json:"productName"`
	Amount        json.Number `json:"amount"`
	Quantity      int         `json:"quantity"`
	UserID        string      `json:"userId"`
	UserName      string      `json:"userName"`
	UserEmail     string      `json:"userEmail"`
	ReceiverName  string      `json:"receiverName"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	UTR           string      `json:"utr"`
	ScreenshotURL string      `json:"screenshotUrl"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// OrderForm is the multipart checkout form; the screenshot arrives as a file part.
type OrderForm struct {
	ProductID    string `form:"productId"`
	Quantity     int    `form:"quantity"`
	ReceiverName string `form:"receiverName"`
	Phone        string `form:"phone"`
	Address      string `form:"address"`
	UTR          string `form:"utr"`
}

// StatusUpdate is the admin status change body.
type StatusUpdate struct {
	Status string `json:"status"`
}

// ToPlaceOrderInput maps a checkout form to the service input.
func ToPlaceOrderInput(form OrderForm, screenshot *uploaddomain.File) types.PlaceOrderInput {
	return types.PlaceOrderInput{
		ProductID:    form.ProductID,
		Quantity:     form.Quantity,
		ReceiverName: form.ReceiverName,
		Phone:        form.Phone,
		Address:      form.Address,
		UTR:          form.UTR,
		Screenshot:   screenshot,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *orderdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		ID:            order.ID,
		ProductID:     order.ProductID,
		ProductName:   order.ProductName,
		Amount:        json.Number(order.Amount.String()),
		Quantity:      order.Quantity,
		UserID:        order.UserID,
		UserName:      order.UserName,
		UserEmail:     order.UserEmail,
		ReceiverName:  order.ReceiverName,
		Phone:         order.Phone,
		Address:       order.Address,
		UTR:           order.UTR,
		ScreenshotURL: order.ScreenshotURL,
		Status:        string(order.Status),
		CreatedAt:     order.CreatedAt,
	}
}

// FromDomainOrders converts a slice of orders preserving order.
func FromDomainOrders(orders []*orderdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}
