package types

import uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"

// PlaceOrderInput is the checkout form. Quantity zero means one. A non-empty
// IdempotencyKey replays the first order placed under it by the same buyer.
type PlaceOrderInput struct {
	IdempotencyKey string

	ProductID    string
	Quantity     int
	ReceiverName string
	Phone        string
	Address      string
	UTR          string
	Screenshot   *uploaddomain.File
}
