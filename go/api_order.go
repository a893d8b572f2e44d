package storefrontserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	identitydomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/identity/domain"
	orderhttpmapper "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/adapters/http/mapper"
	orderports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/ports"
	uploaddomain "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/domain"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

const idempotencyHeader = "Idempotency-Key"

// OrderAPI wires the buyer-facing checkout endpoints with the order ledger.
type OrderAPI struct {
	service orderports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service orderports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /v1/orders
// Place an order with a payment screenshot
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	var form orderhttpmapper.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, err)
		return
	}
	files, err := formFiles(c, "screenshot")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if len(files) > 1 {
		respondBadRequest(c, errors.New("exactly one screenshot is allowed"))
		return
	}
	var screenshot *uploaddomain.File
	if len(files) == 1 {
		screenshot = &files[0]
	}
	input := orderhttpmapper.ToPlaceOrderInput(form, screenshot)
	input.IdempotencyKey = c.GetHeader(idempotencyHeader)
	order, err := api.service.CreateOrder(c.Request.Context(), identityFrom(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.FromDomainOrder(order))
}

// Get /v1/orders/mine
// List the caller's orders, newest first
func (api *OrderAPI) ListMyOrders(c *gin.Context) {
	auth, ok := identitydomain.AsAuthenticated(identityFrom(c))
	if !ok {
		respondServiceError(c, apperrors.ErrUnauthenticated)
		return
	}
	orders, err := api.service.ListOrdersForUser(c.Request.Context(), auth.UID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Get /v1/orders/:orderId
// Find an order owned by the caller
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := pathParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), identityFrom(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}
