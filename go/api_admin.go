package storefrontserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	orderhttpmapper "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/adapters/http/mapper"
	orderports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/orders/ports"
	uploadports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/uploads/ports"
	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/authz"
	apierrors "github.com/rawatr0788-code/Gamerz-Kit/internal/shared/errors"
)

// AdminAPI exposes order review and upload housekeeping to the admin.
type AdminAPI struct {
	orders       orderports.Service
	gate         authz.Authorizer
	workflows    uploadports.WorkflowOrchestrator
	defaultGrace time.Duration
}

// NewAdminAPI creates an AdminAPI. workflows may be nil when orphan tracking is off.
func NewAdminAPI(orders orderports.Service, gate authz.Authorizer, workflows uploadports.WorkflowOrchestrator, defaultGrace time.Duration) AdminAPI {
	return AdminAPI{orders: orders, gate: gate, workflows: workflows, defaultGrace: defaultGrace}
}

// ReconcileReport is the outcome of an orphan sweep.
type ReconcileReport struct {
	Scanned int      `json:"scanned"`
	Deleted []string `json:"deleted"`
	Failed  []string `json:"failed"`
}

// Get /v1/admin/orders
// List every order, newest first
func (api *AdminAPI) ListAllOrders(c *gin.Context) {
	orders, err := api.orders.ListAllOrders(c.Request.Context(), identityFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrders(orders))
}

// Put /v1/admin/orders/:orderId/status
// Verify or reject a pending order
func (api *AdminAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathParam(c, "orderId")
	if !ok {
		return
	}
	var payload orderhttpmapper.StatusUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	order, err := api.orders.UpdateStatus(c.Request.Context(), identityFrom(c), id, payload.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainOrder(order))
}

// Delete /v1/admin/orders/:orderId
// Remove an order
func (api *AdminAPI) DeleteOrder(c *gin.Context) {
	id, ok := pathParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.orders.DeleteOrder(c.Request.Context(), identityFrom(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/admin/uploads/reconcile
// Delete blobs older than graceMinutes that no record references
func (api *AdminAPI) ReconcileUploads(c *gin.Context) {
	if err := api.gate.Authorize(identityFrom(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	if api.workflows == nil {
		respondProblem(c, apierrors.ErrUnavailable.WithDetail("orphan tracking is not configured"))
		return
	}
	grace := api.defaultGrace
	var minutes int
	if err := runtime.BindQueryParameter("form", true, false, "graceMinutes", c.Request.URL.Query(), &minutes); err != nil {
		respondBadRequest(c, err)
		return
	}
	if minutes < 0 {
		respondProblem(c, apierrors.NewValidationProblem("graceMinutes must not be negative", nil))
		return
	}
	if minutes > 0 {
		grace = time.Duration(minutes) * time.Minute
	}
	report, err := api.workflows.ReconcileOrphans(c.Request.Context(), grace)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ReconcileReport{
		Scanned: report.Scanned,
		Deleted: append([]string{}, report.Deleted...),
		Failed:  append([]string{}, report.Failed...),
	})
}
