/*
 * Gamerz Kit Storefront API
 *
 * Catalog, checkout, and order review endpoints for the Gamerz Kit storefront.
 *
 * API version: 1.0.0
 */

package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds routes to an existing gin engine. Every route
// sees the caller identity resolved from the bearer token.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	router.Use(IdentityMiddleware(handleFunctions.AuthAPI.service))
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}

	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {

	// Routes for the AuthAPI part of the API
	AuthAPI AuthAPI
	// Routes for the ProductAPI part of the API
	ProductAPI ProductAPI
	// Routes for the OrderAPI part of the API
	OrderAPI OrderAPI
	// Routes for the AdminAPI part of the API
	AdminAPI AdminAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Register",
			http.MethodPost,
			"/v1/auth/register",
			handleFunctions.AuthAPI.Register,
		},
		{
			"Login",
			http.MethodPost,
			"/v1/auth/login",
			handleFunctions.AuthAPI.Login,
		},
		{
			"Refresh",
			http.MethodPost,
			"/v1/auth/refresh",
			handleFunctions.AuthAPI.Refresh,
		},
		{
			"Logout",
			http.MethodPost,
			"/v1/auth/logout",
			handleFunctions.AuthAPI.Logout,
		},
		{
			"Me",
			http.MethodGet,
			"/v1/auth/me",
			handleFunctions.AuthAPI.Me,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/v1/products",
			handleFunctions.ProductAPI.ListProducts,
		},
		{
			"GetProduct",
			http.MethodGet,
			"/v1/products/:productId",
			handleFunctions.ProductAPI.GetProduct,
		},
		{
			"CreateProduct",
			http.MethodPost,
			"/v1/products",
			handleFunctions.ProductAPI.CreateProduct,
		},
		{
			"UpdateProduct",
			http.MethodPut,
			"/v1/products/:productId",
			handleFunctions.ProductAPI.UpdateProduct,
		},
		{
			"DeleteProduct",
			http.MethodDelete,
			"/v1/products/:productId",
			handleFunctions.ProductAPI.DeleteProduct,
		},
		{
			"PlaceOrder",
			http.MethodPost,
			"/v1/orders",
			handleFunctions.OrderAPI.PlaceOrder,
		},
		{
			"ListMyOrders",
			http.MethodGet,
			"/v1/orders/mine",
			handleFunctions.OrderAPI.ListMyOrders,
		},
		{
			"GetOrder",
			http.MethodGet,
			"/v1/orders/:orderId",
			handleFunctions.OrderAPI.GetOrder,
		},
		{
			"ListAllOrders",
			http.MethodGet,
			"/v1/admin/orders",
			handleFunctions.AdminAPI.ListAllOrders,
		},
		{
			"UpdateOrderStatus",
			http.MethodPut,
			"/v1/admin/orders/:orderId/status",
			handleFunctions.AdminAPI.UpdateOrderStatus,
		},
		{
			"DeleteOrder",
			http.MethodDelete,
			"/v1/admin/orders/:orderId",
			handleFunctions.AdminAPI.DeleteOrder,
		},
		{
			"ReconcileUploads",
			http.MethodPost,
			"/v1/admin/uploads/reconcile",
			handleFunctions.AdminAPI.ReconcileUploads,
		},
	}
}
