package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/rawatr0788-code/Gamerz-Kit/internal/domains/catalog/ports"
)

// ProductAPI wires HTTP transport with the catalog bounded context.
type ProductAPI struct {
	service catalogports.Service
}

// NewProductAPI creates a ProductAPI backed by the provided service.
func NewProductAPI(service catalogports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Get /v1/products
// List products, newest first
func (api *ProductAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProducts(products))
}

// Get /v1/products/:productId
// Find product by ID
func (api *ProductAPI) GetProduct(c *gin.Context) {
	id, ok := pathParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProduct(product))
}

// Post /v1/products
// Create a product from a multipart form with one or more images parts
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var form producthttpmapper.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, err)
		return
	}
	images, err := formFiles(c, "images")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	input := producthttpmapper.ToCreateInput(form, images)
	product, err := api.service.CreateProduct(c.Request.Context(), identityFrom(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, producthttpmapper.FromDomainProduct(product))
}

// Put /v1/products/:productId
// Edit a product; new images parts are appended
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	id, ok := pathParam(c, "productId")
	if !ok {
		return
	}
	var form producthttpmapper.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		respondBadRequest(c, err)
		return
	}
	images, err := formFiles(c, "images")
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	input := producthttpmapper.ToUpdateInput(id, form, images)
	product, err := api.service.UpdateProduct(c.Request.Context(), identityFrom(c), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainProduct(product))
}

// Delete /v1/products/:productId
// Remove a product; existing orders keep their snapshot
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	id, ok := pathParam(c, "productId")
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), identityFrom(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
