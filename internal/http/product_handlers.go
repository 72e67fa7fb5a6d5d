package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tazhibayda/inventory-service/internal/catalog"
	"github.com/tazhibayda/inventory-service/internal/domain"
	"github.com/tazhibayda/inventory-service/internal/listquery"
)

type productCreateReq struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Quantity       int      `json:"quantity"`
	Price          float64  `json:"price"`
	Category       string   `json:"category" binding:"objectid"`
	Status         string   `json:"status" binding:"objectid"`
	Classification string   `json:"classification" binding:"objectid"`
	Condition      string   `json:"condition" binding:"objectid"`
	Images         []string `json:"images"`
}

type productEditReq struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Quantity       *int     `json:"quantity"`
	Price          *float64 `json:"price"`
	Category       *string  `json:"category" binding:"omitempty,objectid"`
	Status         *string  `json:"status" binding:"omitempty,objectid"`
	Classification *string  `json:"classification" binding:"omitempty,objectid"`
	Condition      *string  `json:"condition" binding:"omitempty,objectid"`
	Images         []string `json:"images"`
}

const productKey = "product"

// CreateProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param payload body productCreateReq true "product"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /products/create [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var in productCreateReq
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.Products.Create(c.Request.Context(), catalog.ProductInput(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, productKey: p})
}

// EditProduct godoc
// @Summary Edit a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "product id"
// @Param payload body productEditReq true "fields to change"
// @Success 200 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /products/edit/{id} [put]
func (h *Handler) EditProduct(c *gin.Context) {
	var in productEditReq
	if !bindJSON(c, &in) {
		return
	}
	p, err := h.Products.Edit(c.Request.Context(), c.Param("id"), catalog.ProductPatch(in))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, productKey: p})
}

// GetProduct godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.Products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, productKey: p})
}

// ListProducts godoc
// @Summary List products
// @Tags products
// @Produce json
// @Param keyword query string false "name regex"
// @Param date query string false "YYYY-MM-DD"
// @Param month query int false "1-12"
// @Param year query int false "year"
// @Param sort query string false "asc | desc"
// @Param price query string false "asc | desc"
// @Param quantity query string false "asc | desc"
// @Param page query int false "page"
// @Param limit query int false "page size"
// @Success 200 {object} map[string]any
// @Router /products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	res, err := h.Products.List(c.Request.Context(), listquery.Parse(c.Request.URL.Query(), time.Now(), listquery.WithNumericSort()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Body(domain.ProductsCollection))
}

// DeleteProduct godoc
// @Summary Delete a product and its images
// @Tags products
// @Produce json
// @Param id path string true "product id"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.Products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product has been deleted"})
}
