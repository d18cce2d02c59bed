package api

import (
	"errors"
	"net/http"

	"commerce-mesh/internal/correlation"
	"commerce-mesh/internal/service"
	"commerce-mesh/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ProductHandler exposes the product service HTTP surface.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// SetupRoutes sets up HTTP routes
func (h *ProductHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(correlation.Middleware())
	router.Use(gin.Logger())

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/products", h.createProduct)
	router.GET("/products/:id", h.getProduct)
}

// CreateProductRequest is the payload for product creation
type CreateProductRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"required,gt=0"`
	Qty   *int    `json:"qty" binding:"required,gte=0"`
}

// createProduct handles product creation
func (h *ProductHandler) createProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req.Name, req.Price, *req.Qty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to create product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// getProduct handles product lookup by id
func (h *ProductHandler) getProduct(c *gin.Context) {
	id := c.Param("id")

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch product",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, product)
}
