package api

import (
	"errors"
	"net/http"

	"commerce-mesh/internal/correlation"
	"commerce-mesh/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OrderHandler exposes the order service HTTP surface.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// SetupRoutes sets up HTTP routes
func (h *OrderHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(correlation.Middleware())
	router.Use(gin.Logger())

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/orders", h.createOrder)
	router.GET("/orders/product/:productId", h.getOrdersByProduct)
}

// CreateOrderRequest is the payload for order creation
type CreateOrderRequest struct {
	ProductID string  `json:"productId" binding:"required,uuid"`
	Price     float64 `json:"price" binding:"required,gt=0"`
	Qty       int     `json:"qty" binding:"required,gte=1"`
}

// createOrder handles order creation
func (h *OrderHandler) createOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req.ProductID, req.Price, req.Qty)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": service.ErrProductNotFound.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create order",
		})
		return
	}

	c.JSON(http.StatusCreated, order)
}

// getOrdersByProduct handles listing orders for a product
func (h *OrderHandler) getOrdersByProduct(c *gin.Context) {
	orders, err := h.orderService.GetOrdersByProductID(c.Request.Context(), c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, orders)
}
