package api

import (
	"io"
	"net/http"

	"commerce-mesh/internal/bff"
	"commerce-mesh/internal/correlation"
	"commerce-mesh/internal/downstream"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const jsonContentType = "application/json"

// BFFHandler exposes the aggregation/proxy surface.
type BFFHandler struct {
	orch *bff.Orchestrator
}

// NewBFFHandler creates a new BFF handler
func NewBFFHandler(orch *bff.Orchestrator) *BFFHandler {
	return &BFFHandler{orch: orch}
}

// SetupRoutes sets up HTTP routes
func (h *BFFHandler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(correlation.Middleware())
	router.Use(gin.Logger())

	router.GET("/health", healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/products/:id", h.getProduct)
	router.POST("/products", h.createProduct)
	router.POST("/orders", h.createOrder)
	router.GET("/order-summary/:productId", h.getOrderSummary)
}

// getProduct proxies a product lookup to the product service
func (h *BFFHandler) getProduct(c *gin.Context) {
	res := h.orch.GetProduct(c.Request.Context(), c.Param("id"))
	h.mirror(c, res, "An error occurred")
}

// createProduct proxies product creation to the product service
func (h *BFFHandler) createProduct(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	res := h.orch.CreateProduct(c.Request.Context(), body)
	h.mirror(c, res, "An error occurred")
}

// createOrder proxies order creation to the order service
func (h *BFFHandler) createOrder(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	res := h.orch.CreateOrder(c.Request.Context(), body)
	h.mirror(c, res, "An error occurred")
}

// getOrderSummary aggregates the product and its orders into one response
func (h *BFFHandler) getOrderSummary(c *gin.Context) {
	summary, fail := h.orch.GetOrderSummary(c.Request.Context(), c.Param("productId"))
	if fail != nil {
		h.mirror(c, *fail, "An error occurred fetching order summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// mirror writes a downstream result to the caller unchanged: the upstream
// status and body when one exists, otherwise the status with a generic
// message body.
func (h *BFFHandler) mirror(c *gin.Context, res downstream.Result, fallback string) {
	if len(res.Body) == 0 {
		c.JSON(res.StatusCode, gin.H{"message": fallback})
		return
	}
	c.Data(res.StatusCode, jsonContentType, res.Body)
}
