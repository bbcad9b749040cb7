package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/dto"
	"github.com/mizan-erp/mizan_backend/internal/middleware"
)

// purchaseHandler handles HTTP requests related to purchase orders and
// supplier payments.
type purchaseHandler struct {
	purchaseService portssvc.PurchaseSvcFacade
}

func newPurchaseHandler(ps portssvc.PurchaseSvcFacade) *purchaseHandler {
	return &purchaseHandler{purchaseService: ps}
}

// registerPurchaseRoutes registers routes related to purchasing.
func registerPurchaseRoutes(rg *gin.RouterGroup, purchaseService portssvc.PurchaseSvcFacade) {
	h := newPurchaseHandler(purchaseService)

	orders := rg.Group("/purchase-orders")
	{
		orders.POST("", h.createPurchaseOrder)
		orders.GET("/:orderID", h.getOrderByID)
		orders.POST("/:orderID/approve", h.approveOrder)
		orders.POST("/:orderID/receive", h.receiveOrder)
		orders.POST("/:orderID/cancel", h.cancelOrder)
	}

	payments := rg.Group("/supplier-payments")
	{
		payments.POST("", h.makeSupplierPayment)
	}
}

// createPurchaseOrder godoc
// @Summary Create a draft purchase order
// @Description Persists a draft order with a frozen FX snapshot; purchase lines never carry tax
// @Tags purchase-orders
// @Accept  json
// @Produce  json
// @Param   order body dto.CreatePurchaseOrderRequest true "Order details"
// @Success 201 {object} dto.PurchaseOrderResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 422 {object} map[string]string "No exchange rate configured"
// @Security BearerAuth
// @Router /purchase-orders [post]
func (h *purchaseHandler) createPurchaseOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.purchaseService.CreatePurchaseOrder(c.Request.Context(), req, creatorUserID)
	if err != nil {
		h.writePurchaseError(c, logger, err, "Failed to create purchase order")
		return
	}

	logger.Info("Purchase order created",
		slog.String("order_id", created.OrderID),
		slog.String("order_number", created.OrderNumber))
	c.JSON(http.StatusCreated, dto.ToPurchaseOrderResponse(created))
}

// getOrderByID godoc
// @Summary Get a purchase order with its lines
// @Tags purchase-orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Security BearerAuth
// @Router /purchase-orders/{orderID} [get]
func (h *purchaseHandler) getOrderByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	order, err := h.purchaseService.GetOrderByID(c.Request.Context(), orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase order not found"})
		} else {
			logger.Error("Failed to get purchase order", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve purchase order"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(order))
}

// approveOrder godoc
// @Summary Approve a draft purchase order
// @Tags purchase-orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order is not a draft"
// @Security BearerAuth
// @Router /purchase-orders/{orderID}/approve [post]
func (h *purchaseHandler) approveOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	approved, err := h.purchaseService.ApproveOrder(c.Request.Context(), orderID, updaterUserID)
	if err != nil {
		h.writePurchaseError(c, logger, err, "Failed to approve purchase order")
		return
	}

	logger.Info("Purchase order approved", slog.String("order_id", orderID))
	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(approved))
}

// receiveOrder godoc
// @Summary Book received quantities on an order
// @Description Books a full or partial delivery; the payable balance effect goes through the order's frozen snapshot
// @Tags purchase-orders
// @Accept  json
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Param   delivery body dto.ReceiveOrderRequest true "Received quantities per line"
// @Success 200 {object} dto.PurchaseOrderResponse
// @Failure 400 {object} map[string]string "Quantity exceeds what remains to receive"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order is not receivable"
// @Security BearerAuth
// @Router /purchase-orders/{orderID}/receive [post]
func (h *purchaseHandler) receiveOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	var req dto.ReceiveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	received, err := h.purchaseService.ReceiveOrder(c.Request.Context(), orderID, req, updaterUserID)
	if err != nil {
		h.writePurchaseError(c, logger, err, "Failed to receive purchase order")
		return
	}

	logger.Info("Purchase order delivery booked", slog.String("order_id", orderID))
	c.JSON(http.StatusOK, dto.ToPurchaseOrderResponse(received))
}

// cancelOrder godoc
// @Summary Cancel a purchase order
// @Description Cancels an order and reverses any booked balance effect; refused once payments are applied
// @Tags purchase-orders
// @Produce  json
// @Param   orderID path string true "Order ID"
// @Success 204 "Order cancelled"
// @Failure 404 {object} map[string]string "Order not found"
// @Failure 409 {object} map[string]string "Order has payments applied"
// @Security BearerAuth
// @Router /purchase-orders/{orderID}/cancel [post]
func (h *purchaseHandler) cancelOrder(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orderID := c.Param("orderID")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.purchaseService.CancelOrder(c.Request.Context(), orderID, updaterUserID); err != nil {
		h.writePurchaseError(c, logger, err, "Failed to cancel purchase order")
		return
	}

	logger.Info("Purchase order cancelled", slog.String("order_id", orderID))
	c.Status(http.StatusNoContent)
}

// makeSupplierPayment godoc
// @Summary Record a payment to a supplier
// @Description Records money paid to a supplier, optionally applied against one order
// @Tags supplier-payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreateSupplierPaymentRequest true "Payment details"
// @Success 201 {object} dto.SupplierPaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Supplier or order not found"
// @Failure 422 {object} map[string]string "No exchange rate configured"
// @Security BearerAuth
// @Router /supplier-payments [post]
func (h *purchaseHandler) makeSupplierPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSupplierPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.purchaseService.MakeSupplierPayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
		h.writePurchaseError(c, logger, err, "Failed to record supplier payment")
		return
	}

	logger.Info("Supplier payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("supplier_id", payment.SupplierID))
	c.JSON(http.StatusCreated, dto.ToSupplierPaymentResponse(payment))
}

// writePurchaseError maps service errors common to the purchase operations.
func (h *purchaseHandler) writePurchaseError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidOperation):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNoExchangeRateConfigured):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
