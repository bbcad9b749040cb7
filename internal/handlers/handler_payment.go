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

// paymentHandler handles HTTP requests related to customer payments.
type paymentHandler struct {
	salesService portssvc.SalesSvcFacade
}

func newPaymentHandler(ss portssvc.SalesSvcFacade) *paymentHandler {
	return &paymentHandler{salesService: ss}
}

// registerPaymentRoutes registers routes related to customer payments.
func registerPaymentRoutes(rg *gin.RouterGroup, salesService portssvc.SalesSvcFacade) {
	h := newPaymentHandler(salesService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.receivePayment)
		payments.GET("/:paymentID", h.getPaymentByID)
	}
}

// receivePayment godoc
// @Summary Record a customer payment
// @Description Records a payment and allocates it across invoices: explicitly when allocations are supplied, against a single invoice in legacy mode, or FIFO oldest-first otherwise
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Customer or invoice not found"
// @Failure 422 {object} map[string]string "No exchange rate configured"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) receivePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.salesService.ReceivePayment(c.Request.Context(), req, creatorUserID)
	if err != nil {
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
			logger.Error("Failed to record payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("customer_id", payment.CustomerID))

	// Re-read so the response carries the allocations the service created.
	saved, allocations, err := h.salesService.GetPaymentByID(c.Request.Context(), payment.PaymentID)
	if err != nil {
		c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, nil))
		return
	}
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(saved, allocations))
}

// getPaymentByID godoc
// @Summary Get a payment with its allocations
// @Tags payments
// @Produce  json
// @Param   paymentID path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /payments/{paymentID} [get]
func (h *paymentHandler) getPaymentByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	paymentID := c.Param("paymentID")

	payment, allocations, err := h.salesService.GetPaymentByID(c.Request.Context(), paymentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
		} else {
			logger.Error("Failed to get payment", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve payment"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment, allocations))
}
