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

// salesReturnHandler handles HTTP requests related to sales returns.
type salesReturnHandler struct {
	salesService portssvc.SalesSvcFacade
}

func newSalesReturnHandler(ss portssvc.SalesSvcFacade) *salesReturnHandler {
	return &salesReturnHandler{salesService: ss}
}

// registerSalesReturnRoutes registers routes related to sales returns.
func registerSalesReturnRoutes(rg *gin.RouterGroup, salesService portssvc.SalesSvcFacade) {
	h := newSalesReturnHandler(salesService)

	returns := rg.Group("/sales-returns")
	{
		returns.POST("", h.createSalesReturn)
		returns.GET("/:returnID", h.getSalesReturnByID)
	}
}

// createSalesReturn godoc
// @Summary Book a sales return
// @Description Books a partial or full return against a confirmed invoice at the invoice's original pricing and frozen snapshot
// @Tags sales-returns
// @Accept  json
// @Produce  json
// @Param   return body dto.CreateSalesReturnRequest true "Return details"
// @Success 201 {object} dto.SalesReturnResponse
// @Failure 400 {object} map[string]string "Invalid input or quantity exceeds what remains returnable"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice is not in a returnable state"
// @Security BearerAuth
// @Router /sales-returns [post]
func (h *salesReturnHandler) createSalesReturn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSalesReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.salesService.CreateSalesReturn(c.Request.Context(), req, creatorUserID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidOperation):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to book sales return", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book sales return"})
		}
		return
	}

	logger.Info("Sales return booked",
		slog.String("return_id", created.ReturnID),
		slog.String("invoice_id", created.InvoiceID))
	c.JSON(http.StatusCreated, dto.ToSalesReturnResponse(created))
}

// getSalesReturnByID godoc
// @Summary Get a sales return with its lines
// @Tags sales-returns
// @Produce  json
// @Param   returnID path string true "Return ID"
// @Success 200 {object} dto.SalesReturnResponse
// @Failure 404 {object} map[string]string "Return not found"
// @Security BearerAuth
// @Router /sales-returns/{returnID} [get]
func (h *salesReturnHandler) getSalesReturnByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	returnID := c.Param("returnID")

	ret, err := h.salesService.GetSalesReturnByID(c.Request.Context(), returnID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Sales return not found"})
		} else {
			logger.Error("Failed to get sales return", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve sales return"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSalesReturnResponse(ret))
}
