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

// taxRateHandler handles HTTP requests related to tax rates.
type taxRateHandler struct {
	taxRateService portssvc.TaxRateSvcFacade
}

func newTaxRateHandler(ts portssvc.TaxRateSvcFacade) *taxRateHandler {
	return &taxRateHandler{taxRateService: ts}
}

// registerTaxRateRoutes registers routes related to tax rates.
func registerTaxRateRoutes(rg *gin.RouterGroup, taxRateService portssvc.TaxRateSvcFacade) {
	h := newTaxRateHandler(taxRateService)

	taxRates := rg.Group("/tax-rates")
	{
		taxRates.POST("", h.createTaxRate)
		taxRates.GET("", h.listTaxRates)
		taxRates.GET("/default", h.getDefaultTaxRate)
		taxRates.GET("/:id", h.getTaxRateByID)
		taxRates.PUT("/:id", h.updateTaxRate)
		taxRates.POST("/:id/set-default", h.setDefaultTaxRate)
	}
}

// createTaxRate godoc
// @Summary Create a new tax rate
// @Tags tax-rates
// @Accept  json
// @Produce  json
// @Param   taxRate body dto.CreateTaxRateRequest true "Tax rate details"
// @Success 201 {object} dto.TaxRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /tax-rates [post]
func (h *taxRateHandler) createTaxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.taxRateService.CreateTaxRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create tax rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tax rate"})
		}
		return
	}

	logger.Info("Tax rate created", slog.String("tax_rate_id", created.TaxRateID))
	c.JSON(http.StatusCreated, dto.ToTaxRateResponse(created))
}

// getTaxRateByID godoc
// @Summary Get a tax rate by ID
// @Tags tax-rates
// @Produce  json
// @Param   id path string true "Tax Rate ID"
// @Success 200 {object} dto.TaxRateResponse
// @Failure 404 {object} map[string]string "Tax rate not found"
// @Security BearerAuth
// @Router /tax-rates/{id} [get]
func (h *taxRateHandler) getTaxRateByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxRateID := c.Param("id")

	rate, err := h.taxRateService.GetTaxRateByID(c.Request.Context(), taxRateID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax rate not found"})
		} else {
			logger.Error("Failed to get tax rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tax rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxRateResponse(rate))
}

// getDefaultTaxRate godoc
// @Summary Get the default tax rate
// @Tags tax-rates
// @Produce  json
// @Success 200 {object} dto.TaxRateResponse
// @Failure 404 {object} map[string]string "No default tax rate configured"
// @Security BearerAuth
// @Router /tax-rates/default [get]
func (h *taxRateHandler) getDefaultTaxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rate, err := h.taxRateService.GetDefaultTaxRate(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "No default tax rate configured"})
		} else {
			logger.Error("Failed to get default tax rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve default tax rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxRateResponse(rate))
}

// listTaxRates godoc
// @Summary List tax rates
// @Tags tax-rates
// @Produce  json
// @Param   activeOnly query bool false "Only active rates"
// @Success 200 {array} dto.TaxRateResponse
// @Security BearerAuth
// @Router /tax-rates [get]
func (h *taxRateHandler) listTaxRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	activeOnly := c.Query("activeOnly") == "true"

	rates, err := h.taxRateService.ListTaxRates(c.Request.Context(), activeOnly)
	if err != nil {
		logger.Error("Failed to list tax rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tax rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListTaxRateResponse(rates))
}

// updateTaxRate godoc
// @Summary Update a tax rate
// @Tags tax-rates
// @Accept  json
// @Produce  json
// @Param   id path string true "Tax Rate ID"
// @Param   taxRate body dto.UpdateTaxRateRequest true "Fields to update"
// @Success 200 {object} dto.TaxRateResponse
// @Failure 404 {object} map[string]string "Tax rate not found"
// @Security BearerAuth
// @Router /tax-rates/{id} [put]
func (h *taxRateHandler) updateTaxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxRateID := c.Param("id")

	var req dto.UpdateTaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.taxRateService.UpdateTaxRate(c.Request.Context(), taxRateID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax rate not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update tax rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tax rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxRateResponse(updated))
}

// setDefaultTaxRate godoc
// @Summary Set the default tax rate
// @Tags tax-rates
// @Produce  json
// @Param   id path string true "Tax Rate ID"
// @Success 204 "Default tax rate changed"
// @Failure 404 {object} map[string]string "Tax rate not found"
// @Security BearerAuth
// @Router /tax-rates/{id}/set-default [post]
func (h *taxRateHandler) setDefaultTaxRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	taxRateID := c.Param("id")

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.taxRateService.SetDefaultTaxRate(c.Request.Context(), taxRateID, updaterUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tax rate not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set default tax rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set default tax rate"})
		}
		return
	}

	logger.Info("Default tax rate changed", slog.String("tax_rate_id", taxRateID))
	c.Status(http.StatusNoContent)
}
