package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mizan-erp/mizan_backend/internal/apperrors"
	portssvc "github.com/mizan-erp/mizan_backend/internal/core/ports/services"
	"github.com/mizan-erp/mizan_backend/internal/dto"
	"github.com/mizan-erp/mizan_backend/internal/middleware"
)

// dailyRateHandler handles HTTP requests for the daily USD/SYP rate ledger.
type dailyRateHandler struct {
	fxRateService portssvc.FXRateSvcFacade
}

func newDailyRateHandler(fs portssvc.FXRateSvcFacade) *dailyRateHandler {
	return &dailyRateHandler{fxRateService: fs}
}

// registerDailyRateRoutes registers routes related to the daily rate ledger.
func registerDailyRateRoutes(rg *gin.RouterGroup, fxRateService portssvc.FXRateSvcFacade) {
	h := newDailyRateHandler(fxRateService)

	rates := rg.Group("/daily-rates")
	{
		rates.POST("", h.createDailyRate)
		rates.GET("", h.listDailyRates)
		rates.GET("/for-date", h.getRateForDate)
		rates.PUT("/:id", h.updateDailyRate)
	}
}

// parseDateParam reads a YYYY-MM-DD query parameter.
func parseDateParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// createDailyRate godoc
// @Summary Record a daily rate pair
// @Description Records the USD/SYP rate pair for one date; the missing side is derived through the redenomination ratio
// @Tags daily-rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateDailyRateRequest true "Rate details"
// @Success 201 {object} dto.DailyRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Rate already recorded for this date"
// @Security BearerAuth
// @Router /daily-rates [post]
func (h *dailyRateHandler) createDailyRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDailyRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	created, err := h.fxRateService.CreateDailyRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A rate is already recorded for this date"})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidExchangeRate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create daily rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create daily rate"})
		}
		return
	}

	logger.Info("Daily rate recorded", slog.Time("rate_date", created.RateDate))
	c.JSON(http.StatusCreated, dto.ToDailyRateResponse(created))
}

// updateDailyRate godoc
// @Summary Correct a daily rate row
// @Description Corrects a ledger row; documents already snapshotted keep their frozen pair
// @Tags daily-rates
// @Accept  json
// @Produce  json
// @Param   id path string true "Rate ID"
// @Param   rate body dto.UpdateDailyRateRequest true "Fields to correct"
// @Success 200 {object} dto.DailyRateResponse
// @Failure 404 {object} map[string]string "Rate not found"
// @Security BearerAuth
// @Router /daily-rates/{id} [put]
func (h *dailyRateHandler) updateDailyRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	rateID := c.Param("id")

	var req dto.UpdateDailyRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updaterUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	updated, err := h.fxRateService.UpdateDailyRate(c.Request.Context(), rateID, req, updaterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rate not found"})
		} else if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrInvalidExchangeRate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update daily rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update daily rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyRateResponse(updated))
}

// getRateForDate godoc
// @Summary Resolve the rate pair applying on a date
// @Description Returns the row for the exact date, or the most recent prior row when none exists
// @Tags daily-rates
// @Produce  json
// @Param   date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.DailyRateResponse
// @Failure 422 {object} map[string]string "No rate configured on or before this date"
// @Security BearerAuth
// @Router /daily-rates/for-date [get]
func (h *dailyRateHandler) getRateForDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date, err := parseDateParam(c, "date")
	if err != nil || date == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid 'date' query parameter (YYYY-MM-DD) is required"})
		return
	}

	rate, err := h.fxRateService.GetRateForDate(c.Request.Context(), *date)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoExchangeRateConfigured) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to resolve rate for date", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyRateResponse(rate))
}

// listDailyRates godoc
// @Summary List ledger rows
// @Tags daily-rates
// @Produce  json
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Param   limit query int false "Max rows"
// @Success 200 {array} dto.DailyRateResponse
// @Security BearerAuth
// @Router /daily-rates [get]
func (h *dailyRateHandler) listDailyRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, err := parseDateParam(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'from' date, expected YYYY-MM-DD"})
		return
	}
	to, err := parseDateParam(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid 'to' date, expected YYYY-MM-DD"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))

	rates, err := h.fxRateService.ListRates(c.Request.Context(), from, to, limit)
	if err != nil {
		logger.Error("Failed to list daily rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list daily rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListDailyRateResponse(rates))
}
