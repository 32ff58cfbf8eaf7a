package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/dto"
	"github.com/fxdesk/currency_rates_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles HTTP requests for currency conversion.
type conversionHandler struct {
	conversionService ports.ConversionSvcFacade
}

func newConversionHandler(cs ports.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{conversionService: cs}
}

// registerConversionRoutes registers the conversion endpoint.
func registerConversionRoutes(rg *gin.RouterGroup, cs ports.ConversionSvcFacade) {
	h := newConversionHandler(cs)
	rg.POST("/convert", h.convert)
}

// convert converts an amount between two currencies at the latest rate, or at
// a specific date when asOfDate is given. A date/pair with no stored rate is
// a 404, never an approximation.
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var asOf *time.Time
	if req.AsOfDate != "" {
		parsed, err := time.Parse(dto.DateLayout, req.AsOfDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOfDate must be formatted as YYYY-MM-DD"})
			return
		}
		asOf = &parsed
	}

	result, err := h.conversionService.Convert(c.Request.Context(), req.SourceCurrency, req.ExchangedCurrency, req.Amount, asOf)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No rate available for the requested date"})
		default:
			logger.Error("Failed to convert amount", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert amount"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ConvertResponse{
		SourceCurrency:    req.SourceCurrency,
		ExchangedCurrency: req.ExchangedCurrency,
		Amount:            req.Amount,
		Result:            result,
	})
}
