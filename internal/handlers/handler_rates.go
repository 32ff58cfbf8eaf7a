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
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// rateHandler handles HTTP requests for historical rate series and the
// comparison chart.
type rateHandler struct {
	historyService ports.RateHistorySvcFacade
	chartService   ports.ChartSvcFacade
}

func newRateHandler(hs ports.RateHistorySvcFacade, cs ports.ChartSvcFacade) *rateHandler {
	return &rateHandler{historyService: hs, chartService: cs}
}

// registerRateRoutes registers the rate history and chart endpoints.
func registerRateRoutes(rg *gin.RouterGroup, hs ports.RateHistorySvcFacade, cs ports.ChartSvcFacade) {
	h := newRateHandler(hs, cs)
	rg.GET("/rates", h.listRates)
	rg.GET("/rates/chart", h.addChartSeries)
	rg.DELETE("/rates/chart", h.resetChart)
}

// parseRange parses an inclusive from/to date pair shared by the range
// endpoints. The second return is false when a 400 was already written.
func parseRange(c *gin.Context, fromStr, toStr string) (time.Time, time.Time, bool) {
	from, err := time.Parse(dto.DateLayout, fromStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from must be formatted as YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dto.DateLayout, toStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must be formatted as YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to must not precede from"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// listRates returns every stored rate in the range rebased onto the requested
// source currency, grouped per date for charting.
func (h *rateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RateListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, to, ok := parseRange(c, req.DateFrom, req.DateTo)
	if !ok {
		return
	}

	grouped, err := h.historyService.RatesForPeriod(c.Request.Context(), req.SourceCurrency, from, to)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No rates stored for the requested period"})
		default:
			logger.Error("Failed to list rates for period", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rates"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRateListResponse(req.SourceCurrency, grouped))
}

// addChartSeries fetches one EUR-quoted series and folds it into the shared
// chart assembly, returning the accepted series plus the assembly so far.
func (h *rateHandler) addChartSeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ChartRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, to, ok := parseRange(c, req.DateFrom, req.DateTo)
	if !ok {
		return
	}

	series, err := h.historyService.PairSeries(c.Request.Context(), models.CanonicalBaseCurrency, req.Currency, from, to)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No rates stored for the requested currency"})
		default:
			logger.Error("Failed to load chart series", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chart series"})
		}
		return
	}
	if len(series) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No rates stored for the requested currency"})
		return
	}

	labels := make([]string, len(series))
	values := make([]decimal.Decimal, len(series))
	for i, rec := range series {
		labels[i] = rec.ValuationDate.Format(dto.DateLayout)
		values[i] = rec.Rate
	}

	accepted := h.chartService.AddSeries(req.Currency, labels, values)
	c.JSON(http.StatusOK, dto.ChartResponse{
		Series:   accepted,
		Assembly: h.chartService.Snapshot(),
	})
}

// resetChart discards the accumulated chart assembly.
func (h *rateHandler) resetChart(c *gin.Context) {
	h.chartService.Reset()
	c.Status(http.StatusNoContent)
}
