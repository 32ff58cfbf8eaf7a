package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/dto"
	"github.com/fxdesk/currency_rates_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// twrrHandler handles HTTP requests for time-weighted-return series.
type twrrHandler struct {
	twrrService ports.TWRRSvcFacade
}

func newTWRRHandler(ts ports.TWRRSvcFacade) *twrrHandler {
	return &twrrHandler{twrrService: ts}
}

// registerTWRRRoutes registers the time-weighted-return endpoint.
func registerTWRRRoutes(rg *gin.RouterGroup, ts ports.TWRRSvcFacade) {
	h := newTWRRHandler(ts)
	rg.GET("/twrr", h.series)
}

// series returns the cumulative return of holding target currency bought with
// amount of source currency at the start of the range.
func (h *twrrHandler) series(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.TWRRRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	from, to, ok := parseRange(c, req.DateFrom, req.DateTo)
	if !ok {
		return
	}

	points, err := h.twrrService.Series(c.Request.Context(), req.SourceCurrency, req.ExchangedCurrency, req.Amount, from, to)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "No rates stored for the requested period"})
		default:
			logger.Error("Failed to compute return series", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute return series"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTWRRResponse(req.SourceCurrency, req.ExchangedCurrency, req.Amount, points))
}
