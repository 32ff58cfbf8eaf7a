package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
)

// TWRRService computes time-weighted-return series for a hypothetical
// position converted once at the start date and revalued at every later date
// with a stored rate. With no intermediate cash flows the chained sub-period
// returns collapse to value_t / value_start - 1.
type TWRRService struct {
	history ports.RateHistorySvcFacade
}

// NewTWRRService creates a new TWRRService.
func NewTWRRService(history ports.RateHistorySvcFacade) *TWRRService {
	return &TWRRService{history: history}
}

// Series returns one point per date the underlying pair series has. The first
// point's cumulative return is 0 by definition; gaps in the stored rates
// propagate as gaps in the output, never interpolated.
func (s *TWRRService) Series(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal, from, to time.Time) ([]models.TWRRPoint, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	series, err := s.history.PairSeries(ctx, baseCode, targetCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate series for return calculation: %w", err)
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("%w: no rates for %s/%s in range", apperrors.ErrNotFound, baseCode, targetCode)
	}

	openingRate := series[0].Rate
	if openingRate.IsZero() {
		return nil, fmt.Errorf("%w: zero opening rate for %s/%s", apperrors.ErrValidation, baseCode, targetCode)
	}

	points := make([]models.TWRRPoint, len(series))
	points[0] = models.TWRRPoint{
		Date:             series[0].ValuationDate,
		Rate:             openingRate,
		CumulativeReturn: decimal.Zero,
	}
	for i := 1; i < len(series); i++ {
		points[i] = models.TWRRPoint{
			Date:             series[i].ValuationDate,
			Rate:             series[i].Rate,
			CumulativeReturn: series[i].Rate.Div(openingRate).Sub(decimalOne),
		}
	}
	return points, nil
}
