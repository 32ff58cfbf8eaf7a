package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
)

// ratePrecision is the scale rates are stored and reported at.
const ratePrecision = 6

// RateHistoryService serves stored rate series, re-basing them onto a
// requested source currency when it is not the canonical base.
type RateHistoryService struct {
	rateRepo ports.RateRepository
}

// NewRateHistoryService creates a new RateHistoryService.
func NewRateHistoryService(rateRepo ports.RateRepository) *RateHistoryService {
	return &RateHistoryService{rateRepo: rateRepo}
}

// RatesForPeriod returns one entry per date that has stored rates, each
// carrying every available quote expressed against sourceCode. Dates missing
// the sourceCode leg are skipped: a gap stays a gap.
func (s *RateHistoryService) RatesForPeriod(ctx context.Context, sourceCode string, from, to time.Time) ([]models.DatedRates, error) {
	sourceCode = strings.ToUpper(sourceCode)
	if len(sourceCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	rows, err := s.rateRepo.GetRatesForPeriod(ctx, models.CanonicalBaseCurrency, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load rates for period: %w", err)
	}

	grouped := groupByDate(rows)
	if sourceCode == models.CanonicalBaseCurrency {
		return grouped, nil
	}

	rebased := make([]models.DatedRates, 0, len(grouped))
	for _, day := range grouped {
		baseLeg, ok := day.Rates[sourceCode]
		if !ok || baseLeg.IsZero() {
			continue
		}
		rates := make(map[string]decimal.Decimal, len(day.Rates))
		for code, rate := range day.Rates {
			if code == sourceCode {
				continue
			}
			rates[code] = rate.Div(baseLeg).Round(ratePrecision)
		}
		rates[models.CanonicalBaseCurrency] = decimalOne.Div(baseLeg).Round(ratePrecision)
		rebased = append(rebased, models.DatedRates{Date: day.Date, Rates: rates})
	}
	return rebased, nil
}

// PairSeries returns the ascending rate series of one currency pair,
// triangulating through the canonical base when neither side is canonical.
// Only dates where every required leg exists appear in the result.
func (s *RateHistoryService) PairSeries(ctx context.Context, baseCode, quoteCode string, from, to time.Time) ([]models.RateRecord, error) {
	baseCode = strings.ToUpper(baseCode)
	quoteCode = strings.ToUpper(quoteCode)
	if len(baseCode) != 3 || len(quoteCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	if baseCode == quoteCode {
		return nil, fmt.Errorf("%w: base and quote currencies cannot be the same", apperrors.ErrValidation)
	}

	if baseCode == models.CanonicalBaseCurrency {
		series, err := s.rateRepo.GetSeries(ctx, baseCode, quoteCode, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load pair series: %w", err)
		}
		return series, nil
	}

	if quoteCode == models.CanonicalBaseCurrency {
		series, err := s.rateRepo.GetSeries(ctx, models.CanonicalBaseCurrency, baseCode, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to load pair series: %w", err)
		}
		inverted := make([]models.RateRecord, 0, len(series))
		for _, rec := range series {
			if rec.Rate.IsZero() {
				continue
			}
			inverted = append(inverted, models.RateRecord{
				BaseCode:      baseCode,
				QuoteCode:     quoteCode,
				ValuationDate: rec.ValuationDate,
				Rate:          decimalOne.Div(rec.Rate).Round(ratePrecision),
			})
		}
		return inverted, nil
	}

	baseSeries, err := s.rateRepo.GetSeries(ctx, models.CanonicalBaseCurrency, baseCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load base leg series: %w", err)
	}
	quoteSeries, err := s.rateRepo.GetSeries(ctx, models.CanonicalBaseCurrency, quoteCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load quote leg series: %w", err)
	}

	baseByDate := make(map[string]decimal.Decimal, len(baseSeries))
	for _, rec := range baseSeries {
		baseByDate[rec.ValuationDate.Format("2006-01-02")] = rec.Rate
	}

	joined := make([]models.RateRecord, 0, len(quoteSeries))
	for _, rec := range quoteSeries {
		baseLeg, ok := baseByDate[rec.ValuationDate.Format("2006-01-02")]
		if !ok || baseLeg.IsZero() {
			continue
		}
		joined = append(joined, models.RateRecord{
			BaseCode:      baseCode,
			QuoteCode:     quoteCode,
			ValuationDate: rec.ValuationDate,
			Rate:          rec.Rate.Div(baseLeg).Round(ratePrecision),
		})
	}
	return joined, nil
}

// groupByDate buckets ascending rate rows into per-date maps, preserving the
// date order of the input.
func groupByDate(rows []models.RateRecord) []models.DatedRates {
	var out []models.DatedRates
	index := make(map[string]int)
	for _, rec := range rows {
		key := rec.ValuationDate.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, models.DatedRates{
				Date:  rec.ValuationDate,
				Rates: make(map[string]decimal.Decimal),
			})
		}
		out[i].Rates[rec.QuoteCode] = rec.Rate
	}
	return out
}
