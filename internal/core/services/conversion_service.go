package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
)

var decimalOne = decimal.NewFromInt(1)

// ConversionService converts amounts between currencies via their canonical
// base legs.
type ConversionService struct {
	rateRepo  ports.RateRepository
	snapshots ports.SnapshotStore
}

// NewConversionService creates a new ConversionService.
func NewConversionService(rateRepo ports.RateRepository, snapshots ports.SnapshotStore) *ConversionService {
	return &ConversionService{rateRepo: rateRepo, snapshots: snapshots}
}

// Convert converts amount from sourceCode to targetCode. With a nil asOf the
// latest rates are used, preferring the mock snapshot over the historical
// store when the snapshot is fresher. A missing leg surfaces as
// apperrors.ErrNotFound; nearby dates are never substituted.
func (s *ConversionService) Convert(ctx context.Context, sourceCode, targetCode string, amount decimal.Decimal, asOf *time.Time) (decimal.Decimal, error) {
	sourceCode = strings.ToUpper(sourceCode)
	targetCode = strings.ToUpper(targetCode)
	if len(sourceCode) != 3 || len(targetCode) != 3 {
		return decimal.Zero, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	if sourceCode == targetCode {
		return amount, nil
	}

	var snap *models.LatestSnapshot
	if asOf == nil {
		// Snapshot load failures are tolerated; the historical store remains
		// the fallback latest-rate source.
		snap, _ = s.snapshots.Load(ctx)
	}

	sourceLeg, err := s.canonicalLeg(ctx, sourceCode, asOf, snap)
	if err != nil {
		return decimal.Zero, err
	}
	targetLeg, err := s.canonicalLeg(ctx, targetCode, asOf, snap)
	if err != nil {
		return decimal.Zero, err
	}

	return amount.Mul(targetLeg).Div(sourceLeg), nil
}

// canonicalLeg resolves the canonical-base→code rate for the requested date,
// or the freshest known rate when asOf is nil.
func (s *ConversionService) canonicalLeg(ctx context.Context, code string, asOf *time.Time, snap *models.LatestSnapshot) (decimal.Decimal, error) {
	if code == models.CanonicalBaseCurrency {
		return decimalOne, nil
	}

	if asOf != nil {
		rec, err := s.rateRepo.GetRate(ctx, *asOf, models.CanonicalBaseCurrency, code)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to resolve %s leg: %w", code, err)
		}
		return rec.Rate, nil
	}

	rec, err := s.rateRepo.GetLatestRate(ctx, models.CanonicalBaseCurrency, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to resolve latest %s leg: %w", code, err)
	}

	if snap != nil {
		if rate, ok := snap.Rates[code]; ok {
			if rec == nil || snap.GeneratedAt.After(rec.ValuationDate) {
				return rate, nil
			}
		}
	}
	if rec != nil {
		return rec.Rate, nil
	}

	return decimal.Zero, fmt.Errorf("%w: no rate available for %s", apperrors.ErrNotFound, code)
}
