package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/dto"
	"github.com/fxdesk/currency_rates_app/internal/models"
)

// CurrencyService provides business logic for the currency registry.
type CurrencyService struct {
	currencyRepo ports.CurrencyRepository
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo ports.CurrencyRepository) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo}
}

// CreateCurrency registers a new currency.
func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*models.Currency, error) {
	// Basic format validation is handled by DTO binding tags.
	_, err := s.currencyRepo.FindCurrencyByCode(ctx, req.CurrencyCode)
	if err == nil {
		return nil, fmt.Errorf("%w: currency %q already exists", apperrors.ErrDuplicate, req.CurrencyCode)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check currency %q: %w", req.CurrencyCode, err)
	}

	now := time.Now()
	currency := models.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "admin",
			LastUpdatedAt: now,
			LastUpdatedBy: "admin",
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}
	return &currency, nil
}

// GetCurrencyByCode retrieves a specific currency by its code.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error) {
	currencyCode = strings.ToUpper(currencyCode)
	if len(currencyCode) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}

	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

// ListCurrencies retrieves all available currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []models.Currency{}, nil
	}
	return currencies, nil
}
