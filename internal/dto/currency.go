package dto

import (
	"time"

	"github.com/fxdesk/currency_rates_app/internal/models"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,uppercase,len=3"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string    `json:"currencyCode"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToCurrencyResponse converts a models.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *models.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Symbol:        curr.Symbol,
		Name:          curr.Name,
		CreatedAt:     curr.CreatedAt,
		LastUpdatedAt: curr.LastUpdatedAt,
	}
}

// ToListCurrencyResponse converts a slice of models.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []models.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr)
	}
	return res
}
