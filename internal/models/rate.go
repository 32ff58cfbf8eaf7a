package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateRecord stores one exchange rate quote for a specific valuation date.
// A record is unique per (valuation date, base, quote) triple; the base is
// always the canonical currency for rows written by ingestion.
type RateRecord struct {
	BaseCode      string          `json:"baseCode"`  // e.g., "EUR"
	QuoteCode     string          `json:"quoteCode"` // e.g., "USD"
	ValuationDate time.Time       `json:"valuationDate"`
	Rate          decimal.Decimal `json:"rate"` // always > 0
	AuditFields
}
