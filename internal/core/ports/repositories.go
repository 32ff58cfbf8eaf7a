package ports

import (
	"context"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/models"
)

// Note: Context is included on every operation for cancellation/timeouts.

// RateRepository defines the persistence operations for historical rates.
// Upserts are idempotent and last-write-wins per (date, base, quote) key.
type RateRepository interface {
	// SaveRates upserts a batch of rate records atomically per key.
	SaveRates(ctx context.Context, rates []models.RateRecord) error
	// GetRate retrieves the rate for an exact valuation date, or apperrors.ErrNotFound.
	GetRate(ctx context.Context, date time.Time, baseCode, quoteCode string) (*models.RateRecord, error)
	// GetLatestRate retrieves the most recent stored rate for the pair, or apperrors.ErrNotFound.
	GetLatestRate(ctx context.Context, baseCode, quoteCode string) (*models.RateRecord, error)
	// GetSeries retrieves the ascending rate series over an inclusive date range.
	// Dates with no record are simply absent; gaps are the caller's to see.
	GetSeries(ctx context.Context, baseCode, quoteCode string, from, to time.Time) ([]models.RateRecord, error)
	// GetRatesForPeriod retrieves every stored quote for the base over an
	// inclusive range, across all quote currencies, ordered by date.
	GetRatesForPeriod(ctx context.Context, baseCode string, from, to time.Time) ([]models.RateRecord, error)
}

// CurrencyRepository defines persistence operations for Currencies.
type CurrencyRepository interface {
	SaveCurrency(ctx context.Context, currency models.Currency) error // Primarily for initial setup
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error)
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
}

// ProviderRepository exposes the admin-configured rate providers. The core
// only ever reads them; configuration changes take effect on the next job run.
type ProviderRepository interface {
	// ListEnabledProviders returns enabled providers in ascending priority order.
	ListEnabledProviders(ctx context.Context) ([]models.Provider, error)
}

// SnapshotStore persists the frequently regenerated latest-rates snapshot,
// separate from the historical rate store.
type SnapshotStore interface {
	Load(ctx context.Context) (*models.LatestSnapshot, error)
	Save(ctx context.Context, snapshot models.LatestSnapshot) error
}
