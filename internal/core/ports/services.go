package ports

import (
	"context"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/dto"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
)

// ConversionSvcFacade converts amounts between currencies.
type ConversionSvcFacade interface {
	// Convert converts amount from source into target. A nil asOf means the
	// latest available rate, preferring the mock snapshot when fresher.
	Convert(ctx context.Context, sourceCode, targetCode string, amount decimal.Decimal, asOf *time.Time) (decimal.Decimal, error)
}

// RateHistorySvcFacade serves historical rate series reshaped for charting.
type RateHistorySvcFacade interface {
	// RatesForPeriod returns, per available date, the rates of every stored
	// currency expressed against sourceCode.
	RatesForPeriod(ctx context.Context, sourceCode string, from, to time.Time) ([]models.DatedRates, error)
	// PairSeries returns the rate series for one currency pair over a range.
	PairSeries(ctx context.Context, baseCode, quoteCode string, from, to time.Time) ([]models.RateRecord, error)
}

// TWRRSvcFacade computes time-weighted-return series.
type TWRRSvcFacade interface {
	Series(ctx context.Context, baseCode, targetCode string, amount decimal.Decimal, from, to time.Time) ([]models.TWRRPoint, error)
}

// ChartSvcFacade accumulates named chart series onto a shared date axis.
type ChartSvcFacade interface {
	// AddSeries adds a labeled series; a duplicate label is a silent no-op and
	// the first-added data wins.
	AddSeries(label string, dateLabels []string, values []decimal.Decimal) models.ChartSeries
	// Snapshot returns all accepted series in insertion order.
	Snapshot() []models.ChartSeries
	// Reset discards the current assembly.
	Reset()
}

// CurrencyReaderSvc defines read operations for currency data.
type CurrencyReaderSvc interface {
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error)
	ListCurrencies(ctx context.Context) ([]models.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data.
type CurrencyWriterSvc interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*models.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// IngestionSvcFacade exposes the two scheduled ingestion runs. Jobs are plain
// functions of the trigger time so a timer, a cron trigger, or a test can
// invoke them directly.
type IngestionSvcFacade interface {
	// RunHistoricalFetch fetches yesterday's rates through the provider chain
	// and upserts them into the historical store.
	RunHistoricalFetch(ctx context.Context, now time.Time) error
	// RunMockLatest perturbs the most recent known rates and rewrites the
	// latest snapshot. It never touches the historical store.
	RunMockLatest(ctx context.Context, now time.Time) error
}
