package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/fxdesk/currency_rates_app/internal/providers"
	"github.com/shopspring/decimal"
)

// Job names registered with the scheduler.
const (
	HistoricalFetchJobName = "historical-fetch"
	MockLatestJobName      = "mock-latest"
)

const ingestionActor = "ingestion"

// defaultSeedRates bootstraps the mock snapshot when neither a previous
// snapshot nor any historical rate exists yet.
var defaultSeedRates = map[string]string{
	"USD": "1.082573",
	"CHF": "0.939527",
	"GBP": "0.852586",
}

// rateFetcher is the slice of the provider registry ingestion needs.
type rateFetcher interface {
	Fetch(ctx context.Context, date time.Time, symbols []string) (map[string]decimal.Decimal, error)
}

// IngestionService implements the two scheduled jobs: the daily historical
// fetch through the provider fallback chain, and the frequent mock-latest
// snapshot refresh that never calls external providers.
type IngestionService struct {
	rateRepo     ports.RateRepository
	currencyRepo ports.CurrencyRepository
	providerRepo ports.ProviderRepository
	snapshots    ports.SnapshotStore
	logger       *slog.Logger

	perturbBound float64 // e.g. 0.005 for +/-0.5%

	// newFetcher builds a registry from a provider config snapshot; swapped in
	// tests.
	newFetcher func(provs []models.Provider) (rateFetcher, error)
	// jitter returns a perturbation factor in [-perturbBound, perturbBound].
	jitter func() float64
}

// NewIngestionService creates a new IngestionService. providerTimeout bounds
// each adapter's HTTP calls; perturbBound is the mock job's maximum relative
// rate drift per refresh.
func NewIngestionService(
	rateRepo ports.RateRepository,
	currencyRepo ports.CurrencyRepository,
	providerRepo ports.ProviderRepository,
	snapshots ports.SnapshotStore,
	logger *slog.Logger,
	providerTimeout time.Duration,
	perturbBound float64,
) *IngestionService {
	s := &IngestionService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		providerRepo: providerRepo,
		snapshots:    snapshots,
		logger:       logger,
		perturbBound: perturbBound,
	}
	s.newFetcher = func(provs []models.Provider) (rateFetcher, error) {
		return providers.NewRegistry(provs, models.CanonicalBaseCurrency, providerTimeout, logger)
	}
	s.jitter = func() float64 {
		return (rand.Float64()*2 - 1) * s.perturbBound
	}
	return s
}

// RunHistoricalFetch fetches yesterday's canonical-base rates through the
// provider chain and upserts them into the historical store. A run that
// exhausts every provider fails as a whole and is retried only on the next
// scheduled trigger, leaving a visible gap for that date.
func (s *IngestionService) RunHistoricalFetch(ctx context.Context, now time.Time) error {
	target := day(now.AddDate(0, 0, -1))

	symbols, err := s.quoteSymbols(ctx)
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		s.logger.Warn("No quote currencies configured, nothing to fetch")
		return nil
	}

	provs, err := s.providerRepo.ListEnabledProviders(ctx)
	if err != nil {
		return fmt.Errorf("failed to load provider configuration: %w", err)
	}
	fetcher, err := s.newFetcher(provs)
	if err != nil {
		return fmt.Errorf("failed to build provider registry: %w", err)
	}

	rates, err := fetcher.Fetch(ctx, target, symbols)
	if err != nil {
		return fmt.Errorf("historical fetch for %s failed: %w", target.Format("2006-01-02"), err)
	}

	records := make([]models.RateRecord, 0, len(rates))
	for code, rate := range rates {
		records = append(records, models.RateRecord{
			BaseCode:      models.CanonicalBaseCurrency,
			QuoteCode:     code,
			ValuationDate: target,
			Rate:          rate,
			AuditFields: models.AuditFields{
				CreatedAt:     now,
				CreatedBy:     ingestionActor,
				LastUpdatedAt: now,
				LastUpdatedBy: ingestionActor,
			},
		})
	}
	if err := s.rateRepo.SaveRates(ctx, records); err != nil {
		return fmt.Errorf("failed to store fetched rates: %w", err)
	}

	s.logger.Info("Historical rates updated",
		slog.String("date", target.Format("2006-01-02")),
		slog.Int("count", len(records)),
	)
	return nil
}

// RunMockLatest rewrites the latest-rates snapshot from the previous snapshot
// (or the newest historical rates, or built-in defaults), each rate perturbed
// by a small bounded random factor. The historical store is never written.
func (s *IngestionService) RunMockLatest(ctx context.Context, now time.Time) error {
	previous, err := s.latestKnownRates(ctx)
	if err != nil {
		return err
	}

	perturbed := make(map[string]decimal.Decimal, len(previous))
	for code, rate := range previous {
		factor := decimal.NewFromFloat(1 + s.jitter())
		perturbed[code] = rate.Mul(factor).Round(ratePrecision)
	}

	snapshot := models.LatestSnapshot{
		BaseCode:    models.CanonicalBaseCurrency,
		GeneratedAt: now,
		Rates:       perturbed,
	}
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to write latest snapshot: %w", err)
	}

	s.logger.Info("Mock latest rates updated", slog.Int("count", len(perturbed)))
	return nil
}

// latestKnownRates resolves the rate set the mock job perturbs: previous
// snapshot first, then the newest historical rate per currency, then the
// built-in defaults.
func (s *IngestionService) latestKnownRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	snap, err := s.snapshots.Load(ctx)
	if err != nil {
		s.logger.Warn("Could not read previous snapshot, rebuilding from store", slog.String("error", err.Error()))
	}
	if snap != nil && len(snap.Rates) > 0 {
		return snap.Rates, nil
	}

	symbols, err := s.quoteSymbols(ctx)
	if err != nil {
		return nil, err
	}
	rates := make(map[string]decimal.Decimal, len(symbols))
	for _, code := range symbols {
		rec, err := s.rateRepo.GetLatestRate(ctx, models.CanonicalBaseCurrency, code)
		if err != nil {
			continue
		}
		rates[code] = rec.Rate
	}
	if len(rates) > 0 {
		return rates, nil
	}

	rates = make(map[string]decimal.Decimal, len(defaultSeedRates))
	for code, raw := range defaultSeedRates {
		rates[code] = decimal.RequireFromString(raw)
	}
	return rates, nil
}

// quoteSymbols lists every registered currency except the canonical base.
func (s *IngestionService) quoteSymbols(ctx context.Context) ([]string, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	symbols := make([]string, 0, len(currencies))
	for _, c := range currencies {
		if c.CurrencyCode == models.CanonicalBaseCurrency {
			continue
		}
		symbols = append(symbols, c.CurrencyCode)
	}
	return symbols, nil
}

// day maps a timestamp to midnight UTC of its calendar date, the keying used
// by the rate store.
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
