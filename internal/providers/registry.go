package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
)

// Registry holds an immutable, priority-ordered set of adapters built from a
// configuration snapshot. Build a fresh registry per job run so mid-run
// configuration changes never race.
type Registry struct {
	adapters      []Adapter
	canonicalBase string
	logger        *slog.Logger
}

// NewRegistry builds the adapter chain from enabled provider configs. A
// provider with an unknown resource type fails the build rather than being
// skipped silently.
func NewRegistry(provs []models.Provider, canonicalBase string, timeout time.Duration, logger *slog.Logger) (*Registry, error) {
	sorted := make([]models.Provider, len(provs))
	copy(sorted, provs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	adapters := make([]Adapter, 0, len(sorted))
	for _, p := range sorted {
		a, err := NewAdapter(p, timeout)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, a)
	}

	return &Registry{adapters: adapters, canonicalBase: canonicalBase, logger: logger}, nil
}

// Fetch tries each adapter in priority order and returns the first usable,
// normalized quote set. Provider failures and unusable payloads advance the
// chain; once every adapter has failed the collected errors surface under
// apperrors.ErrAllProvidersExhausted. Partial results are never merged across
// providers.
func (r *Registry) Fetch(ctx context.Context, date time.Time, symbols []string) (map[string]decimal.Decimal, error) {
	if len(r.adapters) == 0 {
		return nil, fmt.Errorf("%w: no providers configured", apperrors.ErrAllProvidersExhausted)
	}

	var failures []error
	for _, adapter := range r.adapters {
		quotes, err := adapter.Fetch(ctx, date, r.canonicalBase, symbols)
		if err != nil {
			r.logger.Warn("Provider failed, trying next",
				slog.String("provider", adapter.Name()),
				slog.String("error", err.Error()),
			)
			failures = append(failures, err)
			continue
		}

		rates, err := Normalize(*quotes, r.canonicalBase)
		if err != nil {
			// Malformed payloads count as provider failures for fallback purposes.
			r.logger.Warn("Provider payload could not be normalized, trying next",
				slog.String("provider", adapter.Name()),
				slog.String("error", err.Error()),
			)
			failures = append(failures, err)
			continue
		}

		return rates, nil
	}

	return nil, fmt.Errorf("%w: %w", apperrors.ErrAllProvidersExhausted, errors.Join(failures...))
}
