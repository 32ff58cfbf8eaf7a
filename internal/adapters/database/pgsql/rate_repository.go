package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxRateRepository implements ports.RateRepository using pgxpool.
type PgxRateRepository struct {
	pool *pgxpool.Pool
}

// NewPgxRateRepository creates a new repository for historical rate data.
func NewPgxRateRepository(pool *pgxpool.Pool) ports.RateRepository {
	return &PgxRateRepository{pool: pool}
}

const rateColumns = `base_code, quote_code, valuation_date, rate, created_at, created_by, last_updated_at, last_updated_by`

// SaveRates upserts a batch of rate records. The ON CONFLICT clause makes the
// write idempotent and last-write-wins per (date, base, quote) key, which is
// what provider corrections need; the single-row conflict target keeps each
// upsert atomic under concurrent writers.
func (r *PgxRateRepository) SaveRates(ctx context.Context, rates []models.RateRecord) error {
	if len(rates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, rec := range rates {
		if rec.Rate.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: rate for %s/%s must be positive", apperrors.ErrValidation, rec.BaseCode, rec.QuoteCode)
		}
		batch.Queue(`
			INSERT INTO exchange_rates (`+rateColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (base_code, quote_code, valuation_date) DO UPDATE SET
				rate = EXCLUDED.rate,
				last_updated_at = EXCLUDED.last_updated_at,
				last_updated_by = EXCLUDED.last_updated_by`,
			strings.ToUpper(rec.BaseCode), strings.ToUpper(rec.QuoteCode), rec.ValuationDate, rec.Rate,
			rec.CreatedAt, rec.CreatedBy, rec.LastUpdatedAt, rec.LastUpdatedBy,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range rates {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to upsert exchange rate: %w", err)
		}
	}
	return nil
}

// GetRate retrieves the rate for an exact valuation date.
func (r *PgxRateRepository) GetRate(ctx context.Context, date time.Time, baseCode, quoteCode string) (*models.RateRecord, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE base_code = $1 AND quote_code = $2 AND valuation_date = $3;
	`
	rec, err := r.scanOne(r.pool.QueryRow(ctx, query, strings.ToUpper(baseCode), strings.ToUpper(quoteCode), date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no rate for %s/%s on %s",
				apperrors.ErrNotFound, baseCode, quoteCode, date.Format("2006-01-02"))
		}
		return nil, fmt.Errorf("failed to get rate: %w", err)
	}
	return rec, nil
}

// GetLatestRate retrieves the most recent rate at or before now.
func (r *PgxRateRepository) GetLatestRate(ctx context.Context, baseCode, quoteCode string) (*models.RateRecord, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE base_code = $1 AND quote_code = $2 AND valuation_date <= now()
		ORDER BY valuation_date DESC
		LIMIT 1;
	`
	rec, err := r.scanOne(r.pool.QueryRow(ctx, query, strings.ToUpper(baseCode), strings.ToUpper(quoteCode)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: no rates stored for %s/%s", apperrors.ErrNotFound, baseCode, quoteCode)
		}
		return nil, fmt.Errorf("failed to get latest rate: %w", err)
	}
	return rec, nil
}

// GetSeries retrieves the ascending series over an inclusive range. Dates
// with no record are simply absent.
func (r *PgxRateRepository) GetSeries(ctx context.Context, baseCode, quoteCode string, from, to time.Time) ([]models.RateRecord, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE base_code = $1 AND quote_code = $2 AND valuation_date BETWEEN $3 AND $4
		ORDER BY valuation_date ASC;
	`
	rows, err := r.pool.Query(ctx, query, strings.ToUpper(baseCode), strings.ToUpper(quoteCode), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate series: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// GetRatesForPeriod retrieves every stored quote for the base over an
// inclusive range, ordered by date then quote currency.
func (r *PgxRateRepository) GetRatesForPeriod(ctx context.Context, baseCode string, from, to time.Time) ([]models.RateRecord, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM exchange_rates
		WHERE base_code = $1 AND valuation_date BETWEEN $2 AND $3
		ORDER BY valuation_date ASC, quote_code ASC;
	`
	rows, err := r.pool.Query(ctx, query, strings.ToUpper(baseCode), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates for period: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *PgxRateRepository) scanOne(row pgx.Row) (*models.RateRecord, error) {
	var rec models.RateRecord
	err := row.Scan(
		&rec.BaseCode, &rec.QuoteCode, &rec.ValuationDate, &rec.Rate,
		&rec.CreatedAt, &rec.CreatedBy, &rec.LastUpdatedAt, &rec.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *PgxRateRepository) scanAll(rows pgx.Rows) ([]models.RateRecord, error) {
	var records []models.RateRecord
	for rows.Next() {
		var rec models.RateRecord
		err := rows.Scan(
			&rec.BaseCode, &rec.QuoteCode, &rec.ValuationDate, &rec.Rate,
			&rec.CreatedAt, &rec.CreatedBy, &rec.LastUpdatedAt, &rec.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan exchange rate: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating exchange rates: %w", err)
	}
	return records, nil
}
