package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCurrencyRepository implements ports.CurrencyRepository using pgxpool.
type PgxCurrencyRepository struct {
	pool *pgxpool.Pool
}

// NewPgxCurrencyRepository creates a new repository for currency data.
func NewPgxCurrencyRepository(pool *pgxpool.Pool) ports.CurrencyRepository {
	return &PgxCurrencyRepository{pool: pool}
}

// SaveCurrency inserts or updates a currency (primarily for initial setup).
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency models.Currency) error {
	query := `
		INSERT INTO currencies (currency_code, symbol, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (currency_code) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			name = EXCLUDED.name,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err := r.pool.Exec(ctx, query,
		strings.ToUpper(currency.CurrencyCode), currency.Symbol, currency.Name,
		currency.CreatedAt, currency.CreatedBy, currency.LastUpdatedAt, currency.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save currency %s: %w", currency.CurrencyCode, err)
	}
	return nil
}

// FindCurrencyByCode retrieves a specific currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*models.Currency, error) {
	query := `
		SELECT currency_code, symbol, name, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		WHERE currency_code = $1;
	`
	var currency models.Currency
	err := r.pool.QueryRow(ctx, query, strings.ToUpper(currencyCode)).Scan(
		&currency.CurrencyCode, &currency.Symbol, &currency.Name,
		&currency.CreatedAt, &currency.CreatedBy, &currency.LastUpdatedAt, &currency.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: currency %q", apperrors.ErrNotFound, currencyCode)
		}
		return nil, fmt.Errorf("failed to find currency by code: %w", err)
	}
	return &currency, nil
}

// ListCurrencies retrieves all available currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	query := `
		SELECT currency_code, symbol, name, created_at, created_by, last_updated_at, last_updated_by
		FROM currencies
		ORDER BY currency_code;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	defer rows.Close()

	var currencies []models.Currency
	for rows.Next() {
		var currency models.Currency
		err := rows.Scan(
			&currency.CurrencyCode, &currency.Symbol, &currency.Name,
			&currency.CreatedAt, &currency.CreatedBy, &currency.LastUpdatedAt, &currency.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan currency: %w", err)
		}
		currencies = append(currencies, currency)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating currencies: %w", err)
	}
	return currencies, nil
}
