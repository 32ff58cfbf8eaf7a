package pgsql

import (
	"context"
	"fmt"

	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxProviderRepository implements ports.ProviderRepository using pgxpool.
// The core only reads provider configuration; rows are managed by the admin
// surface outside this service.
type PgxProviderRepository struct {
	pool *pgxpool.Pool
}

// NewPgxProviderRepository creates a new repository for provider configuration.
func NewPgxProviderRepository(pool *pgxpool.Pool) ports.ProviderRepository {
	return &PgxProviderRepository{pool: pool}
}

// ListEnabledProviders returns enabled providers in ascending priority order.
func (r *PgxProviderRepository) ListEnabledProviders(ctx context.Context) ([]models.Provider, error) {
	query := `
		SELECT name, priority, enabled, address, resource_type, config, COALESCE(force_base_currency, ''),
			created_at, created_by, last_updated_at, last_updated_by
		FROM providers
		WHERE enabled
		ORDER BY priority ASC;
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer rows.Close()

	var provs []models.Provider
	for rows.Next() {
		var p models.Provider
		err := rows.Scan(
			&p.Name, &p.Priority, &p.Enabled, &p.Address, &p.ResourceType, &p.Config, &p.ForceBaseCurrency,
			&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		provs = append(provs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating providers: %w", err)
	}
	return provs, nil
}
