package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
)

// Quotes is the raw result of one provider fetch: the base currency the
// provider actually quoted against, plus a rate per quote currency.
type Quotes struct {
	BaseCode string
	Rates    map[string]decimal.Decimal
}

// Adapter wraps one external rate source behind a uniform fetch contract.
// Implementations return apperrors.ErrProviderUnavailable for transport or
// auth failures and apperrors.ErrProviderDataMissing when the source
// responded but holds no quotes for the date.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, date time.Time, baseCode string, symbols []string) (*Quotes, error)
}

// EndpointConfig describes how to reach one provider endpoint and where the
// rates live in its response.
type EndpointConfig struct {
	Request struct {
		// Path may contain a $date placeholder substituted per fetch.
		Path string            `json:"path"`
		Args map[string]string `json:"args"`
	} `json:"request"`
	Response struct {
		// Path is the top-level key holding the rate map.
		Path string `json:"path"`
	} `json:"response"`
}

// AdapterConfig is the adapter-specific part of a provider row's config column.
type AdapterConfig struct {
	Auth struct {
		AccessKey string `json:"access_key"`
	} `json:"auth"`
	Endpoints struct {
		Historical EndpointConfig `json:"historical"`
	} `json:"endpoints"`
}

// NewAdapter builds the concrete adapter for a configured provider.
func NewAdapter(p models.Provider, timeout time.Duration) (Adapter, error) {
	var cfg AdapterConfig
	if len(p.Config) > 0 {
		if err := json.Unmarshal(p.Config, &cfg); err != nil {
			return nil, fmt.Errorf("%w: provider %q config: %v", apperrors.ErrValidation, p.Name, err)
		}
	}

	switch p.ResourceType {
	case models.ProviderResourceHTTP:
		return NewHTTPJSONAdapter(p.Name, p.Address, cfg, p.ForceBaseCurrency, timeout), nil
	case models.ProviderResourceJSON:
		return NewFileJSONAdapter(p.Name, p.Address, cfg, p.ForceBaseCurrency), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider resource type %q", apperrors.ErrValidation, p.ResourceType)
	}
}
