package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/dto"
	"github.com/shopspring/decimal"
)

// HTTPJSONAdapter fetches rates from a remote JSON API. The endpoint path,
// query parameter names and response key are all configuration so the core
// never depends on one provider's wire format.
type HTTPJSONAdapter struct {
	name      string
	address   string
	cfg       AdapterConfig
	forceBase string
	client    *http.Client
}

// NewHTTPJSONAdapter creates an adapter with its own bounded HTTP client.
func NewHTTPJSONAdapter(name, address string, cfg AdapterConfig, forceBase string, timeout time.Duration) *HTTPJSONAdapter {
	return &HTTPJSONAdapter{
		name:      name,
		address:   address,
		cfg:       cfg,
		forceBase: forceBase,
		client:    &http.Client{Timeout: timeout},
	}
}

func (a *HTTPJSONAdapter) Name() string { return a.name }

// Fetch retrieves the historical quotes for one valuation date. When the
// provider is pinned to a base currency it is queried in that base; the
// caller re-bases the result.
func (a *HTTPJSONAdapter) Fetch(ctx context.Context, date time.Time, baseCode string, symbols []string) (*Quotes, error) {
	base := baseCode
	if a.forceBase != "" {
		base = a.forceBase
	}

	ep := a.cfg.Endpoints.Historical
	path := strings.Replace(ep.Request.Path, "$date", date.Format(dto.DateLayout), 1)

	params := url.Values{}
	if a.cfg.Auth.AccessKey != "" {
		params.Set("access_key", a.cfg.Auth.AccessKey)
	}
	if arg, ok := ep.Request.Args["source_currency_code"]; ok {
		params.Set(arg, base)
	}
	if arg, ok := ep.Request.Args["exchanged_currency_code"]; ok {
		params.Set(arg, strings.Join(symbols, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.address+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: provider %s: %v", apperrors.ErrProviderUnavailable, a.name, err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: provider %s: %v", apperrors.ErrProviderUnavailable, a.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider %s returned status %d", apperrors.ErrProviderUnavailable, a.name, resp.StatusCode)
	}

	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: provider %s: malformed response: %v", apperrors.ErrProviderUnavailable, a.name, err)
	}

	raw, ok := payload[ep.Response.Path]
	if !ok {
		return nil, fmt.Errorf("%w: provider %s returned no %q field", apperrors.ErrProviderDataMissing, a.name, ep.Response.Path)
	}

	var rawRates map[string]json.Number
	if err := json.Unmarshal(raw, &rawRates); err != nil {
		return nil, fmt.Errorf("%w: provider %s: malformed rates: %v", apperrors.ErrProviderUnavailable, a.name, err)
	}
	if len(rawRates) == 0 {
		return nil, fmt.Errorf("%w: provider %s returned no rates for %s", apperrors.ErrProviderDataMissing, a.name, date.Format(dto.DateLayout))
	}

	rates := make(map[string]decimal.Decimal, len(rawRates))
	for code, num := range rawRates {
		d, err := decimal.NewFromString(num.String())
		if err != nil {
			return nil, fmt.Errorf("%w: provider %s: bad rate for %s: %v", apperrors.ErrProviderUnavailable, a.name, code, err)
		}
		rates[strings.ToUpper(code)] = d
	}

	return &Quotes{BaseCode: base, Rates: rates}, nil
}
