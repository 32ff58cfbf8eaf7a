package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/dto"
	"github.com/shopspring/decimal"
)

// fileRateDoc is one dated rate block inside a file provider's document.
type fileRateDoc struct {
	Date  string                 `json:"date"`
	Base  string                 `json:"base"`
	Rates map[string]json.Number `json:"rates"`
}

// FileJSONAdapter serves rates from a local JSON document. It backs the mock
// provider used when no live source is configured.
type FileJSONAdapter struct {
	name      string
	address   string
	cfg       AdapterConfig
	forceBase string
}

// NewFileJSONAdapter creates a file-backed adapter rooted at address.
func NewFileJSONAdapter(name, address string, cfg AdapterConfig, forceBase string) *FileJSONAdapter {
	return &FileJSONAdapter{name: name, address: address, cfg: cfg, forceBase: forceBase}
}

func (a *FileJSONAdapter) Name() string { return a.name }

// Fetch looks up the block matching the valuation date and base currency.
// The symbols argument is ignored: a file document carries whatever currencies
// it carries, and normalization filters from there.
func (a *FileJSONAdapter) Fetch(ctx context.Context, date time.Time, baseCode string, _ []string) (*Quotes, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: provider %s: %v", apperrors.ErrProviderUnavailable, a.name, err)
	}

	base := baseCode
	if a.forceBase != "" {
		base = a.forceBase
	}

	path := filepath.Join(a.address, a.cfg.Endpoints.Historical.Request.Path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: provider %s: %v", apperrors.ErrProviderUnavailable, a.name, err)
	}

	var docs []fileRateDoc
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("%w: provider %s: malformed document: %v", apperrors.ErrProviderUnavailable, a.name, err)
	}

	want := date.Format(dto.DateLayout)
	for _, doc := range docs {
		if doc.Date != want || !strings.EqualFold(doc.Base, base) {
			continue
		}
		rates := make(map[string]decimal.Decimal, len(doc.Rates))
		for code, num := range doc.Rates {
			d, err := decimal.NewFromString(num.String())
			if err != nil {
				return nil, fmt.Errorf("%w: provider %s: bad rate for %s: %v", apperrors.ErrProviderUnavailable, a.name, code, err)
			}
			rates[strings.ToUpper(code)] = d
		}
		if len(rates) == 0 {
			break
		}
		return &Quotes{BaseCode: base, Rates: rates}, nil
	}

	return nil, fmt.Errorf("%w: provider %s has no rates for %s/%s", apperrors.ErrProviderDataMissing, a.name, base, want)
}
