package fixtures

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/core/ports"
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
)

const seedActor = "seed"

// seedDocument is the bulk-loadable deployment fixture: a currency registry
// plus dated rate blocks in the same shape the file provider uses.
type seedDocument struct {
	Currencies []struct {
		Code   string `json:"code"`
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	Rates []struct {
		Date  string                 `json:"date"`
		Base  string                 `json:"base"`
		Rates map[string]json.Number `json:"rates"`
	} `json:"rates"`
}

// LoadSeedFile bulk-loads currencies and initial rate records from a JSON
// file. Loading is idempotent: both writes are keyed upserts.
func LoadSeedFile(ctx context.Context, path string, currencyRepo ports.CurrencyRepository, rateRepo ports.RateRepository) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return loadSeed(ctx, f, currencyRepo, rateRepo)
}

func loadSeed(ctx context.Context, r io.Reader, currencyRepo ports.CurrencyRepository, rateRepo ports.RateRepository) error {
	var doc seedDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("%w: malformed seed document: %v", apperrors.ErrValidation, err)
	}

	now := time.Now()
	audit := models.AuditFields{
		CreatedAt:     now,
		CreatedBy:     seedActor,
		LastUpdatedAt: now,
		LastUpdatedBy: seedActor,
	}

	for _, c := range doc.Currencies {
		currency := models.Currency{
			CurrencyCode: strings.ToUpper(c.Code),
			Symbol:       c.Symbol,
			Name:         c.Name,
			AuditFields:  audit,
		}
		if err := currencyRepo.SaveCurrency(ctx, currency); err != nil {
			return fmt.Errorf("failed to seed currency %s: %w", c.Code, err)
		}
	}

	var records []models.RateRecord
	for _, block := range doc.Rates {
		date, err := time.Parse("2006-01-02", block.Date)
		if err != nil {
			return fmt.Errorf("%w: bad seed date %q: %v", apperrors.ErrValidation, block.Date, err)
		}
		for code, num := range block.Rates {
			rate, err := decimal.NewFromString(num.String())
			if err != nil {
				return fmt.Errorf("%w: bad seed rate for %s on %s: %v", apperrors.ErrValidation, code, block.Date, err)
			}
			records = append(records, models.RateRecord{
				BaseCode:      strings.ToUpper(block.Base),
				QuoteCode:     strings.ToUpper(code),
				ValuationDate: date,
				Rate:          rate,
				AuditFields:   audit,
			})
		}
	}
	if len(records) == 0 {
		return nil
	}
	if err := rateRepo.SaveRates(ctx, records); err != nil {
		return fmt.Errorf("failed to seed rates: %w", err)
	}
	return nil
}
