package providers_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fileProviderDoc = `[
  {
    "date": "2026-08-30",
    "base": "EUR",
    "rates": {"USD": "1.082573", "GBP": 0.852586}
  },
  {
    "date": "2026-08-31",
    "base": "USD",
    "rates": {"EUR": "0.92", "GBP": "0.78"}
  }
]`

func writeFileProvider(t *testing.T) (string, providers.AdapterConfig) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rates.json"), []byte(fileProviderDoc), 0o644))

	var cfg providers.AdapterConfig
	cfg.Endpoints.Historical.Request.Path = "rates.json"
	return dir, cfg
}

func TestFileJSONAdapter_FetchMatchingDate(t *testing.T) {
	dir, cfg := writeFileProvider(t)
	adapter := providers.NewFileJSONAdapter("mock", dir, cfg, "")

	date := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	quotes, err := adapter.Fetch(context.Background(), date, "EUR", nil)

	require.NoError(t, err)
	assert.Equal(t, "EUR", quotes.BaseCode)
	assert.True(t, dec("1.082573").Equal(quotes.Rates["USD"]))
	assert.True(t, dec("0.852586").Equal(quotes.Rates["GBP"]), "numeric literals decode too")
}

func TestFileJSONAdapter_ForceBaseSelectsBlock(t *testing.T) {
	dir, cfg := writeFileProvider(t)
	adapter := providers.NewFileJSONAdapter("mock", dir, cfg, "USD")

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	quotes, err := adapter.Fetch(context.Background(), date, "EUR", nil)

	require.NoError(t, err)
	assert.Equal(t, "USD", quotes.BaseCode)
	assert.True(t, dec("0.92").Equal(quotes.Rates["EUR"]))
}

func TestFileJSONAdapter_NoBlockForDate(t *testing.T) {
	dir, cfg := writeFileProvider(t)
	adapter := providers.NewFileJSONAdapter("mock", dir, cfg, "")

	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := adapter.Fetch(context.Background(), date, "EUR", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderDataMissing)
}

func TestFileJSONAdapter_MissingFile(t *testing.T) {
	var cfg providers.AdapterConfig
	cfg.Endpoints.Historical.Request.Path = "nope.json"
	adapter := providers.NewFileJSONAdapter("mock", t.TempDir(), cfg, "")

	_, err := adapter.Fetch(context.Background(), time.Now(), "EUR", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestFileJSONAdapter_MalformedDocument(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rates.json"), []byte("{not json"), 0o644))

	var cfg providers.AdapterConfig
	cfg.Endpoints.Historical.Request.Path = "rates.json"
	adapter := providers.NewFileJSONAdapter("mock", dir, cfg, "")

	_, err := adapter.Fetch(context.Background(), time.Now(), "EUR", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}
