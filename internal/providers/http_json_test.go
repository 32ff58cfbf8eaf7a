package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fxdesk/currency_rates_app/internal/apperrors"
	"github.com/fxdesk/currency_rates_app/internal/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func httpAdapterConfig() providers.AdapterConfig {
	var cfg providers.AdapterConfig
	cfg.Auth.AccessKey = "test-key"
	cfg.Endpoints.Historical.Request.Path = "/$date"
	cfg.Endpoints.Historical.Request.Args = map[string]string{
		"source_currency_code":    "source",
		"exchanged_currency_code": "currencies",
	}
	cfg.Endpoints.Historical.Response.Path = "quotes"
	return cfg
}

func TestHTTPJSONAdapter_FetchSuccess(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = map[string]string{
			"access_key": r.URL.Query().Get("access_key"),
			"source":     r.URL.Query().Get("source"),
			"currencies": r.URL.Query().Get("currencies"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "quotes": {"USD": 1.082573, "gbp": "0.852586"}}`))
	}))
	defer server.Close()

	adapter := providers.NewHTTPJSONAdapter("live", server.URL, httpAdapterConfig(), "", 5*time.Second)

	date := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	quotes, err := adapter.Fetch(context.Background(), date, "EUR", []string{"USD", "GBP"})

	require.NoError(t, err)
	assert.Equal(t, "/2026-08-31", gotPath, "date placeholder is substituted into the path")
	assert.Equal(t, "test-key", gotQuery["access_key"])
	assert.Equal(t, "EUR", gotQuery["source"])
	assert.Equal(t, "USD,GBP", gotQuery["currencies"])

	assert.Equal(t, "EUR", quotes.BaseCode)
	assert.True(t, dec("1.082573").Equal(quotes.Rates["USD"]))
	assert.True(t, dec("0.852586").Equal(quotes.Rates["GBP"]), "currency codes are uppercased")
}

func TestHTTPJSONAdapter_ForceBaseOverridesQuery(t *testing.T) {
	var gotSource string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSource = r.URL.Query().Get("source")
		w.Write([]byte(`{"quotes": {"EUR": 0.92, "GBP": 0.78}}`))
	}))
	defer server.Close()

	adapter := providers.NewHTTPJSONAdapter("live", server.URL, httpAdapterConfig(), "USD", 5*time.Second)

	quotes, err := adapter.Fetch(context.Background(), time.Now(), "EUR", []string{"GBP"})

	require.NoError(t, err)
	assert.Equal(t, "USD", gotSource)
	assert.Equal(t, "USD", quotes.BaseCode)
}

func TestHTTPJSONAdapter_Non200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	adapter := providers.NewHTTPJSONAdapter("live", server.URL, httpAdapterConfig(), "", 5*time.Second)

	_, err := adapter.Fetch(context.Background(), time.Now(), "EUR", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestHTTPJSONAdapter_MissingResponseKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "error": {"code": 104}}`))
	}))
	defer server.Close()

	adapter := providers.NewHTTPJSONAdapter("live", server.URL, httpAdapterConfig(), "", 5*time.Second)

	_, err := adapter.Fetch(context.Background(), time.Now(), "EUR", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderDataMissing)
}

func TestHTTPJSONAdapter_EmptyRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quotes": {}}`))
	}))
	defer server.Close()

	adapter := providers.NewHTTPJSONAdapter("live", server.URL, httpAdapterConfig(), "", 5*time.Second)

	_, err := adapter.Fetch(context.Background(), time.Now(), "EUR", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderDataMissing)
}

func TestHTTPJSONAdapter_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	adapter := providers.NewHTTPJSONAdapter("live", server.URL, httpAdapterConfig(), "", time.Second)

	_, err := adapter.Fetch(context.Background(), time.Now(), "EUR", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}
