package dto

import (
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
)

// RateListRequest selects a base currency and inclusive date range.
type RateListRequest struct {
	SourceCurrency string `form:"source" binding:"required,len=3"`
	DateFrom       string `form:"from" binding:"required,datetime=2006-01-02"`
	DateTo         string `form:"to" binding:"required,datetime=2006-01-02"`
}

// RateListResponse is the charting shape: one label per available date plus
// the per-date rate maps. Dates with no stored rates are absent, not filled.
type RateListResponse struct {
	SourceCurrency string                       `json:"source"`
	DateLabels     []string                     `json:"date_labels"`
	Data           []map[string]decimal.Decimal `json:"data"`
}

// ToRateListResponse reshapes grouped rates for the chart UI.
func ToRateListResponse(source string, grouped []models.DatedRates) RateListResponse {
	resp := RateListResponse{
		SourceCurrency: source,
		DateLabels:     make([]string, len(grouped)),
		Data:           make([]map[string]decimal.Decimal, len(grouped)),
	}
	for i, g := range grouped {
		resp.DateLabels[i] = g.Date.Format(DateLayout)
		resp.Data[i] = g.Rates
	}
	return resp
}

// ChartRequest selects one quote currency series for the comparison chart.
type ChartRequest struct {
	Currency string `form:"currency" binding:"required,len=3"`
	DateFrom string `form:"from" binding:"required,datetime=2006-01-02"`
	DateTo   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// ChartResponse returns the series accepted for this request together with
// the whole assembly accumulated so far.
type ChartResponse struct {
	Series   models.ChartSeries   `json:"series"`
	Assembly []models.ChartSeries `json:"assembly"`
}
