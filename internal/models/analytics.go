package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DatedRates groups every quote stored for a single valuation date, keyed by
// quote currency code. This is the shape the charting endpoints consume.
type DatedRates struct {
	Date  time.Time                  `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// TWRRPoint is one point of a time-weighted-return series.
type TWRRPoint struct {
	Date             time.Time       `json:"date"`
	Rate             decimal.Decimal `json:"rate"`
	CumulativeReturn decimal.Decimal `json:"cumulativeReturn"`
}

// ChartSeries is a named, colored series aligned on a shared date axis.
type ChartSeries struct {
	Label      string            `json:"label"`
	Color      string            `json:"color"`
	DateLabels []string          `json:"dateLabels"`
	Values     []decimal.Decimal `json:"values"`
}
