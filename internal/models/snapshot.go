package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LatestSnapshot is the frequently regenerated "latest rates" surface. It is
// kept apart from the historical rate store so that the ten-minute mock job
// never pollutes permanent history.
type LatestSnapshot struct {
	BaseCode    string                     `json:"baseCode"`
	GeneratedAt time.Time                  `json:"generatedAt"`
	Rates       map[string]decimal.Decimal `json:"rates"`
}
