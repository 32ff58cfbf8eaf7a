package services

import (
	"sync"

	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
)

// chartPalette is the fixed display palette, cycled by insertion index.
var chartPalette = []string{
	"#4dc9f6",
	"#f67019",
	"#f53794",
	"#537bc4",
	"#acc236",
	"#166a8f",
	"#00a950",
	"#58595b",
}

// ChartAssembler accumulates named series onto one shared date axis as they
// arrive from repeated chart requests. Adding a label that is already present
// is a silent no-op: the first writer wins. The axis is whatever the most
// recently accepted series carried; callers are responsible for requesting
// compatible ranges.
type ChartAssembler struct {
	mu     sync.Mutex
	order  []string
	series map[string]models.ChartSeries
}

// NewChartAssembler creates an empty assembly.
func NewChartAssembler() *ChartAssembler {
	return &ChartAssembler{series: make(map[string]models.ChartSeries)}
}

// AddSeries adds a labeled series and returns the series as stored, which for
// a duplicate label is the originally accepted data.
func (a *ChartAssembler) AddSeries(label string, dateLabels []string, values []decimal.Decimal) models.ChartSeries {
	a.mu.Lock()
	defer a.mu.Unlock()

	if existing, ok := a.series[label]; ok {
		return existing
	}

	s := models.ChartSeries{
		Label:      label,
		Color:      chartPalette[len(a.order)%len(chartPalette)],
		DateLabels: dateLabels,
		Values:     values,
	}
	a.series[label] = s
	a.order = append(a.order, label)
	return s
}

// Snapshot returns the accepted series in insertion order.
func (a *ChartAssembler) Snapshot() []models.ChartSeries {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]models.ChartSeries, len(a.order))
	for i, label := range a.order {
		out[i] = a.series[label]
	}
	return out
}

// Reset discards the current assembly.
func (a *ChartAssembler) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.order = nil
	a.series = make(map[string]models.ChartSeries)
}
