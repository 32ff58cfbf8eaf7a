package services_test

import (
	"testing"

	"github.com/fxdesk/currency_rates_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(nums ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(nums))
	for i, n := range nums {
		out[i] = decimal.RequireFromString(n)
	}
	return out
}

func TestChartAssembler_AddAndSnapshot(t *testing.T) {
	a := services.NewChartAssembler()

	usd := a.AddSeries("USD", []string{"2026-08-01", "2026-08-02"}, values("1.10", "1.12"))
	gbp := a.AddSeries("GBP", []string{"2026-08-01", "2026-08-02"}, values("0.88", "0.87"))

	assert.Equal(t, "USD", usd.Label)
	assert.NotEmpty(t, usd.Color)
	assert.NotEqual(t, usd.Color, gbp.Color, "consecutive series get distinct palette colors")

	snap := a.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "USD", snap[0].Label, "snapshot preserves insertion order")
	assert.Equal(t, "GBP", snap[1].Label)
}

func TestChartAssembler_DuplicateLabelIsNoOp(t *testing.T) {
	a := services.NewChartAssembler()

	first := a.AddSeries("USD", []string{"2026-08-01"}, values("1.10"))
	second := a.AddSeries("USD", []string{"2026-08-02"}, values("9.99"))

	assert.Equal(t, first, second, "the first-added data wins")
	require.Len(t, a.Snapshot(), 1)
	assert.Equal(t, first.DateLabels, a.Snapshot()[0].DateLabels)
}

func TestChartAssembler_ColorsAreStableAcrossReads(t *testing.T) {
	a := services.NewChartAssembler()

	added := a.AddSeries("USD", []string{"2026-08-01"}, values("1.10"))
	fromSnap := a.Snapshot()[0]

	assert.Equal(t, added.Color, fromSnap.Color)
}

func TestChartAssembler_Reset(t *testing.T) {
	a := services.NewChartAssembler()
	a.AddSeries("USD", []string{"2026-08-01"}, values("1.10"))

	a.Reset()

	assert.Empty(t, a.Snapshot())

	// After a reset the palette restarts from the first color.
	again := a.AddSeries("GBP", []string{"2026-08-01"}, values("0.88"))
	first := services.NewChartAssembler().AddSeries("X", nil, nil)
	assert.Equal(t, first.Color, again.Color)
}
