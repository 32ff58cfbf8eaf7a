package dto

import (
	"github.com/fxdesk/currency_rates_app/internal/models"
	"github.com/shopspring/decimal"
)

// TWRRRequest parameterizes a time-weighted-return series: a hypothetical
// amount of source currency converted into target at the start date.
type TWRRRequest struct {
	SourceCurrency    string          `form:"source" binding:"required,len=3"`
	ExchangedCurrency string          `form:"target" binding:"required,len=3"`
	Amount            decimal.Decimal `form:"amount" binding:"required"`
	DateFrom          string          `form:"from" binding:"required,datetime=2006-01-02"`
	DateTo            string          `form:"to" binding:"required,datetime=2006-01-02"`
}

// TWRRResponse carries the return series aligned with its date labels.
type TWRRResponse struct {
	SourceCurrency    string            `json:"source"`
	ExchangedCurrency string            `json:"target"`
	Amount            decimal.Decimal   `json:"amount"`
	DateLabels        []string          `json:"date_labels"`
	Data              []decimal.Decimal `json:"data"`
}

// ToTWRRResponse flattens the series points for the API shape.
func ToTWRRResponse(source, target string, amount decimal.Decimal, points []models.TWRRPoint) TWRRResponse {
	resp := TWRRResponse{
		SourceCurrency:    source,
		ExchangedCurrency: target,
		Amount:            amount,
		DateLabels:        make([]string, len(points)),
		Data:              make([]decimal.Decimal, len(points)),
	}
	for i, p := range points {
		resp.DateLabels[i] = p.Date.Format(DateLayout)
		resp.Data[i] = p.CumulativeReturn
	}
	return resp
}
