package dto

import "github.com/shopspring/decimal"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ConvertRequest defines the body of a conversion request. AsOfDate is
// optional; when empty the latest available rate is used.
type ConvertRequest struct {
	SourceCurrency    string          `json:"source" binding:"required,uppercase,len=3"`
	ExchangedCurrency string          `json:"target" binding:"required,uppercase,len=3"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	AsOfDate          string          `json:"asOfDate" binding:"omitempty,datetime=2006-01-02"`
}

// ConvertResponse carries the converted amount.
type ConvertResponse struct {
	SourceCurrency    string          `json:"source"`
	ExchangedCurrency string          `json:"target"`
	Amount            decimal.Decimal `json:"amount"`
	Result            decimal.Decimal `json:"result"`
}
