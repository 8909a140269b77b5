package models

import "github.com/shopspring/decimal"

// Quote is a single latest rate from the upstream.
type Quote struct {
	From string
	To   string
	Rate float64
	Date CalendarDate
}

// ConversionResult is computed per request and never stored.
type ConversionResult struct {
	From      string
	To        string
	Amount    float64
	Rate      float64
	Converted decimal.Decimal
	Date      CalendarDate
}

// NewConversionResult multiplies in decimal so display rounding is exact.
func NewConversionResult(q Quote, amount float64) ConversionResult {
	return ConversionResult{
		From:      q.From,
		To:        q.To,
		Amount:    amount,
		Rate:      q.Rate,
		Converted: decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(q.Rate)),
		Date:      q.Date,
	}
}
