package domain

import "github.com/shopspring/decimal"

// Conversion is the result of converting an amount between two currencies.
// Rate is always expressed as units of To per 1 unit of From.
type Conversion struct {
	From         CurrencyCode
	To           CurrencyCode
	InputAmount  decimal.Decimal
	Rate         float64
	OutputAmount decimal.Decimal
}

// RateSnapshot bundles the rates from a fixed UI-facing base currency to each
// of the other supported currencies, with a label naming the quote source.
type RateSnapshot struct {
	Base   CurrencyCode
	Rates  map[CurrencyCode]float64
	Source string
}
