package dto

import (
	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the input for a currency conversion. The currency
// codes are shape-checked by binding; membership in the supported set is the
// rate router's concern.
type ConvertRequest struct {
	From   string          `json:"from" binding:"required,currencycode"`
	To     string          `json:"to" binding:"required,currencycode"`
	Amount decimal.Decimal `json:"amount"`
}

// ConversionResponse reports a conversion. Rate is units of To per 1 From.
type ConversionResponse struct {
	From         string          `json:"from"`
	To           string          `json:"to"`
	InputAmount  decimal.Decimal `json:"inputAmount"`
	Rate         float64         `json:"rate"`
	OutputAmount decimal.Decimal `json:"outputAmount"`
}

// ToConversionResponse converts a domain.Conversion to its DTO.
func ToConversionResponse(c *domain.Conversion) ConversionResponse {
	return ConversionResponse{
		From:         string(c.From),
		To:           string(c.To),
		InputAmount:  c.InputAmount,
		Rate:         c.Rate,
		OutputAmount: c.OutputAmount,
	}
}

// RateSnapshotResponse bundles the UI-facing base currency, its rates to the
// other supported currencies, and a label naming the quote source.
type RateSnapshotResponse struct {
	Base   string             `json:"base"`
	Rates  map[string]float64 `json:"rates"`
	Source string             `json:"source"`
}

// ToRateSnapshotResponse converts a domain.RateSnapshot to its DTO.
func ToRateSnapshotResponse(s *domain.RateSnapshot) RateSnapshotResponse {
	rates := make(map[string]float64, len(s.Rates))
	for code, rate := range s.Rates {
		rates[string(code)] = rate
	}
	return RateSnapshotResponse{
		Base:   string(s.Base),
		Rates:  rates,
		Source: s.Source,
	}
}
