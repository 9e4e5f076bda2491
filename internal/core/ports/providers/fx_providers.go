package providers

import (
	"context"

	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
)

// FXRateProvider abstracts the upstream foreign-exchange quote provider.
// All quotes follow domain.QuoteConvention: the value returned for
// (base, symbol) is units of symbol per 1 unit of base.
type FXRateProvider interface {
	// Rate fetches a single-pair quote.
	Rate(ctx context.Context, base domain.CurrencyCode, symbol domain.CurrencyCode) (float64, error)
	// Rates fetches a batch of quotes against one base in a single request.
	Rates(ctx context.Context, base domain.CurrencyCode, symbols []domain.CurrencyCode) (map[domain.CurrencyCode]float64, error)
}
