package services

import (
	"context"

	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RatesSvcFacade defines the interface for the currency rate router and the
// coin price proxy.
type RatesSvcFacade interface {
	// GetRate returns the conversion rate for a pair, expressed as units of
	// to per 1 unit of from. Identity pairs return 1 with no upstream call.
	GetRate(ctx context.Context, from, to domain.CurrencyCode) (float64, error)

	// Convert applies GetRate to a strictly positive amount.
	Convert(ctx context.Context, from, to domain.CurrencyCode, amount decimal.Decimal) (*domain.Conversion, error)

	// RatesSnapshot returns the rates from the configured UI base currency to
	// each other supported currency, derived from a single upstream request.
	RatesSnapshot(ctx context.Context) (*domain.RateSnapshot, error)

	// CoinPrices returns current prices for the given friendly coin symbols,
	// or for every supported symbol when none are given. Symbols absent from
	// the upstream response are dropped from the snapshot.
	CoinPrices(ctx context.Context, symbols []string) (domain.CoinPriceSnapshot, error)
}
