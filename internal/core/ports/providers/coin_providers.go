package providers

import "context"

// CoinPriceProvider abstracts the upstream crypto-price provider.
type CoinPriceProvider interface {
	// SimplePrices fetches prices for the given upstream identifiers against
	// the given quote currencies in one batched request. Identifiers the
	// upstream does not know are absent from the result, not an error.
	SimplePrices(ctx context.Context, ids []string, vsCurrencies []string) (map[string]map[string]float64, error)
}
