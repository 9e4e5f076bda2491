package dto

import "github.com/plutoline/crypto_purchase_app/internal/core/domain"

// CoinPriceEntry is the price of one coin in the fixed quote currencies.
type CoinPriceEntry struct {
	USD float64 `json:"usd"`
	SGD float64 `json:"sgd"`
}

// CoinPricesResponse maps friendly coin symbols to their current prices.
// Symbols the upstream did not return are absent, never null-filled.
type CoinPricesResponse map[string]CoinPriceEntry

// ToCoinPricesResponse converts a domain.CoinPriceSnapshot to its DTO.
func ToCoinPricesResponse(snapshot domain.CoinPriceSnapshot) CoinPricesResponse {
	out := make(CoinPricesResponse, len(snapshot))
	for symbol, price := range snapshot {
		out[symbol] = CoinPriceEntry{USD: price.USD, SGD: price.SGD}
	}
	return out
}
