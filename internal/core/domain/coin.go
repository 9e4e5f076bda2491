package domain

// Coin maps a friendly coin symbol (e.g. "BTC") to the identifier the
// upstream price provider understands (e.g. "bitcoin").
type Coin struct {
	Symbol     string
	UpstreamID string
}

// CoinPrice is the price of one coin in the fixed quote currencies.
type CoinPrice struct {
	USD float64
	SGD float64
}

// CoinPriceSnapshot maps friendly coin symbols to their current prices.
// Symbols the upstream did not return are simply absent, never zero-filled.
type CoinPriceSnapshot map[string]CoinPrice
