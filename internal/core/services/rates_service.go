package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/plutoline/crypto_purchase_app/internal/apperrors"
	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
	"github.com/plutoline/crypto_purchase_app/internal/core/ports/providers"
	portssvc "github.com/plutoline/crypto_purchase_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// quoteCurrencies are the fixed quote currencies for coin price lookups.
var quoteCurrencies = []string{"usd", "sgd"}

// RatesService routes currency pairs to upstream quotes and proxies coin
// prices. It holds no mutable state, so it is safe for concurrent use.
type RatesService struct {
	fx           providers.FXRateProvider
	coins        providers.CoinPriceProvider
	currencies   domain.CurrencySet
	snapshotBase domain.CurrencyCode
	source       string
	coinTable    []domain.Coin
}

var _ portssvc.RatesSvcFacade = (*RatesService)(nil)

// NewRatesService creates a new RatesService. coinSymbolIDs maps friendly
// coin symbols to the identifiers the price provider understands.
func NewRatesService(
	fx providers.FXRateProvider,
	coins providers.CoinPriceProvider,
	currencies domain.CurrencySet,
	snapshotBase domain.CurrencyCode,
	source string,
	coinSymbolIDs map[string]string,
) *RatesService {
	table := make([]domain.Coin, 0, len(coinSymbolIDs))
	for symbol, id := range coinSymbolIDs {
		table = append(table, domain.Coin{Symbol: strings.ToUpper(symbol), UpstreamID: id})
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Symbol < table[j].Symbol })

	return &RatesService{
		fx:           fx,
		coins:        coins,
		currencies:   currencies,
		snapshotBase: snapshotBase,
		source:       source,
		coinTable:    table,
	}
}

// GetRate composes the conversion rate for a pair following its route
// classification. The reciprocal rules assume domain.QuoteConvention.
func (s *RatesService) GetRate(ctx context.Context, from, to domain.CurrencyCode) (float64, error) {
	pivot := s.currencies.Pivot()

	switch domain.ClassifyPair(s.currencies, from, to) {
	case domain.RouteIdentity:
		return 1, nil

	case domain.RoutePivotBase:
		quote, err := s.fx.Rate(ctx, pivot, to)
		if err != nil {
			return 0, fmt.Errorf("fetching quote %s->%s: %w", pivot, to, err)
		}
		if err := validateQuote(quote); err != nil {
			return 0, err
		}
		return quote, nil

	case domain.RoutePivotQuote:
		quote, err := s.fx.Rate(ctx, pivot, from)
		if err != nil {
			return 0, fmt.Errorf("fetching quote %s->%s: %w", pivot, from, err)
		}
		if err := validateQuote(quote); err != nil {
			return 0, err
		}
		return 1 / quote, nil

	case domain.RouteCross:
		rates, err := s.fx.Rates(ctx, pivot, []domain.CurrencyCode{from, to})
		if err != nil {
			return 0, fmt.Errorf("fetching cross rates %s->{%s,%s}: %w", pivot, from, to, err)
		}
		fromQuote, err := s.quoteFrom(rates, from)
		if err != nil {
			return 0, err
		}
		toQuote, err := s.quoteFrom(rates, to)
		if err != nil {
			return 0, err
		}
		return toQuote / fromQuote, nil

	default:
		return 0, fmt.Errorf("%w: supported currencies are %s", apperrors.ErrUnsupportedPair, s.currencies)
	}
}

// Convert applies the routed rate to a strictly positive amount.
func (s *RatesService) Convert(ctx context.Context, from, to domain.CurrencyCode, amount decimal.Decimal) (*domain.Conversion, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be a positive number", apperrors.ErrValidation)
	}

	rate, err := s.GetRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.Conversion{
		From:         from,
		To:           to,
		InputAmount:  amount,
		Rate:         rate,
		OutputAmount: amount.Mul(decimal.NewFromFloat(rate)),
	}, nil
}

// RatesSnapshot derives the rate from the UI base currency to every other
// supported currency out of one batched pivot request, using the same
// reciprocal rules as GetRate.
func (s *RatesService) RatesSnapshot(ctx context.Context) (*domain.RateSnapshot, error) {
	pivot := s.currencies.Pivot()

	var symbols []domain.CurrencyCode
	for _, code := range s.currencies.Codes() {
		if code != pivot {
			symbols = append(symbols, code)
		}
	}

	// Quotes per 1 pivot; the pivot itself is 1 by definition.
	quotes := map[domain.CurrencyCode]float64{pivot: 1}
	if len(symbols) > 0 {
		rates, err := s.fx.Rates(ctx, pivot, symbols)
		if err != nil {
			return nil, fmt.Errorf("fetching snapshot rates: %w", err)
		}
		for _, code := range symbols {
			quote, err := s.quoteFrom(rates, code)
			if err != nil {
				return nil, err
			}
			quotes[code] = quote
		}
	}

	baseQuote := quotes[s.snapshotBase]
	out := make(map[domain.CurrencyCode]float64, len(quotes)-1)
	for _, code := range s.currencies.Codes() {
		if code == s.snapshotBase {
			continue
		}
		out[code] = quotes[code] / baseQuote
	}

	return &domain.RateSnapshot{
		Base:   s.snapshotBase,
		Rates:  out,
		Source: s.source,
	}, nil
}

// CoinPrices proxies one batched price request for the requested symbols, or
// for the whole supported table when symbols is empty. Entries the upstream
// did not return are omitted from the snapshot, never zero-filled.
func (s *RatesService) CoinPrices(ctx context.Context, symbols []string) (domain.CoinPriceSnapshot, error) {
	selected := s.coinTable
	if len(symbols) > 0 {
		selected = make([]domain.Coin, 0, len(symbols))
		for _, symbol := range symbols {
			coin, ok := s.lookupCoin(symbol)
			if !ok {
				return nil, fmt.Errorf("%w: unknown coin symbol '%s', supported symbols are %s", apperrors.ErrUnsupportedPair, symbol, s.supportedSymbols())
			}
			selected = append(selected, coin)
		}
	}

	ids := make([]string, len(selected))
	for i, coin := range selected {
		ids[i] = coin.UpstreamID
	}

	prices, err := s.coins.SimplePrices(ctx, ids, quoteCurrencies)
	if err != nil {
		return nil, fmt.Errorf("fetching coin prices: %w", err)
	}

	snapshot := domain.CoinPriceSnapshot{}
	for _, coin := range selected {
		entry, ok := prices[coin.UpstreamID]
		if !ok {
			continue
		}
		usd, okUSD := entry["usd"]
		sgd, okSGD := entry["sgd"]
		if !okUSD || !okSGD {
			// A partial entry is treated the same as an absent one.
			continue
		}
		snapshot[coin.Symbol] = domain.CoinPrice{USD: usd, SGD: sgd}
	}

	return snapshot, nil
}

func (s *RatesService) lookupCoin(symbol string) (domain.Coin, bool) {
	needle := strings.ToUpper(strings.TrimSpace(symbol))
	for _, coin := range s.coinTable {
		if coin.Symbol == needle {
			return coin, true
		}
	}
	return domain.Coin{}, false
}

func (s *RatesService) supportedSymbols() string {
	parts := make([]string, len(s.coinTable))
	for i, coin := range s.coinTable {
		parts[i] = coin.Symbol
	}
	return strings.Join(parts, ", ")
}

// quoteFrom extracts and validates one quote out of a batched response.
func (s *RatesService) quoteFrom(rates map[domain.CurrencyCode]float64, code domain.CurrencyCode) (float64, error) {
	quote, ok := rates[code]
	if !ok {
		return 0, fmt.Errorf("%w: provider response is missing a rate for %s", apperrors.ErrUpstream, code)
	}
	if err := validateQuote(quote); err != nil {
		return 0, err
	}
	return quote, nil
}

// validateQuote rejects quotes that cannot safely enter arithmetic. A bad
// quote is an upstream fault, never silently replaced with a default rate.
func validateQuote(quote float64) error {
	if math.IsNaN(quote) || math.IsInf(quote, 0) || quote <= 0 {
		return fmt.Errorf("%w: provider returned invalid rate %v", apperrors.ErrUpstream, quote)
	}
	return nil
}
