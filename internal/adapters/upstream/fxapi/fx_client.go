package fxapi

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/plutoline/crypto_purchase_app/internal/apperrors"
	"github.com/plutoline/crypto_purchase_app/internal/core/domain"
	"github.com/plutoline/crypto_purchase_app/internal/core/ports/providers"
	"github.com/tidwall/gjson"
)

// Client talks to the FX quote provider over plain HTTP GET. The provider
// returns JSON of the form {"base":"USD","rates":{"SGD":1.34,...}} where each
// rate follows domain.QuoteConvention (units of symbol per 1 base).
type Client struct {
	baseURL string
	client  *http.Client
}

var _ providers.FXRateProvider = (*Client)(nil)

// NewClient creates a new FX provider client with a per-call deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// Rate fetches a single-pair quote.
func (c *Client) Rate(ctx context.Context, base, symbol domain.CurrencyCode) (float64, error) {
	rates, err := c.Rates(ctx, base, []domain.CurrencyCode{symbol})
	if err != nil {
		return 0, err
	}
	return rates[symbol], nil
}

// Rates fetches a batch of quotes against one base in a single request.
// Every requested symbol must come back as a finite number; anything else is
// an upstream error, never a defaulted rate.
func (c *Client) Rates(ctx context.Context, base domain.CurrencyCode, symbols []domain.CurrencyCode) (map[domain.CurrencyCode]float64, error) {
	joined := make([]string, len(symbols))
	for i, symbol := range symbols {
		joined[i] = string(symbol)
	}
	url := fmt.Sprintf("%s/latest?base=%s&symbols=%s", c.baseURL, base, strings.Join(joined, ","))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building fx request: %w", err)
	}
	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: calling fx provider: %v", apperrors.ErrUpstream, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading fx response: %v", apperrors.ErrUpstream, err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fx provider returned status %d", apperrors.ErrUpstream, response.StatusCode)
	}

	rates := make(map[domain.CurrencyCode]float64, len(symbols))
	for _, symbol := range symbols {
		value := gjson.GetBytes(body, "rates."+string(symbol))
		if !value.Exists() || value.Type != gjson.Number {
			return nil, fmt.Errorf("%w: fx response has no numeric rate for %s", apperrors.ErrUpstream, symbol)
		}
		rate := value.Float()
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, fmt.Errorf("%w: fx response has a non-finite rate for %s", apperrors.ErrUpstream, symbol)
		}
		rates[symbol] = rate
	}

	return rates, nil
}
