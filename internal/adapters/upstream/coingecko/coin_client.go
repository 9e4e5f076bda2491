package coingecko

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/plutoline/crypto_purchase_app/internal/apperrors"
	"github.com/plutoline/crypto_purchase_app/internal/core/ports/providers"
	"github.com/tidwall/gjson"
)

// Client talks to a CoinGecko-compatible price API. A batched lookup returns
// JSON keyed by coin identifier: {"bitcoin":{"usd":64000.1,"sgd":86500.2}}.
type Client struct {
	baseURL string
	client  *http.Client
}

var _ providers.CoinPriceProvider = (*Client)(nil)

// NewClient creates a new coin price client with a per-call deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// SimplePrices fetches prices for all ids against all vsCurrencies in one
// request. Identifiers missing from the response are absent from the result;
// a non-2xx response fails the whole batch.
func (c *Client) SimplePrices(ctx context.Context, ids []string, vsCurrencies []string) (map[string]map[string]float64, error) {
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=%s",
		c.baseURL, strings.Join(ids, ","), strings.Join(vsCurrencies, ","))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building coin price request: %w", err)
	}
	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: calling coin price provider: %v", apperrors.ErrUpstream, err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading coin price response: %v", apperrors.ErrUpstream, err)
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: coin price provider returned status %d", apperrors.ErrUpstream, response.StatusCode)
	}

	prices := make(map[string]map[string]float64, len(ids))
	for _, id := range ids {
		entry := gjson.GetBytes(body, id)
		if !entry.Exists() {
			continue
		}
		quotes := make(map[string]float64, len(vsCurrencies))
		for _, vs := range vsCurrencies {
			value := entry.Get(vs)
			if !value.Exists() || value.Type != gjson.Number {
				continue
			}
			price := value.Float()
			if math.IsNaN(price) || math.IsInf(price, 0) {
				continue
			}
			quotes[vs] = price
		}
		prices[id] = quotes
	}

	return prices, nil
}
