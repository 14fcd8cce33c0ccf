package rate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Client fetches the USD→IDR quote from an open exchange-rate endpoint.
// The endpoint returns {"rates": {"IDR": 15234.5, ...}}; only the IDR
// entry is read. No retries: a failed fetch is the service layer's
// fallback case, not something to paper over here.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a rate client for the given endpoint URL.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type ratesPayload struct {
	Rates map[string]float64 `json:"rates"`
}

// FetchUSDIDR returns the current USD→IDR rate from the remote source.
func (c *Client) FetchUSDIDR(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("creating rate request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rate request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Zero, fmt.Errorf("reading rate response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rate endpoint HTTP %d: %s", resp.StatusCode, string(body))
	}

	var payload ratesPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return decimal.Zero, fmt.Errorf("parsing rate response: %w", err)
	}

	idr, ok := payload.Rates["IDR"]
	if !ok {
		return decimal.Zero, fmt.Errorf("rate response has no IDR entry")
	}
	if idr <= 0 {
		return decimal.Zero, fmt.Errorf("rate response has non-positive IDR rate: %v", idr)
	}

	return decimal.NewFromFloat(idr), nil
}
