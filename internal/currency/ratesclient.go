package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avoronkov/minibank/internal/models"
)

// RatesClient fetches the CBR-style daily rates document over HTTP.
// The document lists the value of one unit of each currency expressed
// in the base currency; the base currency itself quotes at 1.
type RatesClient struct {
	httpClient *http.Client
	url        string
	base       models.Currency
}

func NewRatesClient(url string, base models.Currency, timeout time.Duration) *RatesClient {
	return &RatesClient{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		base:       base,
	}
}

type quoteData struct {
	CharCode string          `json:"CharCode"`
	Value    decimal.Decimal `json:"Value"`
}

type ratesResponse struct {
	Date   string               `json:"Date"`
	Valute map[string]quoteData `json:"Valute"`
}

func (c *RatesClient) GetRate(ctx context.Context, from, to models.Currency) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to build rates request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to fetch exchange rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rates endpoint returned status %d", resp.StatusCode)
	}

	var rates ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		return decimal.Zero, fmt.Errorf("failed to decode rates response: %w", err)
	}

	fromQuote, err := c.quote(rates, from)
	if err != nil {
		return decimal.Zero, err
	}
	toQuote, err := c.quote(rates, to)
	if err != nil {
		return decimal.Zero, err
	}

	if toQuote.IsZero() {
		return decimal.Zero, fmt.Errorf("zero quote for currency '%s'", to)
	}

	return fromQuote.Div(toQuote), nil
}

func (c *RatesClient) quote(rates ratesResponse, code models.Currency) (decimal.Decimal, error) {
	if code == c.base {
		return decimal.NewFromInt(1), nil
	}

	data, ok := rates.Valute[string(code)]
	if !ok {
		return decimal.Zero, fmt.Errorf("no quote for currency '%s'", code)
	}
	return data.Value, nil
}
