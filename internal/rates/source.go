package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Source fetches a spot conversion rate between two currencies
type Source interface {
	Name() string
	Fetch(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error)
}

const fetchTimeout = 5 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}

// DolarAPISource reads the official ARS/USD quote from a dolarapi-style
// endpoint returning {"compra": n, "venta": n}
type DolarAPISource struct {
	url    string
	client *http.Client
}

func NewDolarAPISource(url string) *DolarAPISource {
	return &DolarAPISource{url: url, client: newHTTPClient()}
}

func (s *DolarAPISource) Name() string { return "dolarapi" }

func (s *DolarAPISource) Fetch(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("dolarapi: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Compra float64 `json:"compra"`
		Venta  float64 `json:"venta"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, err
	}
	if body.Venta <= 0 {
		return decimal.Zero, fmt.Errorf("dolarapi: invalid quote")
	}

	// Quote is ARS per USD
	arsPerUSD := decimal.NewFromFloat(body.Venta)
	switch {
	case from == domain.CurrencyUSD && to == domain.CurrencyARS:
		return arsPerUSD, nil
	case from == domain.CurrencyARS && to == domain.CurrencyUSD:
		return decimal.NewFromInt(1).Div(arsPerUSD), nil
	default:
		return decimal.Zero, fmt.Errorf("dolarapi: unsupported pair %s/%s", from, to)
	}
}

// OpenERAPISource reads a rates table from an open.er-api.com-style endpoint
// returning {"base_code": "USD", "rates": {"ARS": n, ...}}
type OpenERAPISource struct {
	url    string
	client *http.Client
}

func NewOpenERAPISource(url string) *OpenERAPISource {
	return &OpenERAPISource{url: url, client: newHTTPClient()}
}

func (s *OpenERAPISource) Name() string { return "open-er-api" }

func (s *OpenERAPISource) Fetch(ctx context.Context, from, to domain.Currency) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return decimal.Zero, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("open-er-api: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, err
	}

	fromRate, okFrom := body.Rates[string(from)]
	toRate, okTo := body.Rates[string(to)]
	if !okFrom || !okTo || fromRate <= 0 || toRate <= 0 {
		return decimal.Zero, fmt.Errorf("open-er-api: no quote for %s/%s", from, to)
	}

	// Rates are relative to the endpoint's base currency; the ratio cancels it
	return decimal.NewFromFloat(toRate).Div(decimal.NewFromFloat(fromRate)), nil
}
