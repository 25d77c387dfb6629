package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/Dashboard/internal/model"
	httpclient "github.com/Alias1177/Dashboard/internal/platform/http"
)

// Client fetches daily OHLCV bars from the Yahoo Finance chart API.
// Symbols are passed through verbatim: equities ("AAPL"), indices
// ("^GSPC") and crypto pairs ("BTC-USD") all use the provider's own
// ticker syntax.
type Client struct {
	baseURL    string
	httpClient *httpclient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Yahoo client.
type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetries      int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Yahoo Finance client.
func NewClient(options ClientOptions) *Client {
	httpOpts := httpclient.ClientOptions{
		Timeout:         options.RequestTimeout,
		RequestsPerSec:  options.RequestsPerSec,
		MaxRetries:      options.MaxRetries,
		MaxRetryTimeout: options.MaxRetryTimeout,
	}
	if httpOpts.Timeout == 0 {
		httpOpts.Timeout = 30 * time.Second
	}
	if httpOpts.RequestsPerSec == 0 {
		httpOpts.RequestsPerSec = 5
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpclient.NewClient(httpOpts),
		logger:     log.With().Str("component", "yahoo_client").Logger(),
	}
}

// chartResponse is the response structure of the Yahoo chart API.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// History fetches up to days trailing daily bars for one symbol.
func (c *Client) History(ctx context.Context, symbol string, days int) (*model.PriceSeries, error) {
	if symbol == "" {
		return nil, &model.FetchError{Symbol: symbol, Err: fmt.Errorf("empty symbol")}
	}
	bars, err := c.fetchChart(ctx, symbol, rangeForDays(days))
	if err != nil {
		return nil, &model.FetchError{Symbol: symbol, Err: err}
	}
	// The coarse range parameter can return more bars than asked for.
	if len(bars) > days {
		bars = bars[len(bars)-days:]
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars}, nil
}

// Latest fetches the trailing week of daily bars, enough to derive the
// last close and the change versus the previous close.
func (c *Client) Latest(ctx context.Context, symbol string) (*model.PriceSeries, error) {
	if symbol == "" {
		return nil, &model.FetchError{Symbol: symbol, Err: fmt.Errorf("empty symbol")}
	}
	bars, err := c.fetchChart(ctx, symbol, "5d")
	if err != nil {
		return nil, &model.FetchError{Symbol: symbol, Err: err}
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars}, nil
}

func (c *Client) fetchChart(ctx context.Context, symbol, rng string) ([]model.Bar, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		c.baseURL, url.PathEscape(symbol), rng)

	c.logger.Debug().Str("symbol", symbol).Str("range", rng).Msg("Fetching chart")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		c.logger.Error().Err(err).Str("symbol", symbol).Msg("Error parsing JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("%w: no bars returned", model.ErrMissingData)
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: no quote block returned", model.ErrMissingData)
	}
	quote := result.Indicators.Quote[0]

	n := len(result.Timestamp)
	for _, vals := range [][]interface{}{quote.Open, quote.High, quote.Low, quote.Close, quote.Volume} {
		if len(vals) < n {
			n = len(vals)
		}
	}

	bars := make([]model.Bar, 0, n)
	for i, ts := range result.Timestamp[:n] {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		cl := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bar (holiday etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: toFloat(quote.Volume[i]),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: only null bars returned", model.ErrMissingData)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	c.logger.Debug().Str("symbol", symbol).Int("count", len(bars)).Msg("Fetched bars")
	return bars, nil
}

// rangeForDays maps a day count onto the coarse Yahoo range parameter.
func rangeForDays(days int) string {
	switch {
	case days <= 30:
		return "1mo"
	case days <= 90:
		return "3mo"
	case days <= 180:
		return "6mo"
	case days <= 365:
		return "1y"
	default:
		return "2y"
	}
}
