package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"stockdash/internal/models"
)

const (
	yahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA      = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooChartResponse is the Yahoo Finance v8 chart API response, reduced
// to the fields the fetcher reads.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// YahooProvider fetches historical daily closes from the Yahoo Finance
// chart API.
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewYahooProvider creates a new Yahoo Finance history provider.
func NewYahooProvider(httpClient *http.Client, baseURL string) *YahooProvider {
	if baseURL == "" {
		baseURL = yahooBaseURL
	}
	return &YahooProvider{httpClient: httpClient, baseURL: baseURL}
}

// FetchDailyCloses retrieves one close per trading day for ticker over
// [start, end]. Non-trading days are simply absent from the result;
// null closes inside the response are skipped.
func (p *YahooProvider) FetchDailyCloses(ctx context.Context, ticker string, start, end time.Time) ([]models.QuotePoint, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(models.DateKey(start).Unix(), 10))
	// period2 is exclusive upstream; push it past end-of-day so the end
	// date's close is included.
	q.Set("period2", strconv.FormatInt(models.DateKey(end).Add(24*time.Hour).Unix(), 10))
	q.Set("interval", "1d")

	reqURL := p.baseURL + "/" + url.PathEscape(ticker) + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error %s: %s", chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart result for %s", ticker)
	}

	result := chartResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data for %s", ticker)
	}
	closes := result.Indicators.Quote[0].Close

	// Collapse to one close per calendar date; the last observation for
	// a date wins.
	byDate := make(map[time.Time]decimal.Decimal, len(result.Timestamp))
	var order []time.Time
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		day := models.DateKey(time.Unix(ts, 0))
		if _, seen := byDate[day]; !seen {
			order = append(order, day)
		}
		byDate[day] = decimal.NewFromFloat(*closes[i])
	}

	points := make([]models.QuotePoint, 0, len(order))
	for _, day := range order {
		points = append(points, models.QuotePoint{Date: day, Ticker: ticker, Close: byDate[day]})
	}
	return points, nil
}
