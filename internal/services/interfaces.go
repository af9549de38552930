package services

import (
	"context"
	"io"
	"time"

	"stockdash/internal/marketdata"
	"stockdash/internal/models"
)

// QuoteFetcher retrieves daily closes for a set of tickers. Failed
// tickers come back as FetchErrors with empty series; the fetch of one
// ticker never aborts the others.
type QuoteFetcher interface {
	Fetch(ctx context.Context, tickers []string, start, end time.Time) (*marketdata.QuoteSet, []marketdata.FetchError)
}

// AnalysisServicer runs one full portfolio analysis over an uploaded
// ledger file.
type AnalysisServicer interface {
	Analyze(ctx context.Context, file io.Reader, filename string) (*models.AnalysisReport, error)
}

// DashboardServicer builds chart payloads and forecasts from uploaded
// technical-indicator sheets.
type DashboardServicer interface {
	Indicators(file io.Reader, filename string, views []string) (*models.IndicatorReport, error)
	ForecastClose(file io.Reader, filename string, periods int) (*models.ForecastReport, error)
}
