// Package marketdata retrieves daily closing prices for ticker symbols
// from an external market-data source.
package marketdata

import (
	"context"
	"fmt"
	"time"

	"stockdash/internal/models"
)

// Provider fetches daily closes for one ticker over a date range, both
// ends inclusive. Implementations must return at most one QuotePoint per
// calendar date, in ascending date order.
type Provider interface {
	FetchDailyCloses(ctx context.Context, ticker string, start, end time.Time) ([]models.QuotePoint, error)
}

// FetchError records a per-ticker retrieval failure. One ticker failing
// never aborts the others; callers receive the failures alongside
// whatever data the remaining tickers produced.
type FetchError struct {
	Ticker string
	Err    error
}

// Error implements the error interface.
func (e FetchError) Error() string {
	return fmt.Sprintf("fetching quotes for %s: %v", e.Ticker, e.Err)
}

// Unwrap returns the underlying error.
func (e FetchError) Unwrap() error { return e.Err }
