package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuotePoint is one daily closing price observation for a ticker.
// There is at most one QuotePoint per (ticker, date); gaps for
// non-trading days are expected and handled by forward-fill lookups.
type QuotePoint struct {
	Date   time.Time       `json:"date"`
	Ticker string          `json:"ticker"`
	Close  decimal.Decimal `json:"close"`
}

// DateKey normalizes a timestamp to its UTC calendar day. All quote and
// trade date comparisons go through this so intraday components and time
// zones never affect joins.
func DateKey(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
