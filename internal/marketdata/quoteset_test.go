package marketdata

import (
	"testing"

	"github.com/shopspring/decimal"

	"stockdash/internal/models"
)

func quote(t *testing.T, ticker, date, close string) models.QuotePoint {
	t.Helper()
	return models.QuotePoint{
		Date:   day(t, date),
		Ticker: ticker,
		Close:  decimal.RequireFromString(close),
	}
}

func TestQuoteSet_ForwardFill(t *testing.T) {
	// Quotes exist on D1 and D3 only; a lookup on the missing D2 must
	// return D1's close, not D3's and not nothing.
	set := NewQuoteSet(map[string][]models.QuotePoint{
		"AAPL": {
			quote(t, "AAPL", "2024-01-01", "150"),
			quote(t, "AAPL", "2024-01-03", "170"),
		},
	})

	q, ok := set.CloseAtOrBefore("AAPL", day(t, "2024-01-02"))
	if !ok {
		t.Fatal("expected a forward-filled close")
	}
	if q.Close.String() != "150" {
		t.Errorf("expected close 150 from D1, got %s", q.Close)
	}
}

func TestQuoteSet_ExactDatePreferred(t *testing.T) {
	set := NewQuoteSet(map[string][]models.QuotePoint{
		"AAPL": {
			quote(t, "AAPL", "2024-01-01", "150"),
			quote(t, "AAPL", "2024-01-02", "160"),
		},
	})

	q, ok := set.CloseAtOrBefore("AAPL", day(t, "2024-01-02"))
	if !ok || q.Close.String() != "160" {
		t.Fatalf("expected same-day close 160, got %v ok=%v", q.Close, ok)
	}
}

func TestQuoteSet_NoPriorClose(t *testing.T) {
	set := NewQuoteSet(map[string][]models.QuotePoint{
		"AAPL": {quote(t, "AAPL", "2024-01-10", "150")},
	})

	if _, ok := set.CloseAtOrBefore("AAPL", day(t, "2024-01-05")); ok {
		t.Error("expected no close before the first quote")
	}
	if _, ok := set.CloseAtOrBefore("MSFT", day(t, "2024-01-05")); ok {
		t.Error("expected no close for unknown ticker")
	}
}

func TestQuoteSet_Latest(t *testing.T) {
	set := NewQuoteSet(map[string][]models.QuotePoint{
		"AAPL": {
			quote(t, "AAPL", "2024-01-15", "170"),
			quote(t, "AAPL", "2024-01-01", "150"), // out of order on purpose
		},
		"FAIL": nil,
	})

	q, ok := set.Latest("AAPL")
	if !ok || q.Close.String() != "170" {
		t.Fatalf("expected latest close 170, got %v ok=%v", q.Close, ok)
	}
	if _, ok := set.Latest("FAIL"); ok {
		t.Error("expected no latest quote for empty series")
	}
}

func TestQuoteSet_DeduplicatesByDate(t *testing.T) {
	set := NewQuoteSet(map[string][]models.QuotePoint{
		"AAPL": {
			quote(t, "AAPL", "2024-01-01", "150"),
			quote(t, "AAPL", "2024-01-01", "151"), // later observation wins
		},
	})

	series := set.Series("AAPL")
	if len(series) != 1 {
		t.Fatalf("expected 1 deduplicated point, got %d", len(series))
	}
	if series[0].Close.String() != "151" {
		t.Errorf("expected last observation 151, got %s", series[0].Close)
	}
}

func TestQuoteSet_AllOrderedByTickerThenDate(t *testing.T) {
	set := NewQuoteSet(map[string][]models.QuotePoint{
		"MSFT": {quote(t, "MSFT", "2024-01-02", "400")},
		"AAPL": {
			quote(t, "AAPL", "2024-01-02", "152"),
			quote(t, "AAPL", "2024-01-01", "150"),
		},
	})

	all := set.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(all))
	}
	if all[0].Ticker != "AAPL" || all[2].Ticker != "MSFT" {
		t.Errorf("unexpected ordering: %+v", all)
	}
	if all[1].Date.Before(all[0].Date) {
		t.Error("expected dates ascending within ticker")
	}
}
