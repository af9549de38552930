package marketdata

import (
	"sort"
	"time"

	"stockdash/internal/models"
)

// QuoteSet holds the fetched daily closes for a set of tickers, each
// series ascending by date with at most one point per day.
type QuoteSet struct {
	series map[string][]models.QuotePoint
}

// NewQuoteSet builds a QuoteSet from per-ticker quote slices. Each
// series is sorted and de-duplicated by date (last observation wins).
func NewQuoteSet(byTicker map[string][]models.QuotePoint) *QuoteSet {
	series := make(map[string][]models.QuotePoint, len(byTicker))
	for ticker, points := range byTicker {
		normalized := make([]models.QuotePoint, len(points))
		copy(normalized, points)
		for i := range normalized {
			normalized[i].Date = models.DateKey(normalized[i].Date)
		}
		sort.SliceStable(normalized, func(i, j int) bool {
			return normalized[i].Date.Before(normalized[j].Date)
		})

		deduped := normalized[:0]
		for _, p := range normalized {
			if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(p.Date) {
				deduped[n-1] = p
				continue
			}
			deduped = append(deduped, p)
		}
		series[ticker] = deduped
	}
	return &QuoteSet{series: series}
}

// CloseAtOrBefore returns the quote for ticker on the given date, or the
// most recent prior one (forward-fill). The second return is false when
// no quote at or before the date exists.
func (s *QuoteSet) CloseAtOrBefore(ticker string, date time.Time) (models.QuotePoint, bool) {
	points := s.series[ticker]
	day := models.DateKey(date)
	// First index strictly after the target day.
	i := sort.Search(len(points), func(i int) bool {
		return points[i].Date.After(day)
	})
	if i == 0 {
		return models.QuotePoint{}, false
	}
	return points[i-1], true
}

// Latest returns the most recent quote for ticker, if any. It is the
// single mark-to-market observation per ticker.
func (s *QuoteSet) Latest(ticker string) (models.QuotePoint, bool) {
	points := s.series[ticker]
	if len(points) == 0 {
		return models.QuotePoint{}, false
	}
	return points[len(points)-1], true
}

// Series returns the ascending quote series for ticker.
func (s *QuoteSet) Series(ticker string) []models.QuotePoint {
	return s.series[ticker]
}

// Tickers returns the tickers present in the set, sorted. Tickers whose
// fetch failed are present with an empty series.
func (s *QuoteSet) Tickers() []string {
	tickers := make([]string, 0, len(s.series))
	for t := range s.series {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// All returns every quote in the set, ordered by ticker then date.
func (s *QuoteSet) All() []models.QuotePoint {
	var all []models.QuotePoint
	for _, ticker := range s.Tickers() {
		all = append(all, s.series[ticker]...)
	}
	return all
}
