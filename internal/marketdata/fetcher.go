package marketdata

import (
	"context"
	"fmt"
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"stockdash/internal/logger"
	"stockdash/internal/models"
)

// Fetcher retrieves daily closes for many tickers concurrently, one
// goroutine per ticker, each with its own timeout. Results are collected
// into a per-ticker map and merged once; a ticker that fails contributes
// an empty series plus a FetchError and never disturbs the others.
//
// A TTL cache in front of the provider absorbs repeated dashboard
// refreshes. The cache is process-local; nothing survives a restart.
type Fetcher struct {
	provider Provider
	timeout  time.Duration
	limiter  *rate.Limiter
	cache    *gocache.Cache
}

// NewFetcher creates a Fetcher. timeout bounds each per-ticker fetch,
// ratePerSec throttles calls to the provider, and cacheTTL controls how
// long a fetched series is reused.
func NewFetcher(provider Provider, timeout time.Duration, ratePerSec float64, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		provider: provider,
		timeout:  timeout,
		limiter:  rate.NewLimiter(rate.Limit(ratePerSec), 1),
		cache:    gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// Fetch retrieves daily closes for all tickers over [start, end]. Every
// requested ticker appears in the returned QuoteSet; failed tickers have
// empty series and a corresponding FetchError, sorted by ticker.
func (f *Fetcher) Fetch(ctx context.Context, tickers []string, start, end time.Time) (*QuoteSet, []FetchError) {
	results := make([][]models.QuotePoint, len(tickers))
	fetchErrs := make([]error, len(tickers))

	g, gctx := errgroup.WithContext(ctx)
	for i, ticker := range tickers {
		g.Go(func() error {
			points, err := f.fetchOne(gctx, ticker, start, end)
			// Failures are collected, not returned: one ticker must not
			// cancel the group.
			results[i] = points
			fetchErrs[i] = err
			return nil
		})
	}
	_ = g.Wait()

	byTicker := make(map[string][]models.QuotePoint, len(tickers))
	var failures []FetchError
	for i, ticker := range tickers {
		byTicker[ticker] = results[i]
		if fetchErrs[i] != nil {
			failures = append(failures, FetchError{Ticker: ticker, Err: fetchErrs[i]})
			logger.Get().Warnw("quote fetch failed",
				"ticker", ticker,
				"error", fetchErrs[i].Error(),
			)
		}
	}
	sort.Slice(failures, func(i, j int) bool { return failures[i].Ticker < failures[j].Ticker })

	return NewQuoteSet(byTicker), failures
}

func (f *Fetcher) fetchOne(ctx context.Context, ticker string, start, end time.Time) ([]models.QuotePoint, error) {
	key := cacheKey(ticker, start, end)
	if cached, ok := f.cache.Get(key); ok {
		return cached.([]models.QuotePoint), nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	points, err := f.provider.FetchDailyCloses(fctx, ticker, start, end)
	if err != nil {
		return nil, err
	}

	f.cache.SetDefault(key, points)
	return points, nil
}

func cacheKey(ticker string, start, end time.Time) string {
	return fmt.Sprintf("%s|%s|%s",
		ticker,
		models.DateKey(start).Format("2006-01-02"),
		models.DateKey(end).Format("2006-01-02"),
	)
}
