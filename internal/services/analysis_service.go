package services

import (
	"context"
	"io"
	"time"

	"stockdash/internal/ledger"
	"stockdash/internal/logger"
	"stockdash/internal/models"
	"stockdash/internal/valuation"
)

// analysisService wires the ledger loader, quote fetcher, and valuation
// engine into one synchronous pipeline. Each call is stateless; nothing
// from one upload leaks into the next.
type analysisService struct {
	fetcher QuoteFetcher
	now     func() time.Time // injectable clock; the fetch window ends "today"
}

// NewAnalysisService creates a new AnalysisServicer.
func NewAnalysisService(fetcher QuoteFetcher) AnalysisServicer {
	return &analysisService{fetcher: fetcher, now: time.Now}
}

// Analyze parses the uploaded ledger, fetches daily closes for every
// distinct ticker from the earliest trade date through today, and
// valuates the portfolio. Loader errors (bad schema, no valid trades)
// abort the request; per-ticker quote failures degrade it to a partial
// result with warnings.
func (s *analysisService) Analyze(ctx context.Context, file io.Reader, filename string) (*models.AnalysisReport, error) {
	led, err := ledger.Load(file, filename)
	if err != nil {
		return nil, err
	}

	tickers := led.Tickers()
	start := led.EarliestDate()
	end := s.now()

	quotes, fetchErrs := s.fetcher.Fetch(ctx, tickers, start, end)

	result := valuation.Valuate(led.Trades, quotes)

	report := &models.AnalysisReport{
		Status:      models.StatusOK,
		Summaries:   result.Summaries,
		Trades:      result.Trades,
		DroppedRows: led.DroppedRows,
		Warnings:    result.Warnings,
	}
	for _, fe := range fetchErrs {
		report.Status = models.StatusPartialQuotes
		report.Warnings = append(report.Warnings, models.Warning{
			Code:    models.WarnQuoteFetch,
			Ticker:  fe.Ticker,
			Message: fe.Error(),
		})
	}

	logger.Get().Infow("analysis complete",
		"file", filename,
		"tickers", len(tickers),
		"trades", len(led.Trades),
		"dropped_rows", led.DroppedRows,
		"fetch_failures", len(fetchErrs),
	)
	return report, nil
}
