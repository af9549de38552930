// Package valuation joins trade ledgers to market quotes and computes
// per-ticker positions, cost basis, and unrealized profit/loss.
package valuation

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"stockdash/internal/models"
)

var hundred = decimal.NewFromInt(100)

// QuoteSource supplies the quote lookups the engine needs. Both lookups
// operate on UTC calendar dates.
type QuoteSource interface {
	// CloseAtOrBefore returns the close on the given date, or the most
	// recent prior close (forward-fill). ok is false when no quote at
	// or before the date exists.
	CloseAtOrBefore(ticker string, date time.Time) (models.QuotePoint, bool)
	// Latest returns the most recent close for the ticker, if any.
	Latest(ticker string) (models.QuotePoint, bool)
}

// Report is the engine's output: one summary per distinct ticker
// (sorted), every input trade enriched in input order, and warnings for
// excluded or unpriceable rows.
type Report struct {
	Summaries []models.TickerSummary
	Trades    []models.EnrichedTrade
	Warnings  []models.Warning
}

// accumulator carries the running per-ticker aggregates.
type accumulator struct {
	netPosition     decimal.Decimal
	totalInvestment decimal.Decimal
}

// Valuate runs the valuation pipeline over a validated ledger and a
// quote source. It is a pure function of its inputs: identical trades
// and quotes always produce an identical report.
//
// Sign convention: a buy contributes +quantity and +quantity*price, a
// sell contributes -quantity and -quantity*price. Cost basis therefore
// shrinks on sells rather than inflating, and profit/loss is measured
// against net capital committed.
func Valuate(trades []models.TradeRecord, quotes QuoteSource) *Report {
	report := &Report{}
	aggregates := make(map[string]*accumulator)

	for _, trade := range trades {
		enriched := models.EnrichedTrade{TradeRecord: trade}

		// Join: same-day close, else forward-filled most recent prior
		// close. A trade with no prior close at all keeps a nil close
		// but still contributes its investment; its own execution price
		// is always known.
		if q, ok := quotes.CloseAtOrBefore(trade.Ticker, trade.Date); ok {
			c := q.Close
			enriched.Close = &c
		}

		switch models.ClassifyAction(trade.Action) {
		case models.ActionBuy:
			enriched.SignedQuantity = trade.Quantity
		case models.ActionSell:
			enriched.SignedQuantity = trade.Quantity.Neg()
		default:
			// Excluded from every aggregate but retained in the trade
			// history so the upload is shown as received.
			enriched.InvalidAction = true
			report.Trades = append(report.Trades, enriched)
			report.Warnings = append(report.Warnings, models.Warning{
				Code:   models.WarnInvalidAction,
				Ticker: trade.Ticker,
				Message: fmt.Sprintf("action %q on %s is neither Buy nor Sell; row excluded from totals",
					trade.Action, trade.Date.Format("2006-01-02")),
			})
			continue
		}
		enriched.Investment = enriched.SignedQuantity.Mul(trade.Price)
		report.Trades = append(report.Trades, enriched)

		acc, ok := aggregates[trade.Ticker]
		if !ok {
			acc = &accumulator{}
			aggregates[trade.Ticker] = acc
		}
		acc.netPosition = acc.netPosition.Add(enriched.SignedQuantity)
		acc.totalInvestment = acc.totalInvestment.Add(enriched.Investment)
	}

	tickers := make([]string, 0, len(aggregates))
	for ticker := range aggregates {
		tickers = append(tickers, ticker)
	}
	sort.Strings(tickers)

	for _, ticker := range tickers {
		acc := aggregates[ticker]
		summary := models.TickerSummary{
			Ticker:          ticker,
			NetPosition:     acc.netPosition,
			TotalInvestment: acc.totalInvestment,
		}

		// Mark-to-market uses the single latest fetched close per
		// ticker. Without any quote the position cannot be valued;
		// the summary keeps its nil market fields and says so.
		if latest, ok := quotes.Latest(ticker); ok {
			price := latest.Close
			value := acc.netPosition.Mul(price)
			pnl := value.Sub(acc.totalInvestment)
			summary.CurrentPrice = &price
			summary.CurrentValue = &value
			summary.PnL = &pnl

			// pnl_pct is undefined on a zero basis. Rendered as null,
			// never as infinity or a division panic.
			if !acc.totalInvestment.IsZero() {
				pct := pnl.Div(acc.totalInvestment).Mul(hundred)
				summary.PnLPct = &pct
			}
		} else {
			report.Warnings = append(report.Warnings, models.Warning{
				Code:    models.WarnNoQuotes,
				Ticker:  ticker,
				Message: "no quotes available; position not marked to market",
			})
		}

		report.Summaries = append(report.Summaries, summary)
	}

	return report
}
