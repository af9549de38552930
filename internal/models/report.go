package models

import "github.com/shopspring/decimal"

// Analysis report statuses.
const (
	StatusOK            = "ok"
	StatusPartialQuotes = "partial_quotes" // at least one ticker's quote fetch failed
)

// Warning codes surfaced in analysis reports.
const (
	WarnInvalidAction = "INVALID_ACTION"
	WarnQuoteFetch    = "QUOTE_FETCH_FAILED"
	WarnNoQuotes      = "NO_QUOTES"
)

// Warning is a non-fatal problem encountered during an analysis run.
type Warning struct {
	Code    string `json:"code"`
	Ticker  string `json:"ticker,omitempty"`
	Message string `json:"message"`
}

// TickerSummary aggregates all trades for one ticker and marks the
// position to market.
//
// CurrentPrice, CurrentValue, PnL and PnLPct are pointers because each
// can be genuinely undefined: the first three when no quote for the
// ticker could be fetched at all, PnLPct additionally when
// TotalInvestment is zero. Undefined values render as JSON null, never
// as NaN or infinity.
type TickerSummary struct {
	Ticker          string           `json:"ticker"`
	NetPosition     decimal.Decimal  `json:"net_position"`     // sum of signed quantities
	TotalInvestment decimal.Decimal  `json:"total_investment"` // sum of signed investments (cost basis)
	CurrentPrice    *decimal.Decimal `json:"current_price"`    // latest fetched close
	CurrentValue    *decimal.Decimal `json:"current_value"`    // NetPosition * CurrentPrice
	PnL             *decimal.Decimal `json:"pnl"`              // CurrentValue - TotalInvestment
	PnLPct          *decimal.Decimal `json:"pnl_pct"`          // PnL / TotalInvestment * 100
}

// AnalysisReport is the full result of one portfolio analysis run.
type AnalysisReport struct {
	Status      string          `json:"status"`
	Summaries   []TickerSummary `json:"summaries"`
	Trades      []EnrichedTrade `json:"trades"`
	DroppedRows int             `json:"dropped_rows"`
	Warnings    []Warning       `json:"warnings,omitempty"`
}
