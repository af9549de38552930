package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TradeAction classifies a ledger row as a buy or a sell.
type TradeAction string

const (
	ActionBuy     TradeAction = "buy"
	ActionSell    TradeAction = "sell"
	ActionUnknown TradeAction = "unknown"
)

// ClassifyAction maps a raw ledger action string to a TradeAction.
// Matching is case-insensitive after trimming; anything other than
// buy/sell is ActionUnknown.
func ClassifyAction(raw string) TradeAction {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "buy":
		return ActionBuy
	case "sell":
		return ActionSell
	default:
		return ActionUnknown
	}
}

// TradeRecord is one validated row of an uploaded trade ledger.
// All five fields are guaranteed present by the loader; rows with a
// missing or unparseable field never become a TradeRecord.
type TradeRecord struct {
	Date     time.Time       `json:"date"`
	Ticker   string          `json:"ticker"`
	Action   string          `json:"action"` // raw value from the file; classified during valuation
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"` // execution price per unit
}

// EnrichedTrade is a TradeRecord joined with market data and derived fields.
type EnrichedTrade struct {
	TradeRecord
	// Close is the same-day close, or the most recent prior close when the
	// trade date has no quote. Nil when no close at or before the trade
	// date exists.
	Close *decimal.Decimal `json:"close"`
	// SignedQuantity is +Quantity for buys and -Quantity for sells.
	SignedQuantity decimal.Decimal `json:"signed_quantity"`
	// Investment is SignedQuantity * Price: buys add to cost basis,
	// sells reduce it.
	Investment decimal.Decimal `json:"investment"`
	// InvalidAction marks rows whose action is neither buy nor sell.
	// Such rows are kept in the trade history but excluded from all
	// per-ticker aggregates.
	InvalidAction bool `json:"invalid_action,omitempty"`
}
