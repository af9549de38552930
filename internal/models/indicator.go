package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// IndicatorRow is one dated row of a pre-computed technical-indicator
// sheet. Close is always present; every indicator column may be blank
// for a given date (signals in particular are sparse).
type IndicatorRow struct {
	Date       time.Time        `json:"date"`
	Close      decimal.Decimal  `json:"close"`
	BuySignal  *decimal.Decimal `json:"buy_signal,omitempty"`
	SellSignal *decimal.Decimal `json:"sell_signal,omitempty"`
	RSI        *decimal.Decimal `json:"momentum_rsi,omitempty"`
	MACD       *decimal.Decimal `json:"trend_macd,omitempty"`
	MACDSignal *decimal.Decimal `json:"trend_macd_signal,omitempty"`
	BBMiddle   *decimal.Decimal `json:"volatility_bbm,omitempty"`
	BBUpper    *decimal.Decimal `json:"volatility_bbh,omitempty"`
	BBLower    *decimal.Decimal `json:"volatility_bbl,omitempty"`
}

// SeriesPoint is one (date, value) observation of a chart series.
type SeriesPoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// ChartSeries is a named line on a chart.
type ChartSeries struct {
	Name   string        `json:"name"`
	Points []SeriesPoint `json:"points"`
}

// SignalView feeds the buy/sell signal chart: the close line plus
// discrete buy and sell markers.
type SignalView struct {
	Close ChartSeries   `json:"close"`
	Buys  []SeriesPoint `json:"buys"`
	Sells []SeriesPoint `json:"sells"`
}

// RSIView feeds the RSI chart with its overbought/oversold levels.
type RSIView struct {
	RSI        ChartSeries     `json:"rsi"`
	Overbought decimal.Decimal `json:"overbought"`
	Oversold   decimal.Decimal `json:"oversold"`
}

// MACDView feeds the MACD chart: the MACD line and its signal line.
type MACDView struct {
	MACD   ChartSeries `json:"macd"`
	Signal ChartSeries `json:"signal"`
}

// BollingerView feeds the Bollinger Bands chart.
type BollingerView struct {
	Close  ChartSeries `json:"close"`
	Middle ChartSeries `json:"middle"`
	Upper  ChartSeries `json:"upper"`
	Lower  ChartSeries `json:"lower"`
}

// IndicatorReport bundles the parsed sheet with the chart payloads the
// dashboard renders. Only the requested views are populated.
type IndicatorReport struct {
	Rows      []IndicatorRow `json:"rows,omitempty"`
	Signals   *SignalView    `json:"signals,omitempty"`
	RSI       *RSIView       `json:"rsi,omitempty"`
	MACD      *MACDView      `json:"macd,omitempty"`
	Bollinger *BollingerView `json:"bollinger,omitempty"`
}

// ForecastPoint is one projected observation with its uncertainty bounds.
type ForecastPoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
	Lower decimal.Decimal `json:"lower"`
	Upper decimal.Decimal `json:"upper"`
}

// ForecastReport is a projected close series for a configurable horizon.
type ForecastReport struct {
	Periods int             `json:"periods"`
	Points  []ForecastPoint `json:"points"`
}
