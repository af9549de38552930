package indicators

import (
	"github.com/shopspring/decimal"

	apperrors "stockdash/internal/errors"
	"stockdash/internal/models"
)

// RSI reference levels.
var (
	rsiOverbought = decimal.NewFromInt(70)
	rsiOversold   = decimal.NewFromInt(30)
)

// rawTailRows is how many trailing rows the raw-data view returns.
const rawTailRows = 50

// SignalView builds the buy/sell signal chart: the close line plus the
// dates where a buy or sell marker fired.
func (s *Sheet) SignalView() *models.SignalView {
	view := &models.SignalView{
		Close: models.ChartSeries{Name: "Close"},
	}
	for _, row := range s.Rows {
		view.Close.Points = append(view.Close.Points, models.SeriesPoint{Date: row.Date, Value: row.Close})
		if row.BuySignal != nil {
			view.Buys = append(view.Buys, models.SeriesPoint{Date: row.Date, Value: *row.BuySignal})
		}
		if row.SellSignal != nil {
			view.Sells = append(view.Sells, models.SeriesPoint{Date: row.Date, Value: *row.SellSignal})
		}
	}
	return view
}

// RSIView builds the RSI chart with its 70/30 reference levels.
func (s *Sheet) RSIView() *models.RSIView {
	view := &models.RSIView{
		RSI:        models.ChartSeries{Name: "RSI"},
		Overbought: rsiOverbought,
		Oversold:   rsiOversold,
	}
	for _, row := range s.Rows {
		if row.RSI != nil {
			view.RSI.Points = append(view.RSI.Points, models.SeriesPoint{Date: row.Date, Value: *row.RSI})
		}
	}
	return view
}

// MACDView builds the MACD chart: MACD line plus its signal line.
func (s *Sheet) MACDView() *models.MACDView {
	view := &models.MACDView{
		MACD:   models.ChartSeries{Name: "MACD"},
		Signal: models.ChartSeries{Name: "Signal Line"},
	}
	for _, row := range s.Rows {
		if row.MACD != nil {
			view.MACD.Points = append(view.MACD.Points, models.SeriesPoint{Date: row.Date, Value: *row.MACD})
		}
		if row.MACDSignal != nil {
			view.Signal.Points = append(view.Signal.Points, models.SeriesPoint{Date: row.Date, Value: *row.MACDSignal})
		}
	}
	return view
}

// BollingerView builds the Bollinger Bands chart. It fails when the
// sheet carries no band columns at all, mirroring the dashboard's own
// "band columns not found" error.
func (s *Sheet) BollingerView() (*models.BollingerView, error) {
	view := &models.BollingerView{
		Close:  models.ChartSeries{Name: "Close"},
		Middle: models.ChartSeries{Name: "Middle Band"},
		Upper:  models.ChartSeries{Name: "Upper Band"},
		Lower:  models.ChartSeries{Name: "Lower Band"},
	}
	found := false
	for _, row := range s.Rows {
		view.Close.Points = append(view.Close.Points, models.SeriesPoint{Date: row.Date, Value: row.Close})
		if row.BBMiddle != nil {
			view.Middle.Points = append(view.Middle.Points, models.SeriesPoint{Date: row.Date, Value: *row.BBMiddle})
			found = true
		}
		if row.BBUpper != nil {
			view.Upper.Points = append(view.Upper.Points, models.SeriesPoint{Date: row.Date, Value: *row.BBUpper})
			found = true
		}
		if row.BBLower != nil {
			view.Lower.Points = append(view.Lower.Points, models.SeriesPoint{Date: row.Date, Value: *row.BBLower})
			found = true
		}
	}
	if !found {
		return nil, apperrors.WithMessage(apperrors.ErrMissingColumns, "Bollinger Band columns not found")
	}
	return view, nil
}

// RawTail returns the trailing rows of the sheet for the raw-data view.
func (s *Sheet) RawTail() []models.IndicatorRow {
	if len(s.Rows) <= rawTailRows {
		return s.Rows
	}
	return s.Rows[len(s.Rows)-rawTailRows:]
}
