// Package indicators parses pre-computed technical-indicator sheets and
// shapes them into the chart payloads the dashboard renders. The sheet
// schema (Close, Buy_Signal, Sell_Signal, momentum_rsi, trend_macd,
// trend_macd_signal, volatility_bbm/bbh/bbl, indexed by Date) comes from
// the upstream indicator-generation process and is consumed as-is.
package indicators

import (
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	apperrors "stockdash/internal/errors"
	"stockdash/internal/models"
	"stockdash/internal/tabular"
)

// Sheet is a parsed indicator sheet, rows ascending by date.
type Sheet struct {
	Rows []models.IndicatorRow
}

// Load parses an indicator sheet (.xlsx or .csv). Date and Close are
// mandatory columns; every indicator cell may be blank. Rows without a
// parseable date or close are skipped.
func Load(r io.Reader, filename string) (*Sheet, error) {
	table, err := tabular.Read(r, filename)
	if err != nil {
		return nil, err
	}

	idx := table.ColumnIndex()
	var missing []string
	for _, col := range []string{"Date", "Close"} {
		if _, ok := idx[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrMissingColumns,
			"Missing required columns: "+strings.Join(missing, ", "))
	}

	sheet := &Sheet{}
	for _, row := range table.Rows {
		date, ok := tabular.ParseDate(table.Cell(row, idx, "Date"))
		if !ok {
			continue
		}
		closeVal, err := decimal.NewFromString(tabular.NormalizeNumber(table.Cell(row, idx, "Close")))
		if err != nil {
			continue
		}

		sheet.Rows = append(sheet.Rows, models.IndicatorRow{
			Date:       date,
			Close:      closeVal,
			BuySignal:  optional(table, row, idx, "Buy_Signal"),
			SellSignal: optional(table, row, idx, "Sell_Signal"),
			RSI:        optional(table, row, idx, "momentum_rsi"),
			MACD:       optional(table, row, idx, "trend_macd"),
			MACDSignal: optional(table, row, idx, "trend_macd_signal"),
			BBMiddle:   optional(table, row, idx, "volatility_bbm"),
			BBUpper:    optional(table, row, idx, "volatility_bbh"),
			BBLower:    optional(table, row, idx, "volatility_bbl"),
		})
	}

	if len(sheet.Rows) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrUnreadableFile, "No usable rows in indicator sheet")
	}

	sort.SliceStable(sheet.Rows, func(i, j int) bool {
		return sheet.Rows[i].Date.Before(sheet.Rows[j].Date)
	})
	return sheet, nil
}

func optional(t *tabular.Table, row []string, idx map[string]int, column string) *decimal.Decimal {
	cell := tabular.NormalizeNumber(t.Cell(row, idx, column))
	if cell == "" {
		return nil
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return nil
	}
	return &d
}

// CloseSeries returns the close prices as a dated series, the input for
// forecasting.
func (s *Sheet) CloseSeries() []models.SeriesPoint {
	points := make([]models.SeriesPoint, len(s.Rows))
	for i, row := range s.Rows {
		points[i] = models.SeriesPoint{Date: row.Date, Value: row.Close}
	}
	return points
}
