// Package ledger parses uploaded trade ledgers into validated trade
// records.
package ledger

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "stockdash/internal/errors"
	"stockdash/internal/models"
	"stockdash/internal/tabular"
)

// requiredColumns is the minimum schema of a trade ledger. Matching is
// case-insensitive after trimming.
var requiredColumns = []string{"Date", "Ticker", "Action", "Quantity", "Price"}

// Ledger is a parsed and validated trade ledger.
type Ledger struct {
	// Trades holds the surviving rows in file order.
	Trades []models.TradeRecord
	// DroppedRows counts rows discarded because a required field was
	// blank or unparseable. Dropped rows are not repaired and not
	// reported individually.
	DroppedRows int
}

// Load parses an uploaded ledger file (.xlsx or .csv). It fails with
// ErrMissingColumns naming the absent fields when the required column
// set is not present, and with ErrNoValidTrades when no row survives
// validation.
func Load(r io.Reader, filename string) (*Ledger, error) {
	table, err := tabular.Read(r, filename)
	if err != nil {
		return nil, err
	}

	idx := table.ColumnIndex()

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[strings.ToLower(col)]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrMissingColumns,
			"Missing required columns: "+strings.Join(missing, ", "))
	}

	led := &Ledger{}
	for _, row := range table.Rows {
		rec, ok := parseRow(table, row, idx)
		if !ok {
			// A sub-header row from a two-level header lands here too:
			// its Date cell never parses, so it is dropped like any
			// other invalid row.
			if !blankRow(row) {
				led.DroppedRows++
			}
			continue
		}
		led.Trades = append(led.Trades, rec)
	}

	if len(led.Trades) == 0 {
		return nil, apperrors.ErrNoValidTrades
	}
	return led, nil
}

// parseRow validates one data row. Any blank or unparseable required
// field makes the whole row invalid; quantities and prices must be
// positive.
func parseRow(t *tabular.Table, row []string, idx map[string]int) (models.TradeRecord, bool) {
	var rec models.TradeRecord

	date, ok := tabular.ParseDate(t.Cell(row, idx, "Date"))
	if !ok {
		return rec, false
	}

	ticker := strings.ToUpper(t.Cell(row, idx, "Ticker"))
	action := t.Cell(row, idx, "Action")
	if ticker == "" || action == "" {
		return rec, false
	}

	quantity, err := decimal.NewFromString(tabular.NormalizeNumber(t.Cell(row, idx, "Quantity")))
	if err != nil || !quantity.IsPositive() {
		return rec, false
	}
	price, err := decimal.NewFromString(tabular.NormalizeNumber(t.Cell(row, idx, "Price")))
	if err != nil || !price.IsPositive() {
		return rec, false
	}

	rec = models.TradeRecord{
		Date:     date,
		Ticker:   ticker,
		Action:   action,
		Quantity: quantity,
		Price:    price,
	}
	return rec, true
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// Tickers returns the distinct tickers in the ledger, sorted.
func (l *Ledger) Tickers() []string {
	seen := make(map[string]struct{}, len(l.Trades))
	var tickers []string
	for _, t := range l.Trades {
		if _, ok := seen[t.Ticker]; !ok {
			seen[t.Ticker] = struct{}{}
			tickers = append(tickers, t.Ticker)
		}
	}
	sort.Strings(tickers)
	return tickers
}

// EarliestDate returns the minimum trade date across all tickers. It is
// the global start of the quote fetch window.
func (l *Ledger) EarliestDate() time.Time {
	var min time.Time
	for _, t := range l.Trades {
		if min.IsZero() || t.Date.Before(min) {
			min = t.Date
		}
	}
	return min
}
