// Package tabular reads uploaded spreadsheet files (.xlsx or .csv) into
// a uniform string table so the ledger and indicator loaders share one
// parsing path.
package tabular

import (
	"bytes"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	apperrors "stockdash/internal/errors"
)

// Table is a raw tabular file: a header row of column names plus data rows.
//
// Columns come from the first row of the file, trimmed. Files written
// with a two-row (multi-level) header are handled by flattening to the
// top level: the first row supplies the column names and the sub-header
// row, having no parseable values, falls out during row validation in
// the callers.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Read parses an uploaded file into a Table. The format is chosen by the
// filename extension: .xlsx via excelize, .csv (or no extension) via
// encoding/csv. Other extensions are rejected.
func Read(r io.Reader, filename string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return readXLSX(r)
	case ".csv", "":
		return readCSV(r)
	default:
		return nil, apperrors.ErrUnsupportedFile
	}
}

func readXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnreadableFile, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.ErrUnreadableFile
	}

	// First sheet only, matching how these files are produced.
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnreadableFile, err)
	}
	return fromRows(rows)
}

func readCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrUnreadableFile, err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) (*Table, error) {
	if len(rows) == 0 {
		return nil, apperrors.ErrUnreadableFile
	}

	columns := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		columns[i] = strings.TrimSpace(c)
	}

	t := &Table{Columns: columns}
	for _, row := range rows[1:] {
		// Pad short rows so cell lookups by column index are always safe.
		if len(row) < len(columns) {
			padded := make([]string, len(columns))
			copy(padded, row)
			row = padded
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ColumnIndex returns a case-insensitive lookup from column name to
// position. When a name appears more than once the first occurrence
// wins.
func (t *Table) ColumnIndex() map[string]int {
	idx := make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		key := strings.ToLower(c)
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

// Cell returns the trimmed value of the named column in the given row,
// or "" when the column is absent.
func (t *Table) Cell(row []string, idx map[string]int, column string) string {
	i, ok := idx[strings.ToLower(column)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// dateFormats covers the representations produced by spreadsheet tools
// and CSV exports.
var dateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01-02-06", // excelize default short date
	"1/2/06 15:04",
	"01/02/2006",
	"1/2/2006",
	"02/01/2006",
	"2006/01/02",
}

// ParseDate parses a cell into a UTC calendar date. Returns false when
// the cell is blank or matches no known format; the caller treats that
// as a null field.
func ParseDate(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, cell); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// NormalizeNumber strips grouping commas and surrounding whitespace so
// "1,234.50" parses as a decimal.
func NormalizeNumber(cell string) string {
	return strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
}

// WriteXLSX renders rows into an in-memory .xlsx workbook. Used by
// tests to fabricate uploads without fixture files.
func WriteXLSX(rows [][]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &buf, nil
}
