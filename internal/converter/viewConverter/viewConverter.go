package viewConverter

import (
	"strconv"

	"github.com/KotFed0t/exchange_board/internal/model"
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// Placeholder is shown for missing values.
const Placeholder = "-"

// Labels returns the display labels of cols.
func Labels(cols []model.Column) []string {
	labels := make([]string, 0, len(cols))
	for _, c := range cols {
		labels = append(labels, c.Label)
	}
	return labels
}

// ColumnIndex returns the position of the column with the given key or label, -1 if none.
func ColumnIndex(cols []model.Column, name string) int {
	for i, c := range cols {
		if c.Key == name || c.Label == name {
			return i
		}
	}
	return -1
}

// NgxRows renders quotes as display strings in model.EquityQuoteColumns order.
func NgxRows(quotes []model.EquityQuote) [][]string {
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, displayRow(ngxFields(q)))
	}
	return rows
}

// BrvmRows renders quotes as display strings in model.RegionalQuoteColumns order.
func BrvmRows(quotes []model.RegionalQuote) [][]string {
	rows := make([][]string, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, displayRow(brvmFields(q)))
	}
	return rows
}

// NgxCells returns spreadsheet cell values; missing values are nil so the cell stays empty.
func NgxCells(quotes []model.EquityQuote) [][]any {
	rows := make([][]any, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, cellRow(ngxFields(q)))
	}
	return rows
}

func BrvmCells(quotes []model.RegionalQuote) [][]any {
	rows := make([][]any, 0, len(quotes))
	for _, q := range quotes {
		rows = append(rows, cellRow(brvmFields(q)))
	}
	return rows
}

// order must follow model.EquityQuoteColumns
func ngxFields(q model.EquityQuote) []any {
	return []any{
		q.Symbol,
		q.PrevClosingPrice,
		q.OpeningPrice,
		q.HighPrice,
		q.LowPrice,
		q.ClosePrice,
		q.Change,
		q.ChangePct,
		q.Volume,
		q.Value,
		q.Trades,
		q.TradeDate,
	}
}

// order must follow model.RegionalQuoteColumns
func brvmFields(q model.RegionalQuote) []any {
	return []any{
		q.Symbol,
		q.Name,
		q.Volume,
		q.PrevClosePrice,
		q.OpeningPrice,
		q.ClosingPrice,
		q.ChangePct,
	}
}

func displayRow(fields []any) []string {
	row := make([]string, 0, len(fields))
	for _, f := range fields {
		row = append(row, Display(f))
	}
	return row
}

func cellRow(fields []any) []any {
	row := make([]any, 0, len(fields))
	for _, f := range fields {
		row = append(row, Cell(f))
	}
	return row
}

// Display formats a canonical field value, Placeholder when it is null.
func Display(v any) string {
	switch val := v.(type) {
	case decimal.NullDecimal:
		if val.Valid {
			return val.Decimal.String()
		}
	case null.Int:
		if val.Valid {
			return strconv.FormatInt(val.Int64, 10)
		}
	case null.String:
		if val.Valid && val.String != "" {
			return val.String
		}
	case string:
		if val != "" {
			return val
		}
	}
	return Placeholder
}

// Cell converts a canonical field value to an excelize cell value.
func Cell(v any) any {
	switch val := v.(type) {
	case decimal.NullDecimal:
		if val.Valid {
			return val.Decimal.InexactFloat64()
		}
	case null.Int:
		if val.Valid {
			return val.Int64
		}
	case null.String:
		if val.Valid {
			return val.String
		}
	}
	return nil
}
