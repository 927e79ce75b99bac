package viewConverter

import (
	"reflect"
	"testing"

	"github.com/KotFed0t/exchange_board/internal/model"
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

func TestColumnsMatchFields(t *testing.T) {
	if got, want := len(ngxFields(model.EquityQuote{})), len(model.EquityQuoteColumns); got != want {
		t.Errorf("len(ngxFields) = %d, want %d", got, want)
	}
	if got, want := len(brvmFields(model.RegionalQuote{})), len(model.RegionalQuoteColumns); got != want {
		t.Errorf("len(brvmFields) = %d, want %d", got, want)
	}
}

func TestBrvmRows(t *testing.T) {
	quotes := []model.RegionalQuote{
		{
			Symbol:       null.StringFrom("SNTS"),
			Name:         null.StringFrom("SONATEL"),
			Volume:       null.IntFrom(1234),
			ClosingPrice: decimal.NewNullDecimal(decimal.RequireFromString("25500")),
			ChangePct:    decimal.NewNullDecimal(decimal.RequireFromString("-1.25")),
		},
	}

	got := BrvmRows(quotes)
	want := [][]string{{"SNTS", "SONATEL", "1234", "-", "-", "25500", "-1.25"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BrvmRows() = %v, want %v", got, want)
	}
}

func TestNgxCells(t *testing.T) {
	quotes := []model.EquityQuote{
		{
			Symbol:     null.StringFrom("NGX001"),
			ClosePrice: decimal.NewNullDecimal(decimal.RequireFromString("12.5")),
			Volume:     null.IntFrom(7),
		},
	}

	got := NgxCells(quotes)[0]
	if got[0] != "NGX001" {
		t.Errorf("Symbol cell = %v, want NGX001", got[0])
	}
	if got[1] != nil {
		t.Errorf("PrevClosingPrice cell = %v, want nil", got[1])
	}
	if got[5] != 12.5 {
		t.Errorf("ClosePrice cell = %v, want 12.5", got[5])
	}
	if got[8] != int64(7) {
		t.Errorf("Volume cell = %v, want 7", got[8])
	}
}

func TestColumnIndex(t *testing.T) {
	if got := ColumnIndex(model.RegionalQuoteColumns, "ChangePct"); got != 6 {
		t.Errorf("ColumnIndex(ChangePct) = %d, want 6", got)
	}
	if got := ColumnIndex(model.RegionalQuoteColumns, "Nom"); got != 1 {
		t.Errorf("ColumnIndex(Nom) = %d, want 1", got)
	}
	if got := ColumnIndex(model.RegionalQuoteColumns, "unknown"); got != -1 {
		t.Errorf("ColumnIndex(unknown) = %d, want -1", got)
	}
}

func TestLabels(t *testing.T) {
	got := Labels(model.RegionalQuoteColumns)
	if got[0] != "Symbole" || got[len(got)-1] != "Variation (%)" {
		t.Errorf("Labels() = %v", got)
	}
}
