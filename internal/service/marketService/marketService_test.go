package marketService

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KotFed0t/exchange_board/config"
	"github.com/KotFed0t/exchange_board/internal/converter/quoteConverter"
	"github.com/KotFed0t/exchange_board/internal/externalApi"
	"github.com/KotFed0t/exchange_board/internal/model/brvmModel"
	"github.com/KotFed0t/exchange_board/internal/model/ngxModel"
	"github.com/KotFed0t/exchange_board/internal/reportGenerator/xlsxGenerator"
	"github.com/KotFed0t/exchange_board/internal/service"
	"github.com/KotFed0t/exchange_board/internal/sheetSource/brvmSheet"
)

type fakeNgx struct {
	raw []ngxModel.RawQuote
	err error
}

func (f fakeNgx) GetEquities(ctx context.Context) ([]ngxModel.RawQuote, error) {
	return f.raw, f.err
}

type fakeBrvm struct {
	table brvmModel.Table
	err   error
}

func (f fakeBrvm) GetQuotesTable(ctx context.Context) (brvmModel.Table, error) {
	return f.table, f.err
}

var brvmTable = brvmModel.Table{
	Headers: []string{"Symbole", "Nom", "Cours veille (FCFA)", "Cours Clôture (FCFA)", "Variation (%)"},
	Rows: []brvmModel.Row{
		{"Symbole": "SNTS", "Nom": "SONATEL", "Cours veille (FCFA)": "25 000", "Cours Clôture (FCFA)": "25 500", "Variation (%)": "2,00 %"},
		{"Symbole": "SGBC", "Nom": "SG CI", "Cours veille (FCFA)": "15 000", "Cours Clôture (FCFA)": "14 700", "Variation (%)": "-2,00 %"},
		{"Symbole": "ETIT", "Nom": "ECOBANK TG", "Cours veille (FCFA)": "18", "Cours Clôture (FCFA)": "18", "Variation (%)": "0,00 %"},
	},
	Found: true,
}

func newService(cfg *config.Config, ngx NgxApi, source, scraper BrvmSource) *MarketService {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return New(cfg, ngx, source, scraper, quoteConverter.New(config.FormulaChangeOverOpen), xlsxGenerator.New())
}

func TestGetNgxQuotes(t *testing.T) {
	ngx := fakeNgx{raw: []ngxModel.RawQuote{
		{"Symbol": "NGX001", "OpeningPrice": json.Number("100"), "Change": json.Number("5")},
		{"Symbol": "NGX002", "OpeningPrice": json.Number("0"), "Change": json.Number("5")},
	}}

	quotes, err := newService(nil, ngx, nil, nil).GetNgxQuotes(context.Background())
	if err != nil {
		t.Fatalf("GetNgxQuotes() error = %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("len(quotes) = %d, want 2", len(quotes))
	}
	if got := quotes[0].ChangePct.Decimal.String(); got != "5" {
		t.Errorf("quotes[0].ChangePct = %s, want 5", got)
	}
	if quotes[1].ChangePct.Valid {
		t.Errorf("quotes[1].ChangePct = %s, want null", quotes[1].ChangePct.Decimal)
	}
}

func TestGetNgxQuotes_Failure(t *testing.T) {
	upstreamErr := externalApi.NewFailure(externalApi.CodeTimeout, context.DeadlineExceeded)

	_, err := newService(nil, fakeNgx{err: upstreamErr}, nil, nil).GetNgxQuotes(context.Background())
	if !errors.Is(err, upstreamErr) {
		t.Errorf("GetNgxQuotes() error = %v, want %v", err, upstreamErr)
	}
	if externalApi.CodeOf(err) != externalApi.CodeTimeout {
		t.Errorf("CodeOf() = %s, want %s", externalApi.CodeOf(err), externalApi.CodeTimeout)
	}
}

func TestGetBrvmQuotes(t *testing.T) {
	tests := []struct {
		name      string
		maxRows   int
		table     brvmModel.Table
		wantRows  int
		wantFound bool
	}{
		{"all rows", 0, brvmTable, 3, true},
		{"capped", 2, brvmTable, 2, true},
		{"cap above row count", 10, brvmTable, 3, true},
		{"table not found", 0, brvmModel.Table{}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Brvm: config.Brvm{MaxRows: tt.maxRows}}
			snapshot, err := newService(cfg, nil, fakeBrvm{table: tt.table}, nil).GetBrvmQuotes(context.Background())
			if err != nil {
				t.Fatalf("GetBrvmQuotes() error = %v", err)
			}
			if len(snapshot.Quotes) != tt.wantRows {
				t.Errorf("len(Quotes) = %d, want %d", len(snapshot.Quotes), tt.wantRows)
			}
			if snapshot.Quotes == nil {
				t.Error("Quotes = nil, want empty slice")
			}
			if snapshot.TableFound != tt.wantFound {
				t.Errorf("TableFound = %v, want %v", snapshot.TableFound, tt.wantFound)
			}
		})
	}
}

func TestGetBrvmQuotes_Failure(t *testing.T) {
	missing := externalApi.NewFailure(externalApi.CodeResourceMissing, os.ErrNotExist)

	_, err := newService(nil, nil, fakeBrvm{err: missing}, nil).GetBrvmQuotes(context.Background())
	if externalApi.CodeOf(err) != externalApi.CodeResourceMissing {
		t.Errorf("CodeOf() = %s, want %s", externalApi.CodeOf(err), externalApi.CodeResourceMissing)
	}
}

func TestSnapshotBrvm_ReadBackBySheetSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brvm_data.xlsx")
	cfg := &config.Config{Brvm: config.Brvm{SheetPath: path}}

	err := newService(cfg, nil, nil, fakeBrvm{table: brvmTable}).SnapshotBrvm(context.Background())
	if err != nil {
		t.Fatalf("SnapshotBrvm() error = %v", err)
	}

	fromSheet := newService(cfg, nil, brvmSheet.New(cfg), nil)
	snapshot, err := fromSheet.GetBrvmQuotes(context.Background())
	if err != nil {
		t.Fatalf("GetBrvmQuotes() error = %v", err)
	}
	if len(snapshot.Quotes) != 3 {
		t.Fatalf("len(Quotes) = %d, want 3", len(snapshot.Quotes))
	}

	want := []struct {
		symbol    string
		close     string
		changePct string
	}{
		{"SNTS", "25500", "2"},
		{"SGBC", "14700", "-2"},
		{"ETIT", "18", "0"},
	}
	for i, w := range want {
		q := snapshot.Quotes[i]
		if q.Symbol.String != w.symbol {
			t.Errorf("Quotes[%d].Symbol = %q, want %q", i, q.Symbol.String, w.symbol)
		}
		if got := q.ClosingPrice.Decimal.String(); got != w.close {
			t.Errorf("Quotes[%d].ClosingPrice = %s, want %s", i, got, w.close)
		}
		if got := q.ChangePct.Decimal.String(); got != w.changePct {
			t.Errorf("Quotes[%d].ChangePct = %s, want %s", i, got, w.changePct)
		}
		if q.OpeningPrice.Valid {
			t.Errorf("Quotes[%d].OpeningPrice = %s, want null", i, q.OpeningPrice.Decimal)
		}
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only the workbook", len(entries))
	}
}

func TestSnapshotBrvm_KeepsPreviousWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brvm_data.xlsx")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := &config.Config{Brvm: config.Brvm{SheetPath: path}}

	tests := []struct {
		name    string
		scraper fakeBrvm
		wantErr error
	}{
		{"no table", fakeBrvm{table: brvmModel.Table{}}, service.ErrNoQuotesTable},
		{"no rows", fakeBrvm{table: brvmModel.Table{Found: true}}, service.ErrNoQuotes},
		{"scrape failed", fakeBrvm{err: externalApi.NewFailure(externalApi.CodeBadStatus, errors.New("503"))}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newService(cfg, nil, nil, tt.scraper).SnapshotBrvm(context.Background())
			if err == nil {
				t.Fatal("SnapshotBrvm() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("SnapshotBrvm() error = %v, want %v", err, tt.wantErr)
			}

			b, _ := os.ReadFile(path)
			if string(b) != "previous" {
				t.Errorf("workbook was overwritten")
			}
		})
	}
}

func TestExportBrvm(t *testing.T) {
	b, ext, err := newService(nil, nil, fakeBrvm{table: brvmTable}, nil).ExportBrvm(context.Background())
	if err != nil {
		t.Fatalf("ExportBrvm() error = %v", err)
	}
	if ext != ".xlsx" || len(b) == 0 {
		t.Errorf("ExportBrvm() = %d bytes, %q", len(b), ext)
	}
}

func TestExportNgx_Failure(t *testing.T) {
	_, _, err := newService(nil, fakeNgx{err: externalApi.NewFailure(externalApi.CodeMalformed, errors.New("bad"))}, nil, nil).ExportNgx(context.Background())
	if externalApi.CodeOf(err) != externalApi.CodeMalformed {
		t.Errorf("CodeOf() = %s, want %s", externalApi.CodeOf(err), externalApi.CodeMalformed)
	}
}
