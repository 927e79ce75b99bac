package marketService

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KotFed0t/exchange_board/config"
	"github.com/KotFed0t/exchange_board/internal/converter/viewConverter"
	"github.com/KotFed0t/exchange_board/internal/model"
	"github.com/KotFed0t/exchange_board/internal/model/brvmModel"
	"github.com/KotFed0t/exchange_board/internal/model/ngxModel"
	"github.com/KotFed0t/exchange_board/internal/service"
	"github.com/KotFed0t/exchange_board/utils"
)

const (
	ngxSheetName  = "NGX"
	brvmSheetName = "BRVM"
)

type NgxApi interface {
	GetEquities(ctx context.Context) ([]ngxModel.RawQuote, error)
}

type BrvmSource interface {
	GetQuotesTable(ctx context.Context) (brvmModel.Table, error)
}

type QuoteConverter interface {
	NgxQuotes(raw []ngxModel.RawQuote) []model.EquityQuote
	BrvmQuotes(rows []brvmModel.Row) []model.RegionalQuote
}

type ReportGenerator interface {
	Generate(ctx context.Context, sheetName string, header []string, rows [][]any) (fileBytes []byte, fileExtension string, err error)
}

type MarketService struct {
	ngxApi          NgxApi
	brvmSource      BrvmSource
	brvmScraper     BrvmSource
	converter       QuoteConverter
	reportGenerator ReportGenerator
	brvmMaxRows     int
	brvmSheetPath   string
}

// New wires the service. brvmSource serves the BRVM endpoints (scraper or spreadsheet),
// brvmScraper feeds the spreadsheet snapshot.
func New(
	cfg *config.Config,
	ngxApi NgxApi,
	brvmSource BrvmSource,
	brvmScraper BrvmSource,
	converter QuoteConverter,
	reportGenerator ReportGenerator,
) *MarketService {
	return &MarketService{
		ngxApi:          ngxApi,
		brvmSource:      brvmSource,
		brvmScraper:     brvmScraper,
		converter:       converter,
		reportGenerator: reportGenerator,
		brvmMaxRows:     cfg.Brvm.MaxRows,
		brvmSheetPath:   cfg.Brvm.SheetPath,
	}
}

func (s *MarketService) GetNgxQuotes(ctx context.Context) ([]model.EquityQuote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "MarketService.GetNgxQuotes"

	slog.Debug("GetNgxQuotes start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("GetNgxQuotes finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	raw, err := s.ngxApi.GetEquities(ctx)
	if err != nil {
		slog.Error("got error from ngxApi.GetEquities", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}

	return s.converter.NgxQuotes(raw), nil
}

// GetBrvmQuotes returns the BRVM quotes from the configured source. A page without the
// expected table is not an error: the snapshot comes back empty with TableFound false.
func (s *MarketService) GetBrvmQuotes(ctx context.Context) (model.BrvmSnapshot, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "MarketService.GetBrvmQuotes"

	slog.Debug("GetBrvmQuotes start", slog.String("rqID", rqID), slog.String("op", op))
	defer func() {
		slog.Debug("GetBrvmQuotes finished", slog.String("rqID", rqID), slog.String("op", op))
	}()

	table, err := s.brvmSource.GetQuotesTable(ctx)
	if err != nil {
		slog.Error("got error from brvmSource.GetQuotesTable", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.BrvmSnapshot{}, err
	}

	if !table.Found {
		slog.Warn("brvm quotes table not found", slog.String("rqID", rqID), slog.String("op", op))
		return model.BrvmSnapshot{Quotes: []model.RegionalQuote{}}, nil
	}

	rows := table.Rows
	if s.brvmMaxRows > 0 && len(rows) > s.brvmMaxRows {
		rows = rows[:s.brvmMaxRows]
	}

	return model.BrvmSnapshot{
		Quotes:     s.converter.BrvmQuotes(rows),
		TableFound: true,
	}, nil
}

func (s *MarketService) ExportNgx(ctx context.Context) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "MarketService.ExportNgx"

	quotes, err := s.GetNgxQuotes(ctx)
	if err != nil {
		return nil, "", err
	}

	fileBytes, fileExtension, err = s.reportGenerator.Generate(
		ctx, ngxSheetName, viewConverter.Labels(model.EquityQuoteColumns), viewConverter.NgxCells(quotes),
	)
	if err != nil {
		slog.Error("got error from reportGenerator.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	return fileBytes, fileExtension, nil
}

func (s *MarketService) ExportBrvm(ctx context.Context) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "MarketService.ExportBrvm"

	snapshot, err := s.GetBrvmQuotes(ctx)
	if err != nil {
		return nil, "", err
	}

	fileBytes, fileExtension, err = s.generateBrvm(ctx, snapshot.Quotes)
	if err != nil {
		slog.Error("got error from reportGenerator.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	return fileBytes, fileExtension, nil
}

func (s *MarketService) generateBrvm(ctx context.Context, quotes []model.RegionalQuote) ([]byte, string, error) {
	return s.reportGenerator.Generate(
		ctx, brvmSheetName, viewConverter.Labels(model.RegionalQuoteColumns), viewConverter.BrvmCells(quotes),
	)
}

// SnapshotBrvm scrapes the BRVM site and replaces the workbook read by the spreadsheet
// source. The previous workbook is kept when the page has no quotes.
func (s *MarketService) SnapshotBrvm(ctx context.Context) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "MarketService.SnapshotBrvm"

	slog.Debug("SnapshotBrvm start", slog.String("rqID", rqID), slog.String("op", op), slog.String("path", s.brvmSheetPath))

	table, err := s.brvmScraper.GetQuotesTable(ctx)
	if err != nil {
		slog.Error("got error from brvmScraper.GetQuotesTable", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	if !table.Found {
		return service.ErrNoQuotesTable
	}
	if len(table.Rows) == 0 {
		return service.ErrNoQuotes
	}

	fileBytes, _, err := s.generateBrvm(ctx, s.converter.BrvmQuotes(table.Rows))
	if err != nil {
		slog.Error("got error from reportGenerator.Generate", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	if err := writeFileAtomic(s.brvmSheetPath, fileBytes); err != nil {
		slog.Error("got error while writing snapshot", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	slog.Info("brvm snapshot saved", slog.String("rqID", rqID), slog.String("op", op), slog.String("path", s.brvmSheetPath), slog.Int("rows", len(table.Rows)))

	return nil
}

// writeFileAtomic writes into a temp file next to path and renames it over path.
// Readers see either the old or the new workbook.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
