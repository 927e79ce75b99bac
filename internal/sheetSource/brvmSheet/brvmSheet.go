package brvmSheet

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/KotFed0t/exchange_board/config"
	"github.com/KotFed0t/exchange_board/internal/externalApi"
	"github.com/KotFed0t/exchange_board/internal/model/brvmModel"
	"github.com/KotFed0t/exchange_board/utils"
	"github.com/xuri/excelize/v2"
)

type BrvmSheet struct {
	path string
}

func New(cfg *config.Config) *BrvmSheet {
	return &BrvmSheet{path: cfg.Brvm.SheetPath}
}

// GetQuotesTable reads the first sheet of the workbook; its first row holds the headers.
func (s *BrvmSheet) GetQuotesTable(ctx context.Context) (table brvmModel.Table, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "BrvmSheet.GetQuotesTable"

	slog.Debug("GetQuotesTable start", slog.String("rqID", rqID), slog.String("op", op), slog.String("path", s.path))
	defer func() {
		if err != nil {
			slog.Error("GetQuotesTable failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		} else {
			slog.Debug("GetQuotesTable completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("rows", len(table.Rows)))
		}
	}()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return brvmModel.Table{}, externalApi.NewFailure(externalApi.CodeResourceMissing, err)
		}
		return brvmModel.Table{}, externalApi.NewFailure(externalApi.CodeResourceMalformed, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", closeErr.Error()))
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return brvmModel.Table{}, externalApi.NewFailure(externalApi.CodeResourceMalformed, errors.New("workbook has no sheets"))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return brvmModel.Table{}, externalApi.NewFailure(externalApi.CodeResourceMalformed, err)
	}

	return rowsToTable(rows)
}

func rowsToTable(rows [][]string) (brvmModel.Table, error) {
	if len(rows) == 0 || isBlank(rows[0]) {
		return brvmModel.Table{}, externalApi.NewFailure(externalApi.CodeResourceMalformed, errors.New("sheet has no header row"))
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = utils.CollapseSpaces(h)
	}

	table := brvmModel.Table{Headers: headers, Rows: make([]brvmModel.Row, 0, len(rows)-1), Found: true}
	for _, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}

		// trailing empty cells are not returned by excelize, missing ones stay empty
		row := make(brvmModel.Row, len(headers))
		for i, h := range headers {
			if i < len(cells) {
				row[h] = utils.CollapseSpaces(cells[i])
			} else {
				row[h] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
