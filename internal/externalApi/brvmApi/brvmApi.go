package brvmApi

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"

	"github.com/KotFed0t/exchange_board/config"
	"github.com/KotFed0t/exchange_board/internal/externalApi"
	"github.com/KotFed0t/exchange_board/internal/model/brvmModel"
	"github.com/KotFed0t/exchange_board/utils"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

type BrvmApi struct {
	client          *resty.Client
	url             string
	expectedHeaders []string
}

func New(cfg *config.Config) *BrvmApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetHeader("User-Agent", cfg.API.UserAgent)

	if cfg.API.BrvmSite.InsecureSkipVerify {
		// the exchange site serves an incomplete certificate chain
		client.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	return &BrvmApi{
		client:          client,
		url:             cfg.API.BrvmSite.Url,
		expectedHeaders: cfg.API.BrvmSite.TableHeaders,
	}
}

// GetQuotesTable scrapes the quotes page. A page without a matching table is
// not an error: the returned table has Found == false.
func (a *BrvmApi) GetQuotesTable(ctx context.Context) (brvmModel.Table, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "BrvmApi.GetQuotesTable"

	slog.Debug("GetQuotesTable start", slog.String("rqID", rqID), slog.String("op", op), slog.String("url", a.url))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		Get(a.url)
	if err != nil {
		slog.Error("error while dialing brvm site", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return brvmModel.Table{}, externalApi.FailureFromTransport(err)
	}

	if resp.IsError() {
		slog.Error("brvm site responded with error status", slog.String("rqID", rqID), slog.String("op", op), slog.Int("status", resp.StatusCode()))
		return brvmModel.Table{}, externalApi.NewFailure(externalApi.CodeBadStatus, fmt.Errorf("unexpected status %s", resp.Status()))
	}

	table, err := ExtractTable(bytes.NewReader(resp.Body()), a.expectedHeaders)
	if err != nil {
		slog.Error("can't parse brvm page", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return brvmModel.Table{}, externalApi.NewFailure(externalApi.CodeMalformed, err)
	}

	if !table.Found {
		slog.Warn("no quotes table on brvm page", slog.String("rqID", rqID), slog.String("op", op), slog.Any("expectedHeaders", a.expectedHeaders))
	}

	slog.Debug("GetQuotesTable completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("rows", len(table.Rows)))

	return table, nil
}

// ExtractTable returns the first table whose header cells contain every label
// of expected (the first table at all when expected is empty). Body rows whose
// cell count differs from the header count are dropped.
func ExtractTable(r io.Reader, expected []string) (brvmModel.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return brvmModel.Table{}, err
	}

	var table brvmModel.Table
	doc.Find("table").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		headers := headerCells(s)
		if !containsAll(headers, expected) {
			return true
		}

		table = brvmModel.Table{Headers: headers, Rows: bodyRows(s, headers), Found: true}
		return false
	})

	return table, nil
}

func headerCells(table *goquery.Selection) []string {
	var headers []string
	table.Find("th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, utils.CollapseSpaces(th.Text()))
	})
	return headers
}

func bodyRows(table *goquery.Selection, headers []string) []brvmModel.Row {
	rows := make([]brvmModel.Row, 0)
	table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() == 0 || cells.Length() != len(headers) {
			return
		}

		row := make(brvmModel.Row, len(headers))
		cells.Each(func(i int, td *goquery.Selection) {
			row[headers[i]] = utils.CollapseSpaces(td.Text())
		})
		rows = append(rows, row)
	})
	return rows
}

func containsAll(headers, expected []string) bool {
	have := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		have[utils.FoldLabel(h)] = struct{}{}
	}

	for _, e := range expected {
		if _, ok := have[utils.FoldLabel(e)]; !ok {
			return false
		}
	}
	return true
}
