package web

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/KotFed0t/exchange_board/internal/converter/viewConverter"
	"github.com/KotFed0t/exchange_board/internal/model"
	"github.com/KotFed0t/exchange_board/internal/tableView"
	"github.com/KotFed0t/exchange_board/internal/transport/web/pages"
	"github.com/KotFed0t/exchange_board/utils"
)

const (
	sortAsc  = "asc"
	sortDesc = "desc"
)

func (ctrl *Controller) NgxDashboard(w http.ResponseWriter, r *http.Request) {
	ctrl.renderDashboard(w, r, pages.Dashboard{
		Title:        "Tableau NGX",
		Heading:      "Données NGX en temps réel",
		Endpoint:     "/api/ngx",
		ExportURL:    "/ngx/export.xlsx",
		CSVName:      "ngx_data.csv",
		Columns:      model.EquityQuoteColumns,
		ChangePctKey: model.ChangePctKey,
		PollMillis:   ctrl.pollInterval,
	})
}

func (ctrl *Controller) BrvmDashboard(w http.ResponseWriter, r *http.Request) {
	ctrl.renderDashboard(w, r, pages.Dashboard{
		Title:        "Données BRVM",
		Heading:      "Données BRVM",
		Endpoint:     "/api/brvm",
		ExportURL:    "/brvm/export.xlsx",
		TableURL:     "/brvm/table",
		CSVName:      "brvm_data.csv",
		Columns:      model.RegionalQuoteColumns,
		ChangePctKey: model.ChangePctKey,
		PollMillis:   ctrl.pollInterval,
	})
}

func (ctrl *Controller) renderDashboard(w http.ResponseWriter, r *http.Request, d pages.Dashboard) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := ctrl.pages.Dashboard(w, d); err != nil {
		slog.Error("got error while rendering dashboard", slog.String("rqID", utils.GetRequestIDFromCtx(r.Context())), slog.String("op", "Controller.renderDashboard"), slog.String("err", err.Error()))
	}
}

// BrvmTable renders the BRVM quotes on the server, filtered by q and sorted by sort/dir.
func (ctrl *Controller) BrvmTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Controller.BrvmTable"

	query := r.URL.Query().Get("q")
	sortKey := r.URL.Query().Get("sort")
	dir := r.URL.Query().Get("dir")
	if dir != sortDesc {
		dir = sortAsc
	}

	cols := model.RegionalQuoteColumns
	page := pages.Table{
		Title:   "Données BRVM",
		Heading: "Données BRVM",
		Query:   query,
	}

	snapshot, err := ctrl.marketService.GetBrvmQuotes(ctx)
	switch {
	case err != nil:
		slog.Error("got error from marketService.GetBrvmQuotes", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		e := newErrorResponse(err)
		page.Notice = e.Error + " : " + e.Details
	case !snapshot.TableFound:
		page.Notice = noTableMsg
	}

	rows := make([]tableView.Row, 0, len(snapshot.Quotes))
	for _, row := range viewConverter.BrvmRows(snapshot.Quotes) {
		rows = append(rows, row)
	}
	page.Total = len(rows)

	rows = tableView.Filter(rows, query)
	sortCol := viewConverter.ColumnIndex(cols, sortKey)
	if sortCol >= 0 {
		rows = tableView.Sort(rows, sortCol, dir == sortDesc)
	}

	pctCol := viewConverter.ColumnIndex(cols, model.ChangePctKey)
	for i, c := range cols {
		h := pages.TableHeader{Label: c.Label, Href: tableHref(query, c.Key, sortAsc)}
		if i == sortCol {
			if dir == sortAsc {
				h.Arrow = "▲"
				h.Href = tableHref(query, c.Key, sortDesc)
			} else {
				h.Arrow = "▼"
			}
		}
		page.Headers = append(page.Headers, h)
	}

	for _, row := range rows {
		cells := make([]pages.TableCell, 0, len(row))
		for i, text := range row {
			cell := pages.TableCell{Text: text}
			if i == pctCol {
				cell.Class = pages.ChangeClass(text)
			}
			cells = append(cells, cell)
		}
		page.Rows = append(page.Rows, cells)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := ctrl.pages.Table(w, page); err != nil {
		slog.Error("got error while rendering table", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}
}

func tableHref(query, sortKey, dir string) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	v.Set("sort", sortKey)
	v.Set("dir", dir)
	return "?" + v.Encode()
}
