package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/KotFed0t/exchange_board/config"
	"github.com/KotFed0t/exchange_board/internal/model"
	"github.com/KotFed0t/exchange_board/internal/transport/web/pages"
	"github.com/KotFed0t/exchange_board/utils"
)

const noTableMsg = "Aucune table trouvée."

type MarketService interface {
	GetNgxQuotes(ctx context.Context) ([]model.EquityQuote, error)
	GetBrvmQuotes(ctx context.Context) (model.BrvmSnapshot, error)
	ExportNgx(ctx context.Context) (fileBytes []byte, fileExtension string, err error)
	ExportBrvm(ctx context.Context) (fileBytes []byte, fileExtension string, err error)
}

type Controller struct {
	marketService MarketService
	pages         *pages.Pages
	pollInterval  int64
}

func NewController(cfg *config.Config, marketService MarketService, pages *pages.Pages) *Controller {
	return &Controller{
		marketService: marketService,
		pages:         pages,
		pollInterval:  cfg.Dashboard.PollInterval.Milliseconds(),
	}
}

type rootResponse struct {
	Message string   `json:"message"`
	Routes  []string `json:"routes"`
}

func (ctrl *Controller) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, rootResponse{
		Message: "Bienvenue sur l’API temps réel NGX 📈 et BRVM 📊",
		Routes: []string{
			"/api/ngx", "/ngx", "/ngx/export.xlsx",
			"/api/brvm", "/brvm", "/brvm/table", "/brvm/export.xlsx",
			"/health",
		},
	})
}

func (ctrl *Controller) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, map[string]string{"status": "ok"})
}

// NgxQuotes answers with a bare array of quotes, as the NGX dashboard expects.
func (ctrl *Controller) NgxQuotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Controller.NgxQuotes"

	quotes, err := ctrl.marketService.GetNgxQuotes(ctx)
	if err != nil {
		slog.Error("got error from marketService.GetNgxQuotes", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, quotes)
}

type brvmResponse struct {
	Data  []model.RegionalQuote `json:"data"`
	Error string                `json:"error,omitempty"`
}

func (ctrl *Controller) BrvmQuotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Controller.BrvmQuotes"

	snapshot, err := ctrl.marketService.GetBrvmQuotes(ctx)
	if err != nil {
		slog.Error("got error from marketService.GetBrvmQuotes", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		writeError(w, r, err)
		return
	}

	resp := brvmResponse{Data: snapshot.Quotes}
	if !snapshot.TableFound {
		resp.Error = noTableMsg
	}

	writeJSON(w, r, resp)
}

func (ctrl *Controller) NgxExport(w http.ResponseWriter, r *http.Request) {
	ctrl.export(w, r, "ngx_data", ctrl.marketService.ExportNgx)
}

func (ctrl *Controller) BrvmExport(w http.ResponseWriter, r *http.Request) {
	ctrl.export(w, r, "brvm_data", ctrl.marketService.ExportBrvm)
}

func (ctrl *Controller) export(w http.ResponseWriter, r *http.Request, fileName string, generate func(ctx context.Context) ([]byte, string, error)) {
	ctx := r.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "Controller.export"

	fileBytes, fileExtension, err := generate(ctx)
	if err != nil {
		slog.Error("got error while generating export", slog.String("rqID", rqID), slog.String("op", op), slog.String("file", fileName), slog.String("err", err.Error()))
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName+fileExtension))
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(fileBytes); err != nil {
		slog.Error("got error while writing export", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}
}

// Panic is the recover middleware callback: a panicking handler still answers with the error envelope.
func (ctrl *Controller) Panic(w http.ResponseWriter, r *http.Request, v any) {
	slog.Error(
		"Panic recovered in http handler",
		slog.String("rqID", utils.GetRequestIDFromCtx(r.Context())),
		slog.String("path", r.URL.Path),
		slog.Any("panic", v),
		slog.String("stacktrace", string(debug.Stack())),
	)
	writeError(w, r, fmt.Errorf("panic: %v", v))
}
