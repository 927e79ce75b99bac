package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/KotFed0t/exchange_board/config"
	"github.com/KotFed0t/exchange_board/internal/transport/web"
	"github.com/KotFed0t/exchange_board/internal/transport/web/middleware"
)

type HTTPServer struct {
	srv *http.Server
}

func New(cfg *config.Config, ctrl *web.Controller) *HTTPServer {
	handler := middleware.Chain(
		Routes(cfg, ctrl),
		middleware.Logger(),
		middleware.Recover(ctrl.Panic),
		middleware.CORS(cfg.HTTP.CorsAllowedOrigins),
	)

	return &HTTPServer{
		srv: &http.Server{
			Addr:         cfg.HTTP.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		},
	}
}

func Routes(cfg *config.Config, ctrl *web.Controller) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", ctrl.Root)
	mux.HandleFunc("GET /health", ctrl.Health)

	mux.HandleFunc("GET /api/ngx", ctrl.NgxQuotes)
	mux.HandleFunc("GET /ngx", ctrl.NgxDashboard)
	mux.HandleFunc("GET /ngx/export.xlsx", ctrl.NgxExport)

	mux.HandleFunc("GET /api/brvm", ctrl.BrvmQuotes)
	mux.HandleFunc("GET /brvm", ctrl.BrvmDashboard)
	mux.HandleFunc("GET /brvm/table", ctrl.BrvmTable)
	mux.HandleFunc("GET /brvm/export.xlsx", ctrl.BrvmExport)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.HTTP.StaticDir))))

	return mux
}

func (s *HTTPServer) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped with error", slog.String("err", err.Error()))
			panic(err)
		}
	}()
	slog.Info("http server started!", slog.String("addr", s.srv.Addr))
}

func (s *HTTPServer) Stop(ctx context.Context) {
	slog.Info("start stopping http server")
	if err := s.srv.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown error", slog.String("err", err.Error()))
	}
	slog.Info("http server stopped")
}
