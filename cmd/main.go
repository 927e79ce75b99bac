package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/KotFed0t/exchange_board/config"
	"github.com/KotFed0t/exchange_board/internal/converter/quoteConverter"
	"github.com/KotFed0t/exchange_board/internal/externalApi/brvmApi"
	"github.com/KotFed0t/exchange_board/internal/externalApi/ngxApi"
	"github.com/KotFed0t/exchange_board/internal/httpserver"
	"github.com/KotFed0t/exchange_board/internal/reportGenerator/xlsxGenerator"
	"github.com/KotFed0t/exchange_board/internal/scheduler"
	"github.com/KotFed0t/exchange_board/internal/service/marketService"
	"github.com/KotFed0t/exchange_board/internal/sheetSource/brvmSheet"
	"github.com/KotFed0t/exchange_board/internal/transport/web"
	"github.com/KotFed0t/exchange_board/internal/transport/web/pages"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	ngxApiClient := ngxApi.New(cfg)
	brvmScraper := brvmApi.New(cfg)

	var brvmSource marketService.BrvmSource = brvmScraper
	if cfg.Brvm.Source == config.BrvmSourceSheet {
		brvmSource = brvmSheet.New(cfg)
	}
	slog.Info("brvm source selected", slog.String("source", cfg.Brvm.Source))

	marketSrv := marketService.New(
		cfg,
		ngxApiClient,
		brvmSource,
		brvmScraper,
		quoteConverter.New(cfg.Quotes.ChangePctFormula),
		xlsxGenerator.New(),
	)

	if cfg.Jobs.BrvmSnapshotInterval > 0 {
		sched := scheduler.New(cfg.API.Timeout * 2)
		sched.NewIntervalJob("brvm snapshot", marketSrv.SnapshotBrvm, cfg.Jobs.BrvmSnapshotInterval, true)
		sched.Start()
		defer sched.Stop()
	}

	ctrl := web.NewController(cfg, marketSrv, pages.MustNew())

	server := httpserver.New(cfg, ctrl)
	server.Start()

	// Waiting interruption signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	<-interrupt

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	server.Stop(ctx)
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
