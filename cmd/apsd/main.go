package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joseph-ayodele/aps-analyzer/internal/analysis"
	"github.com/joseph-ayodele/aps-analyzer/internal/common"
	"github.com/joseph-ayodele/aps-analyzer/internal/export"
	"github.com/joseph-ayodele/aps-analyzer/internal/server"
)

func main() {
	cfg, err := common.LoadConfig()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	proc := analysis.NewProcessorFromConfig(cfg, logger)
	handler := server.NewHandler(proc, export.NewService(cfg.Export.Sheet, logger), cfg.Server.MaxUploadMB, logger)
	router := server.SetupRouter(cfg.Server, handler, logger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("apsd.listening", "addr", cfg.Server.Addr, "environment", cfg.Server.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("apsd.serve.failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("apsd.shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("apsd.shutdown.failed", "error", err)
		os.Exit(1)
	}
	logger.Info("apsd.stopped")
}
