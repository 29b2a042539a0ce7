package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"triage-backend/internal/shared/config"
	"triage-backend/internal/shared/server"
	"triage-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogLevel, cfg.LogFormat, nil); err != nil {
		telemetry.Warn("telemetry.init_failed", map[string]any{"error": err.Error()})
	}
	defer telemetry.Sync()
	gin.SetMode(server.Mode(cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         server.Addr(cfg.Port),
		Handler:      server.NewRouter(cfg),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("server.start", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			telemetry.Error("server.failed", map[string]any{"error": err.Error()})
			telemetry.Sync()
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	telemetry.Info("server.shutdown", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		telemetry.Error("server.shutdown_failed", map[string]any{"error": err.Error()})
		return
	}
	telemetry.Info("server.stopped", nil)
}
