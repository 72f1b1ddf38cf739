package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/datacentricdesign/dcd-auth/internal/app"
	"github.com/datacentricdesign/dcd-auth/internal/config"
	"github.com/datacentricdesign/dcd-auth/internal/observability/logger"
)

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *cfgPath)
		},
	}
}

// loadConfig: .env (si existe) → YAML → env.
func loadConfig(path string) (*config.Config, error) {
	_ = godotenv.Load()
	return config.Load(path)
}

func serve(parent context.Context, cfgPath string) error {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return err
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "dcd-auth",
		Version:     version,
	})
	defer func() { _ = logger.Sync() }()
	log := logger.L()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, app.Options{Version: version})
	if err != nil {
		log.Error("bootstrap failed", logger.Err(err))
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Warn("close resources", logger.Err(err))
		}
	}()

	srv := a.Server()
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", logger.String("addr", srv.Addr), logger.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			log.Error("server error", logger.Err(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", logger.Duration(cfg.Server.ShutdownTimeout))
	shCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		log.Error("graceful shutdown failed", logger.Err(err))
		return err
	}
	log.Info("bye")
	return nil
}
