// @title           Task Tracker API
// @version         1.0
// @description     CRUD over tasks backed by SQLite.
// @host            localhost:8080
// @BasePath        /api
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tasktracker/internal/app"
	"tasktracker/internal/config"
	"tasktracker/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tasktracker",
		Short:         "Task tracker HTTP service",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "init-db",
		Short: "Create the tasks table if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInitDB(cmd.Context())
		},
	})
	return cmd
}

func setup() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("config: %w", err)
	}
	log, err := logging.New(os.Stderr, cfg.Log)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("logging: %w", err)
	}
	slog.SetDefault(log)
	return cfg, log, nil
}

func runInitDB(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	db, err := app.OpenDB(ctx, cfg.DB, log)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer db.Close()
	log.Info("initialized tasks database", "file", cfg.DB.File)
	return nil
}

func runServe(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Info("config loaded, opening database", "file", cfg.DB.File)

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("app init: %w", err)
	}
	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.HTTP.Port,
		Handler:      application.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout.Duration(),
		WriteTimeout: cfg.HTTP.WriteTimeout.Duration(),
		IdleTimeout:  cfg.HTTP.IdleTimeout.Duration(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info("shutting down")
	case err := <-errCh:
		if err != nil {
			_ = application.Close()
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return application.Close()
}
