package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mohammadpnp/backoffice-import/internal/bootstrap"
	"github.com/mohammadpnp/backoffice-import/internal/config"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/db"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFiles)
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}
	logger := cfg.NewLogger()

	ctx := context.Background()
	poolCfg := db.DefaultPoolConfig()
	poolCfg.MaxConns = cfg.DBMaxConns

	pool, err := db.NewPool(ctx, cfg.DatabaseURL, poolCfg)
	if err != nil {
		logger.Fatalf("failed to create pgx pool: %v", err)
	}
	defer pool.Close()

	gormDB, err := db.OpenGorm(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}

	if cfg.MigrationsDir != "" {
		if err := db.RunMigrations(ctx, pool, cfg.MigrationsDir, logger.WithField("component", "migrate")); err != nil {
			logger.Fatalf("failed to run migrations: %v", err)
		}
	}

	sessions, closeSessions, err := bootstrap.NewSessionStore(ctx, cfg.Session)
	if err != nil {
		logger.Fatalf("failed to open session store: %v", err)
	}
	defer closeSessions()

	server, err := bootstrap.NewHTTPServer(cfg, bootstrap.ImportDeps{
		DB:       gormDB,
		Pool:     pool,
		Sessions: sessions,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatalf("failed to build server: %v", err)
	}

	go func() {
		logger.WithField("address", cfg.Address()).Info("server.starting")
		if err := server.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("graceful shutdown failed: %v", err)
	}
	logger.Info("server.stopped")
}
