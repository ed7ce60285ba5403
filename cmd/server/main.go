// Command server serves the supply-chain data API over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/freightforge/supplychain-simdata-go/internal/config"
	"github.com/freightforge/supplychain-simdata-go/internal/httpapi"
	"github.com/freightforge/supplychain-simdata-go/internal/storage"
	"github.com/freightforge/supplychain-simdata-go/pkg/logger"
	"github.com/freightforge/supplychain-simdata-go/simdata/retrieval"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 15 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	var (
		envFile    string
		listenAddr string
	)

	flag.StringVar(&envFile, "env", "", "path to an optional dotenv file")
	flag.StringVar(&listenAddr, "listen", "", "listen address, overrides API_LISTEN_ADDR")
	flag.Parse()

	cfg, err := config.Load(envFile)
	if err != nil {
		panic(err)
	}

	if listenAddr != "" {
		cfg.Server.ListenAddr = listenAddr
	}

	baseLogger := logger.Must(logger.NewAtLevel(cfg.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	if err := cfg.Storage.Validate(); err != nil {
		baseLogger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backends, err := storage.Connect(ctx, cfg.Storage, logger.NewBridge(logger.Named(baseLogger, "storage")))
	if err != nil {
		baseLogger.Fatal("failed to connect storage backend", zap.Error(err))
	}
	defer backends.Close()

	service, err := retrieval.BuildService(
		backends.Reader,
		backends.Catalog,
		retrieval.WithLogger(logger.NewBridge(logger.Named(baseLogger, "retrieval"))),
	)
	if err != nil {
		baseLogger.Fatal("failed to build retrieval service", zap.Error(err))
	}

	handler := httpapi.NewHandler(service, logger.Named(baseLogger, "handlers"))
	engine := httpapi.NewRouter(handler, logger.Named(baseLogger, "router"))

	srv := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      engine,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	go func() {
		baseLogger.Info("server starting",
			zap.String("addr", cfg.Server.ListenAddr),
			zap.String("backend", cfg.Storage.Backend),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
