package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jobportal-api/internal/config"
	"jobportal-api/internal/docstore"
	"jobportal-api/internal/httpapi"
	"jobportal-api/internal/images"
	"jobportal-api/internal/listing"
	"jobportal-api/internal/secrets"
	"jobportal-api/internal/users"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Data dir: env if provided, else local folder.
	dataDir := os.Getenv("JOBPORTAL_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		logger.Fatal("config bootstrap failed", zap.Error(err))
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Fatal("config load failed", zap.String("path", cfgPath), zap.Error(err))
	}
	if cfg.App.DataDir == "" || cfg.App.DataDir == "." {
		cfg.App.DataDir = dataDir
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := docstore.Open(ctx, docstore.Options{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	}, logger)
	if err != nil {
		logger.Fatal("document store open failed", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Warn("document store close failed", zap.Error(err))
		}
	}()

	keyAccount := secrets.SearchKeyringAccount(cfg.Images.CX)
	apiKey, err := secrets.GetSearchAPIKey(keyAccount)
	if err != nil {
		// Image lookups degrade to placeholders without a key; everything
		// else keeps working.
		logger.Warn("image search API key unavailable", zap.Error(err))
	}

	search := images.NewSearchClient(images.SearchOptions{
		BaseURL:   cfg.Images.BaseURL,
		APIKey:    apiKey,
		CX:        cfg.Images.CX,
		ReqPerSec: cfg.Images.ReqPerSec,
		Burst:     cfg.Images.Burst,
	}, logger)
	cache := images.NewCache(filepath.Join(cfg.App.DataDir, cfg.Images.CacheFile), search, logger)

	deps := httpapi.Deps{
		Listings: listing.NewService(store, logger),
		Users:    users.NewService(store, logger),
		Images:   cache,

		SearchKeyAccount: keyAccount,

		Logger: logger,
	}

	handler := httpapi.Chain(httpapi.NewMux(deps),
		httpapi.Cors,
		httpapi.RequestID,
		httpapi.Recover(logger),
		httpapi.AccessLog(logger),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api listening", zap.String("addr", addr), zap.String("db", cfg.Mongo.Database))
		errCh <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("shutdown failed", zap.Error(err))
		}
	}

	logger.Info("shutdown complete")
}
