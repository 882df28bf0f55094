package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"payhub-reconciliation/internal/config"
	"payhub-reconciliation/internal/gateway"
	"payhub-reconciliation/internal/httpapi"
	"payhub-reconciliation/internal/logger"
	"payhub-reconciliation/internal/rail"
	"payhub-reconciliation/internal/recon"
	"payhub-reconciliation/internal/usecase"
)

func main() {
	envFile := flag.String("env", ".env", "Optional env file")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	zl, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	configs, err := rail.LoadConfigs(cfg.RailsFile)
	if err != nil {
		return err
	}

	// --- Dependency Injection (Wiring the application) ---
	pool, err := gateway.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	retry := gateway.RetryPolicy{Attempts: cfg.RetryAttempts, InitialWait: time.Second, MaxWait: cfg.RetryMaxWait}
	registry := rail.NewRegistry(configs, gateway.NewPostgresHubSource(pool, retry, zl), nil)
	uc := usecase.NewReconciliationUseCase(
		registry,
		gateway.NewFileReader(zl),
		gateway.NewPostgresLedgerSource(pool, retry, zl),
		recon.NewEngine(zl),
		zl,
	)
	router := httpapi.NewRouter(httpapi.NewHandler(uc, zl, cfg.MaxUploadBytes))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.Strings("rails", registry.Names()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
