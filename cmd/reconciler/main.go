package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payhub-reconciliation/internal/config"
	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/gateway"
	"payhub-reconciliation/internal/logger"
	"payhub-reconciliation/internal/rail"
	"payhub-reconciliation/internal/recon"
	"payhub-reconciliation/internal/usecase"
)

func main() {
	// Define command-line flags
	railName := flag.String("rail", "", "Rail (service name) to reconcile, e.g. RECHARGE (required)")
	vendorFile := flag.String("vendor", "", "Path to the vendor settlement report (csv, xls or xlsx)")
	startDateStr := flag.String("start", "", "Start date of the window (YYYY-MM-DD)")
	endDateStr := flag.String("end", "", "End date of the window (YYYY-MM-DD)")
	txnType := flag.String("type", "", "Vendor transaction type selecting the column layout")
	ledgerFile := flag.String("ledger", "", "Path to the vendor ledger, for a vendor ledger run")
	statementFile := flag.String("statement", "", "Path to the vendor statement, for a vendor ledger run")
	envFile := flag.String("env", ".env", "Optional env file")
	flag.Parse()

	ledgerRun := *ledgerFile != "" || *statementFile != ""

	// Validate required flags
	if *railName == "" {
		fmt.Println("Error: -rail is required.")
		flag.Usage()
		os.Exit(1)
	}
	if ledgerRun && (*ledgerFile == "" || *statementFile == "") {
		fmt.Println("Error: -ledger and -statement must be given together.")
		flag.Usage()
		os.Exit(1)
	}
	if !ledgerRun && (*vendorFile == "" || *startDateStr == "" || *endDateStr == "") {
		fmt.Println("Error: flags -vendor, -start and -end are required.")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	// Logs go to stderr so stdout carries only the JSON report.
	zl, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configs, err := rail.LoadConfigs(cfg.RailsFile)
	if err != nil {
		log.Fatalf("Error loading rails: %v", err)
	}

	// --- Dependency Injection (Wiring the application) ---
	files := gateway.NewFileReader(zl)
	engine := recon.NewEngine(zl)

	var outcome *domain.Outcome
	if ledgerRun {
		// Vendor ledger runs only read the uploaded files.
		registry := rail.NewRegistry(configs, nil, nil)
		uc := usecase.NewReconciliationUseCase(registry, files, nil, engine, zl)

		ledger, lf, err := gateway.OpenUpload(*ledgerFile)
		if err != nil {
			log.Fatalf("Error opening ledger: %v", err)
		}
		defer lf.Close()
		statement, sf, err := gateway.OpenUpload(*statementFile)
		if err != nil {
			log.Fatalf("Error opening statement: %v", err)
		}
		defer sf.Close()

		outcome, err = uc.ReconcileVendorLedger(ctx, usecase.LedgerRequest{Rail: *railName, Ledger: ledger, Statement: statement})
		if err != nil {
			log.Fatalf("Vendor ledger reconciliation failed: %v", err)
		}
	} else {
		// Parse dates
		startDate, err := time.Parse("2006-01-02", *startDateStr)
		if err != nil {
			log.Fatalf("Error parsing start date: %v", err)
		}
		endDate, err := time.Parse("2006-01-02", *endDateStr)
		if err != nil {
			log.Fatalf("Error parsing end date: %v", err)
		}
		if cfg.DatabaseURL == "" {
			log.Fatalf("DATABASE_URL is required for a Hub reconciliation")
		}

		// 1. Create the data sources (the outermost layer)
		pool, err := gateway.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
		if err != nil {
			log.Fatalf("Error connecting to database: %v", err)
		}
		defer pool.Close()
		retry := gateway.RetryPolicy{Attempts: cfg.RetryAttempts, InitialWait: time.Second, MaxWait: cfg.RetryMaxWait}
		registry := rail.NewRegistry(configs, gateway.NewPostgresHubSource(pool, retry, zl), nil)
		ledgerSource := gateway.NewPostgresLedgerSource(pool, retry, zl)

		// 2. Create the usecase and inject the sources (the core logic layer)
		uc := usecase.NewReconciliationUseCase(registry, files, ledgerSource, engine, zl)

		vendor, vf, err := gateway.OpenUpload(*vendorFile)
		if err != nil {
			log.Fatalf("Error opening vendor report: %v", err)
		}
		defer vf.Close()

		// --- Execute the Usecase ---
		outcome, err = uc.Reconcile(ctx, usecase.Request{
			Rail:            *railName,
			TransactionType: *txnType,
			From:            startDate,
			To:              endDate,
			VendorFile:      vendor,
		})
		if err != nil {
			log.Fatalf("Reconciliation failed: %v", err)
		}
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		log.Fatalf("Failed to generate JSON report: %v", err)
	}

	fmt.Println(string(output))
}
