package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
	"payhub-reconciliation/internal/recon"
)

// Request describes one Hub versus vendor reconciliation.
type Request struct {
	Rail            string
	TransactionType string
	From            time.Time
	To              time.Time
	VendorFile      domain.Upload
}

// ReconciliationUseCase orchestrates the reconciliation process.
type ReconciliationUseCase struct {
	rails  RailRegistry
	files  VendorFileReader
	ledger LedgerSource
	engine *recon.Engine
	logger *zap.Logger
	newID  func() string
}

// NewReconciliationUseCase creates a new instance of the usecase.
func NewReconciliationUseCase(rails RailRegistry, files VendorFileReader, ledger LedgerSource, engine *recon.Engine, logger *zap.Logger) *ReconciliationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		engine = recon.NewEngine(logger)
	}
	return &ReconciliationUseCase{
		rails:  rails,
		files:  files,
		ledger: ledger,
		engine: engine,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Rails returns the names of the supported rails.
func (uc *ReconciliationUseCase) Rails() []string {
	return uc.rails.Names()
}

// Reconcile runs a reconciliation of the uploaded vendor report against the
// Hub records of the same window. Configuration problems and empty windows
// come back as message outcomes; only data-source failures are errors.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, req Request) (*domain.Outcome, error) {
	runID := uc.newID()
	log := uc.logger.With(zap.String("run_id", runID), zap.String("rail", req.Rail))

	rl, ok := uc.rails.Lookup(req.Rail)
	if !ok {
		log.Warn("unknown rail")
		return domain.MessageOutcome(domain.OutcomeConfigError, domain.MsgUnknownRail), nil
	}

	vendorRows, err := uc.files.ReadVendorRows(ctx, req.VendorFile, rl.Config, req.TransactionType)
	if err != nil {
		if isWrongFile(err) {
			log.Warn("vendor report rejected", zap.Error(err))
			return domain.MessageOutcome(domain.OutcomeConfigError, domain.MsgWrongFile), nil
		}
		return nil, fmt.Errorf("could not read vendor report: %w", err)
	}

	window := domain.DateRange{From: domain.DateOnly(req.From), To: domain.DateOnly(req.To)}
	if !anyInWindow(vendorRows, rl.Config, window) {
		log.Warn("no vendor records in window", zap.Time("from", window.From), zap.Time("to", window.To))
		return domain.MessageOutcome(domain.OutcomeNoRecords, domain.MsgNoRecords), nil
	}

	presence := rl.Config.Flow == rail.FlowPresence
	var (
		hubRows    []domain.RawHubRow
		ledgerRows []domain.RawLedgerRow
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := rl.Hub.FetchHub(gctx, rl.Config, window)
		if err != nil {
			return fmt.Errorf("could not get hub records: %w", err)
		}
		hubRows = rows
		return nil
	})
	if !presence {
		g.Go(func() error {
			rows, err := uc.ledger.FetchLedger(gctx, window)
			if err != nil {
				return fmt.Errorf("could not get ledger summary: %w", err)
			}
			ledgerRows = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("reconciliation aborted", zap.Error(err))
		return nil, err
	}

	in := recon.Input{
		RunID:  runID,
		Rail:   rl.Config,
		Hub:    hubRows,
		Vendor: vendorRows,
		Ledger: ledgerRows,
	}
	if presence {
		recheck, err := uc.recheck(ctx, rl, hubRows, vendorRows, log)
		if err != nil {
			log.Error("reconciliation aborted", zap.Error(err))
			return nil, err
		}
		in.Recheck = recheck
	}

	result := uc.engine.Run(in)
	if result.IsEmpty() {
		return domain.MessageOutcome(domain.OutcomeNoRecords, domain.MsgNoRecords), nil
	}
	return &domain.Outcome{Kind: domain.OutcomeResult, Message: result.Message, Result: result}, nil
}

// recheck looks up on the Hub, without a date window, the references that
// only the vendor report carries.
func (uc *ReconciliationUseCase) recheck(ctx context.Context, rl rail.Rail, hubRows []domain.RawHubRow, vendorRows []domain.RawVendorRow, log *zap.Logger) ([]domain.RawHubRow, error) {
	keys := recon.VendorOnlyKeys(rl.Config, hubRows, vendorRows)
	if len(keys) == 0 {
		return nil, nil
	}
	if rl.Lookup == nil {
		log.Warn("rail has no hub lookup, vendor-only references stay not in portal", zap.Int("references", len(keys)))
		return nil, nil
	}
	rows, err := rl.Lookup.LookupHub(ctx, rl.Config, keys)
	if err != nil {
		return nil, fmt.Errorf("could not recheck vendor references: %w", err)
	}
	return rows, nil
}

func isWrongFile(err error) bool {
	return errors.Is(err, domain.ErrMissingColumn) || errors.Is(err, domain.ErrUnsupportedFile)
}

// anyInWindow reports whether some vendor row is dated within window. A
// report without any dated row is taken as a whole. The window only decides
// whether there is anything to reconcile; every row is reconciled.
func anyInWindow(rows []domain.RawVendorRow, cfg rail.Config, window domain.DateRange) bool {
	if len(rows) == 0 {
		return false
	}
	dated := false
	for _, r := range rows {
		if recon.IsNullish(r.Date) {
			continue
		}
		dated = true
		if d := recon.ParseDate(r.Date, cfg.DateLayouts, cfg.DayFirst); d != nil && window.Contains(*d) {
			return true
		}
	}
	return !dated
}
