package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
)

// LedgerRequest describes a vendor ledger versus vendor statement reconciliation.
type LedgerRequest struct {
	Rail      string
	Ledger    domain.Upload
	Statement domain.Upload
}

// ReconcileVendorLedger reconciles a vendor's own ledger against its statement.
// The rail's ledger mode picks the matcher.
func (uc *ReconciliationUseCase) ReconcileVendorLedger(ctx context.Context, req LedgerRequest) (*domain.Outcome, error) {
	runID := uc.newID()
	log := uc.logger.With(zap.String("run_id", runID), zap.String("rail", req.Rail))

	rl, ok := uc.rails.Lookup(req.Rail)
	if !ok {
		log.Warn("unknown rail")
		return domain.MessageOutcome(domain.OutcomeConfigError, domain.MsgUnknownRail), nil
	}

	var (
		res *domain.LedgerReconciliation
		err error
	)
	switch {
	case rl.Config.Ledger == rail.LedgerSequence:
		res, err = uc.sequenceLedger(ctx, runID, rl.Config.Name, req)
	case rl.Config.Ledger == rail.LedgerKeyed && rl.Config.KeyedLedger != nil:
		res, err = uc.keyedLedger(ctx, runID, rl.Config, req)
	default:
		log.Warn("rail has no vendor ledger reconciliation")
		return domain.MessageOutcome(domain.OutcomeConfigError, fmt.Sprintf(domain.MsgNotSupported, rl.Config.Name)), nil
	}
	if err != nil {
		if isWrongFile(err) {
			log.Warn("vendor ledger files rejected", zap.Error(err))
			return domain.MessageOutcome(domain.OutcomeConfigError, domain.MsgWrongFile), nil
		}
		return nil, err
	}
	return &domain.Outcome{Kind: domain.OutcomeLedger, Message: res.Message, Ledger: res}, nil
}

func (uc *ReconciliationUseCase) sequenceLedger(ctx context.Context, runID, railName string, req LedgerRequest) (*domain.LedgerReconciliation, error) {
	entries, err := uc.files.ReadLedgerEntries(ctx, req.Ledger)
	if err != nil {
		return nil, fmt.Errorf("could not read vendor ledger: %w", err)
	}
	settlements, err := uc.files.ReadSettlements(ctx, req.Statement)
	if err != nil {
		return nil, fmt.Errorf("could not read vendor statement: %w", err)
	}
	return uc.engine.RunCommission(runID, railName, settlements, entries), nil
}

func (uc *ReconciliationUseCase) keyedLedger(ctx context.Context, runID string, cfg rail.Config, req LedgerRequest) (*domain.LedgerReconciliation, error) {
	ledger, err := uc.files.ReadKeyedLedger(ctx, req.Ledger, *cfg.KeyedLedger)
	if err != nil {
		return nil, fmt.Errorf("could not read vendor ledger: %w", err)
	}
	statement, err := uc.files.ReadKeyedStatement(ctx, req.Statement, *cfg.KeyedLedger)
	if err != nil {
		return nil, fmt.Errorf("could not read vendor statement: %w", err)
	}
	return uc.engine.RunStatement(runID, cfg.Name, ledger, statement), nil
}
