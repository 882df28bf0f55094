package recon

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
)

// Input is everything one reconciliation run works on.
type Input struct {
	RunID  string
	Rail   rail.Config
	Hub    []domain.RawHubRow
	Vendor []domain.RawVendorRow
	Ledger []domain.RawLedgerRow

	// Recheck holds the Hub records found outside the window for the
	// vendor-only references of a presence rail.
	Recheck []domain.RawHubRow
}

// Engine runs reconciliations. It holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an engine logging data-quality anomalies to logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger}
}

// Run reconciles Hub records against vendor records for one rail.
func (e *Engine) Run(in Input) *domain.ReconciliationResult {
	log := e.logger.With(zap.String("run_id", in.RunID), zap.String("rail", in.Rail.Name))
	if in.Rail.Flow == rail.FlowPresence {
		return e.runPresence(log, in)
	}

	canon := NewCanonicalizer(in.Rail)
	hubs := canon.Hub(in.Hub)
	vendors := canon.Vendor(in.Vendor)
	ledgerRows := canon.Ledger(in.Ledger)

	partition := Match(hubs, vendors)
	anomalies := canon.Anomalies()
	for _, key := range partition.Duplicates {
		log.Warn("duplicate reference key", zap.String("reference_key", key))
		anomalies = append(anomalies, Anomaly{Kind: AnomalyDuplicateReference, Side: "hub/vendor", Position: -1, Value: key})
	}

	folded, dropped := FoldLedger(ledgerRows)
	for _, key := range dropped {
		log.Warn("ledger summary has several rows for one reference, keeping the first", zap.String("reference_key", key))
		anomalies = append(anomalies, Anomaly{Kind: AnomalyLedgerDuplicate, Side: SideLedger, Position: -1, Value: key})
	}
	enricher := NewEnricher(folded)
	if enricher.SourceEmpty() {
		log.Warn("ledger summary returned no rows, defaulting ledger flags to No")
		anomalies = append(anomalies, Anomaly{Kind: AnomalyLedgerEmpty, Side: SideLedger, Position: -1})
	}
	EnrichPartition(&partition, enricher)

	pairs := ClassifyAll(partition.Matched)
	result := Aggregate(in.Rail, partition, pairs, len(hubs), len(vendors))
	result.RunID = in.RunID
	result.Notes = Summarize(anomalies)

	for _, a := range anomalies {
		log.Debug("data quality anomaly",
			zap.String("kind", string(a.Kind)),
			zap.String("side", a.Side),
			zap.Int("row", a.Position+1),
			zap.String("value", a.Value))
	}
	log.Info("reconciliation finished",
		zap.Int("hub_count", result.Counts.HubCount),
		zap.Int("vendor_count", result.Counts.VendorCount),
		zap.Int("matched", len(partition.Matched)),
		zap.Int("not_in_vendor", len(partition.NotInVendor)),
		zap.Int("not_in_portal", len(partition.NotInPortal)),
		zap.Bool("short_circuit", result.ShortCircuit))
	return result
}

// Vendor ledger output buckets.
const (
	BucketMatching       = "matching_trans"
	BucketAmountMismatch = "amount_mismatch"
	BucketNotInStatement = "not_in_statement"
	BucketNotInLedger    = "not_in_ledger"
	BucketLedgerCredits  = "credit_transactions_ledger"
)

// RunCommission reconciles a sequence-numbered vendor ledger against its statement.
func (e *Engine) RunCommission(runID, railName string, settlements []domain.Settlement, entries []domain.LedgerEntry) *domain.LedgerReconciliation {
	log := e.logger.With(zap.String("run_id", runID), zap.String("rail", railName))

	res, dups := MatchCommission(settlements, entries)
	if len(dups) > 0 {
		log.Warn("vendor ledger repeats sequence numbers, keeping the first", zap.Int64s("sno", dups))
	}

	buckets := map[string][]domain.Row{
		BucketMatching:       {},
		BucketAmountMismatch: {},
		BucketNotInStatement: {},
		BucketNotInLedger:    {},
	}
	matchedRows := 0
	for _, m := range res.Matched {
		for _, s := range m.Settlements {
			row := settlementRow(s)
			row[ColAmountLedger] = RoundAmount(m.Ledger.Amount)
			row[ColType] = renderText(m.Ledger.Type)
			row[ColCommissionSNO] = nil
			row[ColCommissionLedger] = nil
			if m.Commission != nil {
				row[ColCommissionSNO] = strconv.FormatInt(m.Commission.SNO, 10)
				row[ColCommissionLedger] = RoundAmount(m.Commission.Amount)
			}
			buckets[BucketMatching] = append(buckets[BucketMatching], row)
			matchedRows++
		}
	}
	for _, am := range res.AmountMismatch {
		row := ledgerEntryRow(am.Ledger)
		row[ColSumAmount] = RoundAmount(am.SumAmount)
		buckets[BucketAmountMismatch] = append(buckets[BucketAmountMismatch], row)
	}
	for _, entry := range res.NotInStatement {
		buckets[BucketNotInStatement] = append(buckets[BucketNotInStatement], ledgerEntryRow(entry))
	}
	for _, s := range res.NotInLedger {
		buckets[BucketNotInLedger] = append(buckets[BucketNotInLedger], settlementRow(s))
	}

	credits := 0
	for _, entry := range entries {
		if strings.EqualFold(strings.TrimSpace(entry.Type), "credit") {
			credits++
		}
	}
	out := &domain.LedgerReconciliation{
		RunID: runID,
		Rail:  railName,
		Counts: domain.LedgerCounts{
			LedgerCount:       len(entries),
			StatementCount:    len(settlements),
			MatchedCount:      matchedRows,
			FailedCount:       len(res.NotInStatement) + len(res.NotInLedger),
			LedgerCreditCount: credits,
		},
		Buckets: buckets,
	}
	if len(res.NotInStatement) == 0 && len(res.NotInLedger) == 0 && len(res.AmountMismatch) == 0 {
		out.Message = domain.MsgLedgerClean
	}
	log.Info("vendor ledger reconciliation finished",
		zap.Int("matched_groups", len(res.Matched)),
		zap.Int("amount_mismatch", len(res.AmountMismatch)),
		zap.Int("not_in_statement", len(res.NotInStatement)),
		zap.Int("not_in_ledger", len(res.NotInLedger)))
	return out
}

// RunStatement reconciles a reference-keyed vendor ledger against its statement.
func (e *Engine) RunStatement(runID, railName string, ledger, statement []domain.KeyedEntry) *domain.LedgerReconciliation {
	log := e.logger.With(zap.String("run_id", runID), zap.String("rail", railName))

	res, credits := MatchStatement(ledger, statement)
	buckets := map[string][]domain.Row{
		BucketMatching:       {},
		BucketAmountMismatch: {},
		BucketNotInStatement: {},
		BucketNotInLedger:    {},
		BucketLedgerCredits:  {},
	}
	for i := range res.Matched {
		m := res.Matched[i]
		buckets[BucketMatching] = append(buckets[BucketMatching], keyedRow(&m.Ledger, &m.Statement))
	}
	for i := range res.AmountMismatch {
		m := res.AmountMismatch[i]
		buckets[BucketAmountMismatch] = append(buckets[BucketAmountMismatch], keyedRow(&m.Ledger, &m.Statement))
	}
	for i := range res.NotInStatement {
		buckets[BucketNotInStatement] = append(buckets[BucketNotInStatement], keyedRow(&res.NotInStatement[i], nil))
	}
	for i := range res.NotInLedger {
		buckets[BucketNotInLedger] = append(buckets[BucketNotInLedger], keyedRow(nil, &res.NotInLedger[i]))
	}
	for i := range credits {
		buckets[BucketLedgerCredits] = append(buckets[BucketLedgerCredits], keyedRow(&credits[i], nil))
	}

	out := &domain.LedgerReconciliation{
		RunID: runID,
		Rail:  railName,
		Counts: domain.LedgerCounts{
			LedgerCount:       len(ledger),
			StatementCount:    len(statement),
			MatchedCount:      len(res.Matched),
			FailedCount:       len(res.NotInStatement) + len(res.NotInLedger) + len(res.AmountMismatch),
			LedgerCreditCount: len(credits),
		},
		Buckets: buckets,
	}
	if len(res.NotInStatement) == 0 && len(res.NotInLedger) == 0 && len(res.AmountMismatch) == 0 {
		out.Message = domain.MsgLedgerClean
	}
	log.Info("vendor statement reconciliation finished",
		zap.Int("matched", len(res.Matched)),
		zap.Int("amount_mismatch", len(res.AmountMismatch)),
		zap.Int("not_in_statement", len(res.NotInStatement)),
		zap.Int("not_in_ledger", len(res.NotInLedger)))
	return out
}
