package gateway

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
)

// Querier is the part of a pgx pool the sources use.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// NewPool connects to Postgres and verifies the connection.
func NewPool(ctx context.Context, dsn string, maxConns int) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = int32(maxConns)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("could not reach database: %w", err)
	}
	return pool, nil
}

// defaultHubQuery serves rails without their own query; $3 is the rail name.
const defaultHubQuery = `
SELECT v.ihub_reference,
       v.tenant_id,
       v.vendor_reference,
       v.ihub_username,
       v.ihub_master_status,
       v.service_status,
       v.amount,
       v.commission_amount,
       v.service_date,
       v.ihub_ledger_status,
       v.tenant_ledger_status,
       v.bill_fetch_status
FROM ihubcore.reconciliation_hub_view v
WHERE v.service_name = $3
  AND v.service_date::date BETWEEN $1 AND $2`

// defaultHubLookupQuery finds Hub records by vendor reference; $1 is the
// reference array and $2 the rail name.
const defaultHubLookupQuery = `
SELECT v.ihub_reference,
       v.tenant_id,
       v.vendor_reference,
       v.ihub_username,
       v.ihub_master_status,
       v.service_status,
       v.amount,
       v.commission_amount,
       v.service_date,
       v.ihub_ledger_status,
       v.tenant_ledger_status,
       v.bill_fetch_status
FROM ihubcore.reconciliation_hub_view v
WHERE v.service_name = $2
  AND v.vendor_reference = ANY($1)`

// ledgerSummaryQuery folds the wallet postings of each Hub transaction into
// four Yes/No flags.
const ledgerSummaryQuery = `
SELECT mt.transaction_ref_num AS ihub_reference_id,
       ewt.master_transactions_id,
       MAX(CASE WHEN ewt.description IN ('Transaction - Credit', 'Transaction - Credit due to failure',
                                         'Transaction - Refund', 'Manual Refund Credit - Transaction - Credit')
                  OR LOWER(ewt.description) LIKE '%refund credit%'
                THEN 'Yes' ELSE 'No' END) AS transaction_credit,
       MAX(CASE WHEN ewt.description IN ('Transaction - Debit', 'Manual Refund Debit - Transaction - Debit')
                THEN 'Yes' ELSE 'No' END) AS transaction_debit,
       MAX(CASE WHEN ewt.description IN ('Commission Added', 'Manual Refund Credit - Commission - Added')
                THEN 'Yes' ELSE 'No' END) AS commission_credit,
       MAX(CASE WHEN ewt.description IN ('Commission - Reversal', 'Commission Reversal',
                                         'Manual Refund Debit - Commission - Reversal')
                THEN 'Yes' ELSE 'No' END) AS commission_reversal
FROM ihubcore.master_transaction mt
JOIN tenantinetcsc.ebo_wallet_transaction ewt ON mt.tenant_master_transaction_id = ewt.master_transactions_id
WHERE mt.creation_ts::date BETWEEN $1 AND $2
GROUP BY mt.transaction_ref_num, ewt.master_transactions_id`

// PostgresHubSource loads Hub records. It implements rail.HubFetcher.
type PostgresHubSource struct {
	db     Querier
	retry  RetryPolicy
	logger *zap.Logger
}

// NewPostgresHubSource creates a Hub source reading through db.
func NewPostgresHubSource(db Querier, retry RetryPolicy, logger *zap.Logger) *PostgresHubSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresHubSource{db: db, retry: retry, logger: logger}
}

// FetchHub returns the Hub records of a rail whose service date lies in window.
func (s *PostgresHubSource) FetchHub(ctx context.Context, cfg rail.Config, window domain.DateRange) ([]domain.RawHubRow, error) {
	query, args := cfg.HubQuery, []any{window.From, window.To}
	if strings.TrimSpace(query) == "" {
		query, args = defaultHubQuery, append(args, cfg.Name)
	}

	var out []domain.RawHubRow
	err := withRetry(ctx, s.retry, s.logger, "fetch hub records", func(ctx context.Context) error {
		recs, err := queryRecords(ctx, s.db, query, args...)
		if err != nil {
			return err
		}
		out = hubRows(recs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("hub records fetched", zap.String("rail", cfg.Name), zap.Int("rows", len(out)))
	return out, nil
}

// LookupHub returns the Hub records of a rail whose vendor reference is one
// of refs, whatever their service date.
func (s *PostgresHubSource) LookupHub(ctx context.Context, cfg rail.Config, refs []string) ([]domain.RawHubRow, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	query, args := cfg.HubLookupQuery, []any{refs}
	if strings.TrimSpace(query) == "" {
		query, args = defaultHubLookupQuery, append(args, cfg.Name)
	}

	var out []domain.RawHubRow
	err := withRetry(ctx, s.retry, s.logger, "look up hub records", func(ctx context.Context) error {
		recs, err := queryRecords(ctx, s.db, query, args...)
		if err != nil {
			return err
		}
		out = hubRows(recs)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("hub records looked up",
		zap.String("rail", cfg.Name),
		zap.Int("references", len(refs)),
		zap.Int("rows", len(out)))
	return out, nil
}

func hubRows(recs []map[string]string) []domain.RawHubRow {
	out := make([]domain.RawHubRow, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.RawHubRow{
			HubReference:       rec["ihub_reference"],
			TenantID:           rec["tenant_id"],
			VendorReference:    rec["vendor_reference"],
			Username:           rec["ihub_username"],
			MasterStatus:       rec["ihub_master_status"],
			ServiceStatus:      rec["service_status"],
			Amount:             rec["amount"],
			CommissionAmount:   rec["commission_amount"],
			ServiceDate:        rec["service_date"],
			LedgerStatus:       rec["ihub_ledger_status"],
			TenantLedgerStatus: rec["tenant_ledger_status"],
			BillFetchStatus:    rec["bill_fetch_status"],
		})
	}
	return out
}

// PostgresLedgerSource loads the wallet-ledger summary.
type PostgresLedgerSource struct {
	db     Querier
	retry  RetryPolicy
	logger *zap.Logger
}

// NewPostgresLedgerSource creates a ledger summary source reading through db.
func NewPostgresLedgerSource(db Querier, retry RetryPolicy, logger *zap.Logger) *PostgresLedgerSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresLedgerSource{db: db, retry: retry, logger: logger}
}

// FetchLedger returns one summary row per Hub transaction and internal
// transaction id created within window.
func (s *PostgresLedgerSource) FetchLedger(ctx context.Context, window domain.DateRange) ([]domain.RawLedgerRow, error) {
	var out []domain.RawLedgerRow
	err := withRetry(ctx, s.retry, s.logger, "fetch ledger summary", func(ctx context.Context) error {
		recs, err := queryRecords(ctx, s.db, ledgerSummaryQuery, window.From, window.To)
		if err != nil {
			return err
		}
		out = make([]domain.RawLedgerRow, 0, len(recs))
		for _, rec := range recs {
			out = append(out, domain.RawLedgerRow{
				Reference:          rec["ihub_reference_id"],
				InternalTxnID:      rec["master_transactions_id"],
				TransactionCredit:  rec["transaction_credit"],
				TransactionDebit:   rec["transaction_debit"],
				CommissionCredit:   rec["commission_credit"],
				CommissionReversal: rec["commission_reversal"],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		s.logger.Warn("ledger summary returned no rows",
			zap.Time("from", window.From),
			zap.Time("to", window.To))
	}
	return out, nil
}

// queryRecords runs sql and returns every row keyed by lower-cased column name.
func queryRecords(ctx context.Context, db Querier, sql string, args ...any) ([]map[string]string, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	var out []map[string]string
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := make(map[string]string, len(fields))
		for i, f := range fields {
			rec[strings.ToLower(f.Name)] = stringify(vals[i])
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// stringify renders a database value the way the Canonicalizer expects raw input.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil || dv == nil {
			return ""
		}
		return stringify(dv)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}
