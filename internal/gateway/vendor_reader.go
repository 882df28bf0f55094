package gateway

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
	"payhub-reconciliation/internal/recon"
)

// FileReader reads vendor reports, vendor ledgers and vendor statements.
type FileReader struct {
	logger *zap.Logger
}

// NewFileReader creates a new reader instance.
func NewFileReader(logger *zap.Logger) *FileReader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileReader{logger: logger}
}

func (r *FileReader) table(ctx context.Context, file domain.Upload) (*Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t, err := ReadTable(file.Name, file.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", file.Name, err)
	}
	return t, nil
}

func missingColumns(name string, missing []string) error {
	return fmt.Errorf("%w: %s lacks %s", domain.ErrMissingColumn, name, strings.Join(missing, ", "))
}

// ReadVendorRows reads a vendor report and renames its columns for the rail
// and transaction type. The rail's required columns are checked before renaming.
func (r *FileReader) ReadVendorRows(ctx context.Context, file domain.Upload, cfg rail.Config, txnType string) ([]domain.RawVendorRow, error) {
	t, err := r.table(ctx, file)
	if err != nil {
		return nil, err
	}
	if missing := t.Missing(cfg.RequiredColumns...); len(missing) > 0 {
		return nil, missingColumns(file.Name, missing)
	}

	renames := cfg.RenameFor(txnType)
	rows := make([]domain.RawVendorRow, 0, len(t.Rows))
	for _, rec := range t.Records() {
		row := domain.RawVendorRow{Extra: make(map[string]string)}
		for col, val := range rec {
			target := col
			if to, ok := renames[col]; ok {
				target = to
			}
			switch target {
			case recon.ColReference:
				row.Reference = val
			case recon.ColVendorStatus:
				row.Status = val
			case recon.ColVendorDate:
				row.Date = val
			case recon.ColVendorAmount:
				row.Amount = val
			default:
				row.Extra[target] = val
			}
			if cfg.AmountColumn != "" && target == cfg.AmountColumn {
				row.Amount = val
			}
		}
		rows = append(rows, row)
	}

	r.logger.Debug("vendor report read",
		zap.String("file", file.Name),
		zap.String("rail", cfg.Name),
		zap.Int("rows", len(rows)))
	return rows, nil
}

// ReadSettlements reads a sequence-numbered vendor statement. Header names
// are matched case-insensitively.
func (r *FileReader) ReadSettlements(ctx context.Context, file domain.Upload) ([]domain.Settlement, error) {
	t, err := r.table(ctx, file)
	if err != nil {
		return nil, err
	}
	t.UpperHeader()
	if missing := t.Missing("SETTLED_ID", "AMOUNT"); len(missing) > 0 {
		return nil, missingColumns(file.Name, missing)
	}

	var out []domain.Settlement
	for i, rec := range t.Records() {
		if recon.IsNullish(rec["SETTLED_ID"]) {
			continue
		}
		id, err := parseSequence(rec["SETTLED_ID"])
		if err != nil {
			return nil, fmt.Errorf("could not parse SETTLED_ID '%s' on row %d: %w", rec["SETTLED_ID"], i+2, err)
		}
		commission, _ := recon.ParseAmount(firstOf(rec, "COMMISSION", "NET COMMISSION", "COMM"))
		out = append(out, domain.Settlement{
			SettledID:    id,
			SerialNumber: rec["SERIALNUMBER"],
			AckNo:        rec["ACKNO"],
			UTR:          rec["UTR"],
			Status:       rec["STATUS"],
			Amount:       amountOrZero(rec["AMOUNT"]),
			Commission:   commission,
			Date:         recon.ParseDate(rec["DATE"], nil, false),
		})
	}
	return out, nil
}

// ReadLedgerEntries reads a sequence-numbered vendor ledger.
func (r *FileReader) ReadLedgerEntries(ctx context.Context, file domain.Upload) ([]domain.LedgerEntry, error) {
	t, err := r.table(ctx, file)
	if err != nil {
		return nil, err
	}
	t.UpperHeader()
	if missing := t.Missing("SNO", "AMOUNT"); len(missing) > 0 {
		return nil, missingColumns(file.Name, missing)
	}

	var out []domain.LedgerEntry
	for i, rec := range t.Records() {
		if recon.IsNullish(rec["SNO"]) {
			continue
		}
		sno, err := parseSequence(rec["SNO"])
		if err != nil {
			return nil, fmt.Errorf("could not parse SNO '%s' on row %d: %w", rec["SNO"], i+2, err)
		}
		out = append(out, domain.LedgerEntry{
			SNO:    sno,
			Amount: amountOrZero(rec["AMOUNT"]),
			Type:   rec["TYPE"],
			Date:   recon.ParseDate(rec["DATE"], nil, false),
		})
	}
	return out, nil
}

// ReadKeyedLedger reads a reference-keyed vendor ledger. Rows without a
// reference, or whose reference lacks the configured prefix, are skipped.
// A row with a value in the credit column is a credit entry carrying that amount.
func (r *FileReader) ReadKeyedLedger(ctx context.Context, file domain.Upload, cols rail.KeyedLedger) ([]domain.KeyedEntry, error) {
	t, err := r.table(ctx, file)
	if err != nil {
		return nil, err
	}
	if missing := t.Missing(cols.LedgerReference, cols.LedgerAmount); len(missing) > 0 {
		return nil, missingColumns(file.Name, missing)
	}

	var out []domain.KeyedEntry
	skipped := 0
	for _, rec := range t.Records() {
		ref := cleanReference(rec[cols.LedgerReference])
		if ref == "" || !strings.HasPrefix(ref, cols.LedgerPrefix) {
			skipped++
			continue
		}
		e := domain.KeyedEntry{
			Reference: ref,
			Date:      recon.ParseDate(rec[cols.LedgerDate], nil, true),
			Extra:     rec,
		}
		if cols.LedgerCredit != "" && !recon.IsNullish(rec[cols.LedgerCredit]) {
			e.Credit = true
			e.Amount, _ = recon.ParseAmount(rec[cols.LedgerCredit])
		} else {
			e.Amount, _ = recon.ParseAmount(rec[cols.LedgerAmount])
		}
		out = append(out, e)
	}
	if skipped > 0 {
		r.logger.Debug("ledger rows skipped", zap.String("file", file.Name), zap.Int("rows", skipped))
	}
	return out, nil
}

// ReadKeyedStatement reads the statement side of a reference-keyed vendor ledger.
func (r *FileReader) ReadKeyedStatement(ctx context.Context, file domain.Upload, cols rail.KeyedLedger) ([]domain.KeyedEntry, error) {
	t, err := r.table(ctx, file)
	if err != nil {
		return nil, err
	}
	if missing := t.Missing(cols.StatementReference, cols.StatementAmount); len(missing) > 0 {
		return nil, missingColumns(file.Name, missing)
	}

	out := make([]domain.KeyedEntry, 0, len(t.Rows))
	for _, rec := range t.Records() {
		amount, _ := recon.ParseAmount(rec[cols.StatementAmount])
		out = append(out, domain.KeyedEntry{
			Reference: cleanReference(rec[cols.StatementReference]),
			Amount:    amount,
			Date:      recon.ParseDate(rec[cols.StatementDate], nil, true),
			Extra:     rec,
		})
	}
	return out, nil
}

func firstOf(rec map[string]string, cols ...string) string {
	for _, c := range cols {
		if v, ok := rec[c]; ok {
			return v
		}
	}
	return ""
}

func amountOrZero(raw string) decimal.Decimal {
	d, _ := recon.ParseAmount(raw)
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// parseSequence accepts integral sequence numbers, also in spreadsheet float form.
func parseSequence(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not an integer")
	}
	return int64(f), nil
}

// cleanReference turns numeric references stored as floats ("1.23E+11",
// "4567.0") back into their digits. Other values are only trimmed.
func cleanReference(raw string) string {
	s := strings.TrimSpace(raw)
	if recon.IsNullish(s) {
		return ""
	}
	if !strings.ContainsAny(s, ".eE") {
		return s
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= 1e18 {
		return s
	}
	return strconv.FormatFloat(f, 'f', 0, 64)
}
