package recon

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
)

var nullSentinels = map[string]struct{}{
	"":     {},
	"nan":  {},
	"none": {},
	"null": {},
	"nat":  {},
	"<na>": {},
}

// IsNullish reports whether raw is one of the textual missing-value sentinels.
func IsNullish(raw string) bool {
	_, ok := nullSentinels[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// NormalizeKey trims a reference and returns nil when it is absent.
func NormalizeKey(raw string) *string {
	if IsNullish(raw) {
		return nil
	}
	k := strings.TrimSpace(raw)
	return &k
}

func optional(raw string) *string {
	return NormalizeKey(raw)
}

var (
	isoLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		"2006-01-02",
		"2006/01/02 15:04:05",
		"2006/01/02",
		"02-Jan-2006 15:04:05",
		"02-Jan-2006",
		"02 Jan 2006 15:04:05",
		"02 Jan 2006",
		"Jan 2, 2006",
		"2-Jan-06",
	}
	dayFirstLayouts = []string{
		"02/01/2006 15:04:05",
		"02/01/2006 15:04",
		"2/1/2006 15:04:05",
		"2/1/2006",
		"02/01/2006",
		"02-01-2006 15:04:05",
		"02-01-2006",
		"02-01-06",
	}
	monthFirstLayouts = []string{
		"01/02/2006 15:04:05",
		"01/02/2006 15:04",
		"1/2/2006 15:04:05",
		"1/2/2006",
		"01/02/2006",
		"01-02-2006 15:04:05",
		"01-02-2006",
		"01-02-06",
	}
)

// ParseDate parses raw permissively into a calendar date. Layouts are tried
// first, then ISO-like forms, then ambiguous numeric forms in day-first or
// month-first order, then spreadsheet serial numbers. It returns nil when
// nothing matches.
func ParseDate(raw string, layouts []string, dayFirst bool) *time.Time {
	s := strings.TrimSpace(raw)
	if IsNullish(s) {
		return nil
	}
	candidates := make([]string, 0, len(layouts)+len(isoLayouts)+len(dayFirstLayouts)+len(monthFirstLayouts))
	candidates = append(candidates, layouts...)
	candidates = append(candidates, isoLayouts...)
	if dayFirst {
		candidates = append(candidates, dayFirstLayouts...)
		candidates = append(candidates, monthFirstLayouts...)
	} else {
		candidates = append(candidates, monthFirstLayouts...)
		candidates = append(candidates, dayFirstLayouts...)
	}
	for _, layout := range candidates {
		if t, err := time.Parse(layout, s); err == nil {
			d := domain.DateOnly(t)
			return &d
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial >= 1 && serial < 2958466 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			d := domain.DateOnly(t)
			return &d
		}
	}
	return nil
}

var amountReplacer = strings.NewReplacer("₹", "", "Rs.", "", "INR", "", ",", "", " ", "", "\u00a0", "")

// ParseAmount parses a money amount, tolerating currency marks and thousands
// separators. ok is false when raw is present but not numeric.
func ParseAmount(raw string) (amount *decimal.Decimal, ok bool) {
	if IsNullish(raw) {
		return nil, true
	}
	d, err := decimal.NewFromString(amountReplacer.Replace(strings.TrimSpace(raw)))
	if err != nil {
		return nil, false
	}
	return &d, true
}

// MapStatus maps a raw status through a rail status table. Values missing
// from the table pass through unchanged; they are tagged unmapped when a
// table exists and the value is not a recognised status label.
func MapStatus(raw string, table map[string]string) domain.Status {
	s := strings.TrimSpace(raw)
	if label, ok := lookupStatus(table, s); ok {
		return domain.NewStatus(label, false)
	}
	if IsNullish(s) {
		return domain.Status{Canonical: domain.StatusUnknown}
	}
	unmapped := len(table) > 0 && !domain.IsKnownLabel(s)
	return domain.NewStatus(s, unmapped)
}

func lookupStatus(table map[string]string, s string) (string, bool) {
	if label, ok := table[s]; ok {
		return label, true
	}
	// numeric codes may arrive as "1.0" from spreadsheets
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) {
		if label, ok := table[strconv.FormatInt(int64(f), 10)]; ok {
			return label, true
		}
	}
	for k, label := range table {
		if k != "" && strings.EqualFold(k, s) {
			return label, true
		}
	}
	return "", false
}

// ApplyRule maps a vendor status by substring match.
func ApplyRule(raw string, rule rail.StatusRule) domain.Status {
	if !IsNullish(raw) && strings.Contains(strings.ToLower(raw), strings.ToLower(rule.Contains)) {
		return domain.NewStatus(rule.Then, false)
	}
	return domain.NewStatus(rule.Else, false)
}

// Canonicalizer turns raw source rows of one rail into canonical records.
// It never fails; malformed fields degrade to null and are recorded as anomalies.
type Canonicalizer struct {
	cfg       rail.Config
	anomalies []Anomaly
}

// NewCanonicalizer creates a canonicalizer for a rail.
func NewCanonicalizer(cfg rail.Config) *Canonicalizer {
	return &Canonicalizer{cfg: cfg}
}

// Anomalies returns the data-quality anomalies seen so far.
func (c *Canonicalizer) Anomalies() []Anomaly {
	return c.anomalies
}

func (c *Canonicalizer) note(kind AnomalyKind, side string, pos int, value string) {
	c.anomalies = append(c.anomalies, Anomaly{Kind: kind, Side: side, Position: pos, Value: value})
}

func (c *Canonicalizer) amount(raw, side string, pos int) *decimal.Decimal {
	d, ok := ParseAmount(raw)
	if !ok {
		c.note(AnomalyBadAmount, side, pos, raw)
		zero := decimal.Zero
		return &zero
	}
	return d
}

func (c *Canonicalizer) date(raw, side string, pos int) *time.Time {
	d := ParseDate(raw, c.cfg.DateLayouts, c.cfg.DayFirst)
	if d == nil && !IsNullish(raw) {
		c.note(AnomalyBadDate, side, pos, raw)
	}
	return d
}

func (c *Canonicalizer) status(raw string, table map[string]string, side string, pos int) domain.Status {
	st := MapStatus(raw, table)
	if st.Unmapped {
		c.note(AnomalyUnmappedStatus, side, pos, raw)
	}
	return st
}

func (c *Canonicalizer) tenant(raw string) *string {
	t := optional(raw)
	if t == nil {
		return nil
	}
	if name, ok := c.cfg.TenantNames[*t]; ok {
		return &name
	}
	return t
}

// Hub canonicalizes Hub rows in input order.
func (c *Canonicalizer) Hub(rows []domain.RawHubRow) []domain.HubRecord {
	records := make([]domain.HubRecord, 0, len(rows))
	for i, r := range rows {
		records = append(records, domain.HubRecord{
			Position:         i,
			ReferenceKey:     NormalizeKey(r.VendorReference),
			HubReference:     optional(r.HubReference),
			TenantID:         c.tenant(r.TenantID),
			Username:         optional(r.Username),
			Status:           c.status(r.MasterStatus, c.cfg.HubStatusCodes, SideHub, i),
			RailStatus:       c.status(r.ServiceStatus, c.cfg.ServiceStatusCodes, SideHub, i),
			Amount:           c.amount(r.Amount, SideHub, i),
			CommissionAmount: c.amount(r.CommissionAmount, SideHub, i),
			ServiceDate:      c.date(r.ServiceDate, SideHub, i),
			LedgerConfirmed:  domain.ParseFlag(r.LedgerStatus) == domain.FlagYes,
			TenantLedger:     domain.ParseFlag(r.TenantLedgerStatus),
			BillFetch:        domain.ParseFlag(r.BillFetchStatus),
		})
	}
	return records
}

// Vendor canonicalizes vendor rows in input order.
func (c *Canonicalizer) Vendor(rows []domain.RawVendorRow) []domain.VendorRecord {
	records := make([]domain.VendorRecord, 0, len(rows))
	for i, r := range rows {
		var st domain.Status
		if c.cfg.VendorStatusRule != nil {
			st = ApplyRule(r.Status, *c.cfg.VendorStatusRule)
		} else {
			st = c.status(r.Status, c.cfg.VendorStatusCodes, SideVendor, i)
		}
		ref := r.Reference
		if !IsNullish(ref) {
			ref = c.cfg.SliceReference(strings.TrimSpace(ref))
		}
		records = append(records, domain.VendorRecord{
			Position:     i,
			ReferenceKey: NormalizeKey(ref),
			Status:       st,
			VendorDate:   c.date(r.Date, SideVendor, i),
			VendorAmount: c.amount(r.Amount, SideVendor, i),
			Extra:        r.Extra,
		})
	}
	return records
}

// Ledger canonicalizes ledger summary rows. Rows without a reference cannot
// be joined and are dropped.
func (c *Canonicalizer) Ledger(rows []domain.RawLedgerRow) []domain.LedgerSummaryRow {
	out := make([]domain.LedgerSummaryRow, 0, len(rows))
	for i, r := range rows {
		key := NormalizeKey(r.Reference)
		if key == nil {
			c.note(AnomalyLedgerNoReference, SideLedger, i, r.InternalTxnID)
			continue
		}
		out = append(out, domain.LedgerSummaryRow{
			ReferenceKey:  *key,
			InternalTxnID: optional(r.InternalTxnID),
			Flags: domain.LedgerFlags{
				TransactionCredit:  domain.ParseFlag(r.TransactionCredit),
				TransactionDebit:   domain.ParseFlag(r.TransactionDebit),
				CommissionCredit:   domain.ParseFlag(r.CommissionCredit),
				CommissionReversal: domain.ParseFlag(r.CommissionReversal),
			},
		})
	}
	return out
}
