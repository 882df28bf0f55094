package recon

import (
	"strconv"
	"time"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
)

// Output columns of reconciliation rows.
const (
	ColCategory           = "CATEGORY"
	ColVendorDate         = "VENDOR_DATE"
	ColTenantID           = "TENANT_ID"
	ColHubReference       = "IHUB_REFERENCE"
	ColReference          = "REFID"
	ColUsername           = "IHUB_USERNAME"
	ColAmount             = "AMOUNT"
	ColCommissionAmount   = "COMMISSION_AMOUNT"
	ColVendorAmount       = "VENDOR_AMOUNT"
	ColVendorStatus       = "VENDOR_STATUS"
	ColHubStatus          = "IHUB_MASTER_STATUS"
	ColServiceDate        = "SERVICE_DATE"
	ColLedgerStatus       = "IHUB_LEDGER_STATUS"
	ColBillFetchStatus    = "BILL_FETCH_STATUS"
	ColTenantLedgerStatus = "TENANT_LEDGER_STATUS"
	ColTransactionCredit  = "TRANSACTION_CREDIT"
	ColTransactionDebit   = "TRANSACTION_DEBIT"
	ColCommissionCredit   = "COMMISSION_CREDIT"
	ColCommissionReversal = "COMMISSION_REVERSAL"
	ColDataQuality        = "DATA_QUALITY"
)

const dateLayout = "2006-01-02"

func renderString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func renderText(s string) any {
	if IsNullish(s) {
		return nil
	}
	return s
}

func renderDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

func renderStatus(s domain.Status) any {
	if s.IsEmpty() {
		return nil
	}
	return s.Label
}

func renderFlag(f domain.Flag) any {
	if f == domain.FlagUnknown {
		return nil
	}
	return f.String()
}

func renderConfirmed(b bool) any {
	if b {
		return domain.FlagYes.String()
	}
	return domain.FlagNo.String()
}

// rowRenderer flattens records into output rows with a fixed column set.
type rowRenderer struct {
	statusCol string
}

func newRowRenderer(cfg rail.Config) rowRenderer {
	return rowRenderer{statusCol: cfg.StatusColumn()}
}

func (r rowRenderer) blank(cat domain.Category) domain.Row {
	return domain.Row{
		ColCategory:           string(cat),
		ColVendorDate:         nil,
		ColTenantID:           nil,
		ColHubReference:       nil,
		ColReference:          nil,
		ColUsername:           nil,
		ColAmount:             nil,
		ColCommissionAmount:   nil,
		ColVendorAmount:       nil,
		ColVendorStatus:       nil,
		ColHubStatus:          nil,
		r.statusCol:           nil,
		ColServiceDate:        nil,
		ColLedgerStatus:       nil,
		ColBillFetchStatus:    nil,
		ColTenantLedgerStatus: nil,
		ColTransactionCredit:  nil,
		ColTransactionDebit:   nil,
		ColCommissionCredit:   nil,
		ColCommissionReversal: nil,
		ColDataQuality:        nil,
	}
}

func (r rowRenderer) fillHub(row domain.Row, h domain.HubRecord) {
	row[ColTenantID] = renderString(h.TenantID)
	row[ColHubReference] = renderString(h.HubReference)
	row[ColReference] = renderString(h.ReferenceKey)
	row[ColUsername] = renderString(h.Username)
	row[ColAmount] = renderAmount(h.Amount)
	row[ColCommissionAmount] = renderAmount(h.CommissionAmount)
	row[ColHubStatus] = renderStatus(h.Status)
	row[r.statusCol] = renderStatus(h.RailStatus)
	row[ColServiceDate] = renderDate(h.ServiceDate)
	row[ColLedgerStatus] = renderConfirmed(h.LedgerConfirmed)
	row[ColBillFetchStatus] = renderFlag(h.BillFetch)
	row[ColTenantLedgerStatus] = renderFlag(h.TenantLedger)
	row[ColTransactionCredit] = renderFlag(h.Ledger.TransactionCredit)
	row[ColTransactionDebit] = renderFlag(h.Ledger.TransactionDebit)
	row[ColCommissionCredit] = renderFlag(h.Ledger.CommissionCredit)
	row[ColCommissionReversal] = renderFlag(h.Ledger.CommissionReversal)
	if h.DataQuality != "" {
		row[ColDataQuality] = h.DataQuality
	}
}

func (r rowRenderer) fillVendor(row domain.Row, v domain.VendorRecord) {
	for k, val := range v.Extra {
		if _, taken := row[k]; !taken {
			row[k] = renderText(val)
		}
	}
	row[ColReference] = renderString(v.ReferenceKey)
	row[ColVendorDate] = renderDate(v.VendorDate)
	row[ColVendorAmount] = renderAmount(v.VendorAmount)
	row[ColVendorStatus] = renderStatus(v.Status)
	if v.DataQuality != "" {
		row[ColDataQuality] = v.DataQuality
	}
}

func (r rowRenderer) hub(h domain.HubRecord, cat domain.Category) domain.Row {
	row := r.blank(cat)
	r.fillHub(row, h)
	return row
}

func (r rowRenderer) vendor(v domain.VendorRecord, cat domain.Category) domain.Row {
	row := r.blank(cat)
	r.fillVendor(row, v)
	row[ColAmount] = row[ColVendorAmount]
	return row
}

func (r rowRenderer) pair(p domain.MatchedPair, cat domain.Category) domain.Row {
	row := r.blank(cat)
	r.fillVendor(row, p.Vendor)
	r.fillHub(row, p.Hub)
	return row
}

// Vendor ledger output columns.
const (
	ColSettledID           = "SETTLED_ID"
	ColCommissionSNO       = "COMMISSION_SNO"
	ColSerialNumber        = "SERIALNUMBER"
	ColAckNo               = "ACKNO"
	ColUTR                 = "UTR"
	ColAmountLedger        = "AMOUNT_LEDGER"
	ColAmountStatement     = "AMOUNT_STATEMENT"
	ColCommissionStatement = "COMMISSION_STATEMENT"
	ColCommissionLedger    = "COMMISSION_LEDGER"
	ColSumAmount           = "SUM_AMOUNT"
	ColType                = "TYPE"
	ColStatus              = "STATUS"
	ColDate                = "DATE"
	ColTransRefID          = "TRANS_REF_ID"
)

func settlementRow(s domain.Settlement) domain.Row {
	return domain.Row{
		ColSettledID:           strconv.FormatInt(s.SettledID, 10),
		ColSerialNumber:        renderText(s.SerialNumber),
		ColAckNo:               renderText(s.AckNo),
		ColUTR:                 renderText(s.UTR),
		ColAmountStatement:     RoundAmount(s.Amount),
		ColCommissionStatement: renderAmount(s.Commission),
		ColStatus:              renderText(s.Status),
		ColDate:                renderDate(s.Date),
	}
}

func ledgerEntryRow(e domain.LedgerEntry) domain.Row {
	return domain.Row{
		ColSettledID:    strconv.FormatInt(e.SNO, 10),
		ColAmountLedger: RoundAmount(e.Amount),
		ColType:         renderText(e.Type),
		ColDate:         renderDate(e.Date),
	}
}

func keyedRow(ledger, statement *domain.KeyedEntry) domain.Row {
	row := domain.Row{
		ColTransRefID:      nil,
		ColAmountLedger:    nil,
		ColAmountStatement: nil,
		ColDate:            nil,
	}
	if statement != nil {
		row[ColTransRefID] = statement.Reference
		row[ColAmountStatement] = renderAmount(statement.Amount)
		row[ColDate] = renderDate(statement.Date)
	}
	if ledger != nil {
		row[ColTransRefID] = ledger.Reference
		row[ColAmountLedger] = renderAmount(ledger.Amount)
		if ledger.Date != nil {
			row[ColDate] = renderDate(ledger.Date)
		}
	}
	return row
}
