package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Flag is a tri-state ledger indicator.
type Flag int8

const (
	FlagUnknown Flag = iota
	FlagNo
	FlagYes
)

// ParseFlag reads "Yes"/"No" style values. Anything else is unknown.
func ParseFlag(raw string) Flag {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1":
		return FlagYes
	case "no", "n", "false", "0":
		return FlagNo
	}
	return FlagUnknown
}

// Or folds two flags: yes wins over no, no wins over unknown.
func (f Flag) Or(o Flag) Flag {
	if f == FlagYes || o == FlagYes {
		return FlagYes
	}
	if f == FlagNo || o == FlagNo {
		return FlagNo
	}
	return FlagUnknown
}

func (f Flag) String() string {
	switch f {
	case FlagYes:
		return "Yes"
	case FlagNo:
		return "No"
	}
	return ""
}

// LedgerFlags are the four wallet-ledger movement indicators of one transaction.
type LedgerFlags struct {
	TransactionCredit  Flag
	TransactionDebit   Flag
	CommissionCredit   Flag
	CommissionReversal Flag
}

// Or folds every flag of o into f.
func (f LedgerFlags) Or(o LedgerFlags) LedgerFlags {
	return LedgerFlags{
		TransactionCredit:  f.TransactionCredit.Or(o.TransactionCredit),
		TransactionDebit:   f.TransactionDebit.Or(o.TransactionDebit),
		CommissionCredit:   f.CommissionCredit.Or(o.CommissionCredit),
		CommissionReversal: f.CommissionReversal.Or(o.CommissionReversal),
	}
}

// AllNo returns flags set to "No" for every indicator.
func AllNo() LedgerFlags {
	return LedgerFlags{FlagNo, FlagNo, FlagNo, FlagNo}
}

// RawHubRow is a Hub transaction as returned by a rail's source query.
// Every value is textual; SQL NULL arrives as the empty string.
type RawHubRow struct {
	HubReference       string
	TenantID           string
	VendorReference    string
	Username           string
	MasterStatus       string
	ServiceStatus      string
	Amount             string
	CommissionAmount   string
	ServiceDate        string
	LedgerStatus       string
	TenantLedgerStatus string
	BillFetchStatus    string
}

// RawVendorRow is one line of a vendor settlement report after column renaming.
type RawVendorRow struct {
	Reference string
	Status    string
	Date      string
	Amount    string
	Extra     map[string]string
}

// RawLedgerRow is one wallet-ledger summary row as returned by the ledger query.
type RawLedgerRow struct {
	Reference          string
	InternalTxnID      string
	TransactionCredit  string
	TransactionDebit   string
	CommissionCredit   string
	CommissionReversal string
}

// HubRecord is a canonicalized Hub transaction.
type HubRecord struct {
	Position         int
	ReferenceKey     *string
	HubReference     *string
	TenantID         *string
	Username         *string
	Status           Status
	RailStatus       Status
	Amount           *decimal.Decimal
	CommissionAmount *decimal.Decimal
	ServiceDate      *time.Time
	LedgerConfirmed  bool
	TenantLedger     Flag
	BillFetch        Flag
	Ledger           LedgerFlags
	DataQuality      string
}

// VendorRecord is a canonicalized vendor settlement line.
type VendorRecord struct {
	Position     int
	ReferenceKey *string
	Status       Status
	VendorDate   *time.Time
	VendorAmount *decimal.Decimal
	Extra        map[string]string
	DataQuality  string
}

// LedgerSummaryRow is one wallet-ledger aggregate for a Hub reference.
// InternalTxnID is nil when the ledger could not resolve the transaction directly.
type LedgerSummaryRow struct {
	ReferenceKey  string
	InternalTxnID *string
	Flags         LedgerFlags
}

// MatchedPair is a Hub record joined 1:1 with a vendor record.
type MatchedPair struct {
	Hub      HubRecord
	Vendor   VendorRecord
	Category Category
}

// DateRange is an inclusive calendar-date window.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the calendar date of t lies inside the window.
func (r DateRange) Contains(t time.Time) bool {
	d := DateOnly(t)
	return !d.Before(DateOnly(r.From)) && !d.After(DateOnly(r.To))
}

// DateOnly truncates t to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
