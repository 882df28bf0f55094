package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement is one line of a vendor settlement statement for a
// sequence-numbered rail. SettledID refers to the ledger SNO it settles.
type Settlement struct {
	SettledID    int64
	SerialNumber string
	AckNo        string
	UTR          string
	Status       string
	Amount       decimal.Decimal
	Commission   *decimal.Decimal
	Date         *time.Time
}

// LedgerEntry is one vendor ledger posting identified by its sequence number.
type LedgerEntry struct {
	SNO    int64
	Amount decimal.Decimal
	Type   string
	Date   *time.Time
}

// SettlementMatch is a settled group whose summed amount equals its ledger
// posting. Commission is the posting at SNO+1 when one was found.
type SettlementMatch struct {
	SettledID   int64
	SumAmount   decimal.Decimal
	Ledger      LedgerEntry
	Commission  *LedgerEntry
	Settlements []Settlement
}

// AmountMismatch is a settled group whose summed amount differs from its ledger posting.
type AmountMismatch struct {
	SettledID int64
	SumAmount decimal.Decimal
	Ledger    LedgerEntry
}

// CommissionResult is the outcome of the sequence-adjacency ledger matcher.
type CommissionResult struct {
	Matched        []SettlementMatch
	AmountMismatch []AmountMismatch
	NotInStatement []LedgerEntry
	NotInLedger    []Settlement
}

// KeyedEntry is a ledger or statement line of a rail whose ledger and
// statement share a natural reference (RRN/UTR or a transaction ref id).
type KeyedEntry struct {
	Reference string
	Amount    *decimal.Decimal
	Credit    bool
	Date      *time.Time
	Extra     map[string]string
}

// KeyedMatch pairs a ledger entry with its statement entry.
type KeyedMatch struct {
	Ledger    KeyedEntry
	Statement KeyedEntry
}

// StatementResult is the outcome of the reference-keyed ledger matcher.
type StatementResult struct {
	Matched        []KeyedMatch
	AmountMismatch []KeyedMatch
	NotInStatement []KeyedEntry
	NotInLedger    []KeyedEntry
}
