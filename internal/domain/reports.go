package domain

// Row is one flat output record. Values are strings, json.Number or nil.
type Row map[string]any

// Counts provides the summary statistics of a reconciliation run.
type Counts struct {
	HubCount        int `json:"HUB_Value_count"`
	VendorCount     int `json:"Excel_value_count"`
	MatchedCount    int `json:"Matched_count"`
	MismatchedCount int `json:"Mismatched_count"`
	SuccessCount    int `json:"Total_Success_count"`
	FailedCount     int `json:"Total_Failed_count"`
}

// ReconciliationResult is the output of one Hub versus vendor run.
// When ShortCircuit is set, Buckets only carries the ledger-confirmed
// success and failure buckets and Message explains why.
type ReconciliationResult struct {
	RunID        string             `json:"run_id"`
	Rail         string             `json:"service_name"`
	Message      string             `json:"message,omitempty"`
	ShortCircuit bool               `json:"short_circuit"`
	Counts       Counts             `json:"counts"`
	Buckets      map[Category][]Row `json:"buckets"`
	Notes        []string           `json:"notes,omitempty"`
}

// IsEmpty reports whether neither side contributed any record.
func (r *ReconciliationResult) IsEmpty() bool {
	return r.Counts.HubCount == 0 && r.Counts.VendorCount == 0
}

// LedgerCounts summarises a vendor ledger versus statement run.
type LedgerCounts struct {
	LedgerCount       int `json:"ledger_count"`
	StatementCount    int `json:"statement_count"`
	MatchedCount      int `json:"matched_trans_count"`
	FailedCount       int `json:"failed_trans_count"`
	LedgerCreditCount int `json:"ledger_credit_count"`
}

// LedgerReconciliation is the rendered output of a vendor ledger run.
type LedgerReconciliation struct {
	RunID   string           `json:"run_id"`
	Rail    string           `json:"service_name"`
	Message string           `json:"message,omitempty"`
	Counts  LedgerCounts     `json:"counts"`
	Buckets map[string][]Row `json:"buckets"`
}

// OutcomeKind tells the caller which field of an Outcome is populated.
type OutcomeKind string

const (
	OutcomeResult      OutcomeKind = "result"
	OutcomeLedger      OutcomeKind = "ledger"
	OutcomeConfigError OutcomeKind = "config_error"
	OutcomeNoRecords   OutcomeKind = "no_records"
)

// User-facing outcome messages.
const (
	MsgUnknownRail  = "Service Name Error..!"
	MsgWrongFile    = "Wrong File Uploaded...!"
	MsgNoRecords    = "No records found within the given date range..!"
	MsgNoMismatch   = "Hurray there is no Mismatch values in your DataSet..!"
	MsgAllPresent   = "Hurray..! There is no mismatch Data Found."
	MsgLedgerClean  = "There is no mismatch between vendor ledger and statement..!"
	MsgNotSupported = "Service %s not supported."
)

// Outcome is what a reconciliation request yields when it does not fail:
// either a result or a descriptive message.
type Outcome struct {
	Kind    OutcomeKind           `json:"kind"`
	Message string                `json:"message,omitempty"`
	Result  *ReconciliationResult `json:"result,omitempty"`
	Ledger  *LedgerReconciliation `json:"ledger,omitempty"`
}

// MessageOutcome builds a message-only outcome.
func MessageOutcome(kind OutcomeKind, msg string) *Outcome {
	return &Outcome{Kind: kind, Message: msg}
}
