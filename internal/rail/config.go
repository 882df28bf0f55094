package rail

import (
	"fmt"
	"strings"
)

// LedgerMode selects how a rail's vendor ledger is reconciled against its statement.
type LedgerMode string

const (
	LedgerNone     LedgerMode = ""
	LedgerSequence LedgerMode = "sequence"
	LedgerKeyed    LedgerMode = "keyed"
)

// Flow selects how matched Hub and vendor records are judged.
type Flow string

const (
	// FlowStatus classifies matched pairs by their Hub and vendor statuses.
	FlowStatus Flow = ""
	// FlowPresence only checks that each reference exists on both sides;
	// vendor-only references are looked up on the Hub again without a window.
	FlowPresence Flow = "presence"
)

// StatusRule maps a vendor status by substring instead of a lookup table.
type StatusRule struct {
	Contains string `yaml:"contains"`
	Then     string `yaml:"then"`
	Else     string `yaml:"else"`
}

// Slice keeps runes [Start, End) of a reference. End 0 means to the end.
type Slice struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// KeyedLedger describes the columns of a reference-keyed vendor ledger and statement.
type KeyedLedger struct {
	LedgerReference    string `yaml:"ledger_reference"`
	LedgerAmount       string `yaml:"ledger_amount"`
	LedgerCredit       string `yaml:"ledger_credit"`
	LedgerDate         string `yaml:"ledger_date"`
	LedgerPrefix       string `yaml:"ledger_prefix"`
	StatementReference string `yaml:"statement_reference"`
	StatementAmount    string `yaml:"statement_amount"`
	StatementDate      string `yaml:"statement_date"`
}

// Config is the immutable description of one payment rail.
type Config struct {
	Name string `yaml:"name"`

	// Vendor report layout.
	Columns         map[string]string            `yaml:"columns"`
	ColumnsByType   map[string]map[string]string `yaml:"columns_by_type"`
	RequiredColumns []string                     `yaml:"required_columns"`
	AmountColumn    string                       `yaml:"amount_column"`
	DateLayouts     []string                     `yaml:"date_layouts"`
	DayFirst        bool                         `yaml:"day_first"`
	ReferenceSlice  *Slice                       `yaml:"reference_slice"`

	// Status tables.
	HubStatusCodes     map[string]string `yaml:"hub_status_codes"`
	ServiceStatusCodes map[string]string `yaml:"service_status_codes"`
	VendorStatusCodes  map[string]string `yaml:"vendor_status_codes"`
	VendorStatusRule   *StatusRule       `yaml:"vendor_status_rule"`
	TenantNames        map[string]string `yaml:"tenant_names"`

	CountTimedOutAsFailed bool `yaml:"count_timed_out_as_failed"`
	Flow                  Flow `yaml:"flow"`

	// Hub source query; $1 and $2 are bound to the window bounds.
	HubQuery string `yaml:"hub_query"`
	// Hub lookup query of a presence rail; $1 is bound to the references.
	HubLookupQuery string `yaml:"hub_lookup_query"`

	Ledger      LedgerMode   `yaml:"ledger_mode"`
	KeyedLedger *KeyedLedger `yaml:"keyed_ledger"`
}

// RenameFor returns the column renames to apply for a transaction type.
func (c Config) RenameFor(txnType string) map[string]string {
	if cols, ok := c.ColumnsByType[txnType]; ok && txnType != "" {
		return cols
	}
	return c.Columns
}

// StatusColumn is the rail-specific service status column name in output rows.
func (c Config) StatusColumn() string {
	return c.Name + "_STATUS"
}

// SliceReference applies ReferenceSlice to ref, clamping out-of-range bounds.
func (c Config) SliceReference(ref string) string {
	if c.ReferenceSlice == nil {
		return ref
	}
	r := []rune(ref)
	start, end := c.ReferenceSlice.Start, c.ReferenceSlice.End
	if end <= 0 || end > len(r) {
		end = len(r)
	}
	if start < 0 {
		start = 0
	}
	if start >= end {
		return ""
	}
	return string(r[start:end])
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("rail without name")
	}
	if len(c.RequiredColumns) == 0 {
		return fmt.Errorf("rail %s: no required columns", c.Name)
	}
	switch c.Ledger {
	case LedgerNone, LedgerSequence:
	case LedgerKeyed:
		if c.KeyedLedger == nil {
			return fmt.Errorf("rail %s: keyed ledger mode without keyed_ledger columns", c.Name)
		}
	default:
		return fmt.Errorf("rail %s: unknown ledger mode %q", c.Name, c.Ledger)
	}
	switch c.Flow {
	case FlowStatus, FlowPresence:
	default:
		return fmt.Errorf("rail %s: unknown flow %q", c.Name, c.Flow)
	}
	if c.VendorStatusRule != nil && c.VendorStatusRule.Contains == "" {
		return fmt.Errorf("rail %s: vendor status rule without contains", c.Name)
	}
	return nil
}
