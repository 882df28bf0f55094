package recon

import (
	"fmt"
	"sort"
)

// AnomalyKind classifies a data-quality problem found during a run.
type AnomalyKind string

const (
	AnomalyDuplicateReference AnomalyKind = "DUPLICATE_REFERENCE"
	AnomalyBadDate            AnomalyKind = "UNPARSABLE_DATE"
	AnomalyBadAmount          AnomalyKind = "UNPARSABLE_AMOUNT"
	AnomalyUnmappedStatus     AnomalyKind = "UNMAPPED_STATUS"
	AnomalyLedgerEmpty        AnomalyKind = "LEDGER_SUMMARY_EMPTY"
	AnomalyLedgerDuplicate    AnomalyKind = "LEDGER_DUPLICATE_ROW"
	AnomalyLedgerNoReference  AnomalyKind = "LEDGER_ROW_WITHOUT_REFERENCE"
)

// Record sides.
const (
	SideHub    = "hub"
	SideVendor = "vendor"
	SideLedger = "ledger"
)

// Anomaly is one data-quality observation. Position is the 0-based input row.
type Anomaly struct {
	Kind     AnomalyKind
	Side     string
	Position int
	Value    string
}

// Summarize collapses anomalies into one note per kind and side, in a stable order.
func Summarize(anomalies []Anomaly) []string {
	type group struct {
		kind  AnomalyKind
		side  string
		count int
		first Anomaly
	}
	groups := make(map[string]*group)
	for _, a := range anomalies {
		k := string(a.Kind) + "/" + a.Side
		g, ok := groups[k]
		if !ok {
			g = &group{kind: a.Kind, side: a.Side, first: a}
			groups[k] = g
		}
		g.count++
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	notes := make([]string, 0, len(keys))
	for _, k := range keys {
		g := groups[k]
		if g.first.Position < 0 {
			notes = append(notes, fmt.Sprintf("%s: %d %s occurrence(s), first %q", g.kind, g.count, g.side, g.first.Value))
			continue
		}
		notes = append(notes, fmt.Sprintf("%s: %d %s row(s), first at row %d (%q)", g.kind, g.count, g.side, g.first.Position+1, g.first.Value))
	}
	return notes
}
