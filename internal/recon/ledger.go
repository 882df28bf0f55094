package recon

import "payhub-reconciliation/internal/domain"

// FoldLedger reduces the ledger summary to at most one row per reference.
//
// When a reference has a row with a resolved internal transaction id and rows
// without one, the flags of the unresolved rows are OR-ed into the first
// resolved row and the unresolved rows are discarded. Otherwise the first row
// of the reference is kept unchanged. dropped lists the references for which
// additional rows were discarded without folding.
func FoldLedger(rows []domain.LedgerSummaryRow) (folded []domain.LedgerSummaryRow, dropped []string) {
	type group struct {
		resolved []domain.LedgerSummaryRow
		nulls    []domain.LedgerSummaryRow
	}
	groups := make(map[string]*group)
	order := make([]string, 0)
	for _, r := range rows {
		g, ok := groups[r.ReferenceKey]
		if !ok {
			g = &group{}
			groups[r.ReferenceKey] = g
			order = append(order, r.ReferenceKey)
		}
		if r.InternalTxnID != nil {
			g.resolved = append(g.resolved, r)
		} else {
			g.nulls = append(g.nulls, r)
		}
	}

	folded = make([]domain.LedgerSummaryRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		switch {
		case len(g.resolved) > 0 && len(g.nulls) > 0:
			base := g.resolved[0]
			for _, n := range g.nulls {
				base.Flags = base.Flags.Or(n.Flags)
			}
			folded = append(folded, base)
			if len(g.resolved) > 1 {
				dropped = append(dropped, key)
			}
		case len(g.resolved) > 0:
			folded = append(folded, g.resolved[0])
			if len(g.resolved) > 1 {
				dropped = append(dropped, key)
			}
		default:
			folded = append(folded, g.nulls[0])
			if len(g.nulls) > 1 {
				dropped = append(dropped, key)
			}
		}
	}
	return folded, dropped
}

// Enricher attaches wallet-ledger flags to Hub records.
type Enricher struct {
	byRef       map[string]domain.LedgerFlags
	sourceEmpty bool
}

// NewEnricher indexes folded ledger rows. An empty set means the ledger
// source returned nothing: every Hub record then gets "No" flags.
func NewEnricher(folded []domain.LedgerSummaryRow) *Enricher {
	e := &Enricher{byRef: make(map[string]domain.LedgerFlags, len(folded)), sourceEmpty: len(folded) == 0}
	for _, r := range folded {
		e.byRef[r.ReferenceKey] = r.Flags
	}
	return e
}

// SourceEmpty reports whether the ledger source returned no rows.
func (e *Enricher) SourceEmpty() bool { return e.sourceEmpty }

// Apply returns h with its ledger flags set. Hub records whose reference has
// no ledger row keep unknown flags.
func (e *Enricher) Apply(h domain.HubRecord) domain.HubRecord {
	if e.sourceEmpty {
		h.Ledger = domain.AllNo()
		return h
	}
	if h.HubReference == nil {
		return h
	}
	if flags, ok := e.byRef[*h.HubReference]; ok {
		h.Ledger = flags
	}
	return h
}

// EnrichPartition applies e to every Hub record of p.
func EnrichPartition(p *Partition, e *Enricher) {
	for i := range p.Matched {
		p.Matched[i].Hub = e.Apply(p.Matched[i].Hub)
	}
	for i := range p.NotInVendor {
		p.NotInVendor[i] = e.Apply(p.NotInVendor[i])
	}
}
