package recon

import (
	"github.com/shopspring/decimal"

	"payhub-reconciliation/internal/domain"
)

// MatchCommission reconciles a sequence-numbered vendor ledger against its
// settlement statement.
//
// Settlements are grouped by SettledID and their amounts summed. A group is
// matched to the ledger entry whose SNO equals its SettledID; groups whose sum
// differs from the entry amount are amount mismatches. Ledger entries not
// referenced by any group are unexplained, except that an entry at SNO+1 of a
// matched entry is taken as that settlement's commission leg. Remaining
// entries are not in the statement; groups without a ledger entry are not in
// the ledger. When SNOs repeat, the first entry wins; dupSNOs lists the rest.
func MatchCommission(settlements []domain.Settlement, entries []domain.LedgerEntry) (res domain.CommissionResult, dupSNOs []int64) {
	type group struct {
		id    int64
		sum   decimal.Decimal
		items []domain.Settlement
	}
	groups := make(map[int64]*group)
	order := make([]int64, 0)
	for _, s := range settlements {
		g, ok := groups[s.SettledID]
		if !ok {
			g = &group{id: s.SettledID, sum: decimal.Zero}
			groups[s.SettledID] = g
			order = append(order, s.SettledID)
		}
		g.sum = g.sum.Add(s.Amount)
		g.items = append(g.items, s)
	}

	ledger := make(map[int64]domain.LedgerEntry, len(entries))
	ledgerOrder := make([]int64, 0, len(entries))
	for _, e := range entries {
		if _, ok := ledger[e.SNO]; ok {
			dupSNOs = append(dupSNOs, e.SNO)
			continue
		}
		ledger[e.SNO] = e
		ledgerOrder = append(ledgerOrder, e.SNO)
	}

	matchedAt := make(map[int64]int)
	for _, id := range order {
		g := groups[id]
		entry, ok := ledger[id]
		if !ok {
			res.NotInLedger = append(res.NotInLedger, g.items...)
			continue
		}
		if !g.sum.Equal(entry.Amount) {
			res.AmountMismatch = append(res.AmountMismatch, domain.AmountMismatch{SettledID: id, SumAmount: g.sum, Ledger: entry})
			continue
		}
		matchedAt[entry.SNO] = len(res.Matched)
		res.Matched = append(res.Matched, domain.SettlementMatch{SettledID: id, SumAmount: g.sum, Ledger: entry, Settlements: g.items})
	}

	for _, sno := range ledgerOrder {
		if _, settled := groups[sno]; settled {
			continue
		}
		entry := ledger[sno]
		if i, ok := matchedAt[sno-1]; ok {
			e := entry
			res.Matched[i].Commission = &e
			continue
		}
		res.NotInStatement = append(res.NotInStatement, entry)
	}
	return res, dupSNOs
}
