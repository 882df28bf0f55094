package recon

import "payhub-reconciliation/internal/domain"

// MatchStatement reconciles a vendor ledger against its statement on a
// shared reference. Credit entries of the ledger are returned separately and
// take no part in matching. Repeated references pair positionally, as in Match.
func MatchStatement(ledger, statement []domain.KeyedEntry) (res domain.StatementResult, credits []domain.KeyedEntry) {
	byRef := make(map[string][]int)
	for i, s := range statement {
		byRef[s.Reference] = append(byRef[s.Reference], i)
	}

	used := make([]bool, len(statement))
	consumed := make(map[string]int)
	for _, l := range ledger {
		if l.Credit {
			credits = append(credits, l)
			continue
		}
		queue := byRef[l.Reference]
		n := consumed[l.Reference]
		if n >= len(queue) {
			res.NotInStatement = append(res.NotInStatement, l)
			continue
		}
		consumed[l.Reference] = n + 1
		used[queue[n]] = true
		m := domain.KeyedMatch{Ledger: l, Statement: statement[queue[n]]}
		if sameAmount(l, m.Statement) {
			res.Matched = append(res.Matched, m)
		} else {
			res.AmountMismatch = append(res.AmountMismatch, m)
		}
	}

	for i, s := range statement {
		if !used[i] {
			res.NotInLedger = append(res.NotInLedger, s)
		}
	}
	return res, credits
}

func sameAmount(a, b domain.KeyedEntry) bool {
	if a.Amount == nil || b.Amount == nil {
		return a.Amount == nil && b.Amount == nil
	}
	return a.Amount.Equal(*b.Amount)
}
