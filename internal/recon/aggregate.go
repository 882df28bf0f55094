package recon

import (
	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
)

// Aggregate assembles the category buckets and counts of a classified run.
// pairs must already carry their scenario category.
//
// When every mismatch bucket is empty the result is short-circuited: only
// the ledger-confirmed success and failure buckets are kept and Message
// carries the no-mismatch notice. Counts are always filled.
func Aggregate(cfg rail.Config, p Partition, pairs []domain.MatchedPair, hubCount, vendorCount int) *domain.ReconciliationResult {
	render := newRowRenderer(cfg)
	buckets := make(map[domain.Category][]domain.Row)
	for _, c := range domain.MismatchCategories {
		buckets[c] = []domain.Row{}
	}
	buckets[domain.CategoryVendIHubSuc] = []domain.Row{}
	buckets[domain.CategoryVendIHubFail] = []domain.Row{}
	buckets[domain.CategoryMatched] = []domain.Row{}
	buckets[domain.CategoryMismatched] = []domain.Row{}

	for _, h := range p.NotInVendor {
		buckets[domain.CategoryNotInVendor] = append(buckets[domain.CategoryNotInVendor], render.hub(h, domain.CategoryNotInVendor))
	}
	for _, v := range p.NotInPortal {
		buckets[domain.CategoryNotInPortal] = append(buckets[domain.CategoryNotInPortal], render.vendor(v, domain.CategoryNotInPortal))
	}

	mismatched := 0
	for _, pair := range pairs {
		buckets[domain.CategoryMatched] = append(buckets[domain.CategoryMatched], render.pair(pair, domain.CategoryMatched))
		if IsMismatched(pair) {
			mismatched++
			buckets[domain.CategoryMismatched] = append(buckets[domain.CategoryMismatched], render.pair(pair, domain.CategoryMismatched))
		}
		if pair.Category != domain.CategoryMatched {
			buckets[pair.Category] = append(buckets[pair.Category], render.pair(pair, pair.Category))
		}
	}

	tally := Count(pairs, cfg.CountTimedOutAsFailed)
	result := &domain.ReconciliationResult{
		Rail: cfg.Name,
		Counts: domain.Counts{
			HubCount:        hubCount,
			VendorCount:     vendorCount,
			MatchedCount:    len(pairs),
			MismatchedCount: mismatched,
			SuccessCount:    tally.Success,
			FailedCount:     tally.Failed,
		},
	}

	combined := make([]domain.Row, 0)
	for _, c := range domain.MismatchCategories {
		combined = append(combined, buckets[c]...)
	}
	if len(combined) == 0 {
		result.ShortCircuit = true
		result.Message = domain.MsgNoMismatch
		result.Buckets = map[domain.Category][]domain.Row{
			domain.CategoryVendIHubSuc:  buckets[domain.CategoryVendIHubSuc],
			domain.CategoryVendIHubFail: buckets[domain.CategoryVendIHubFail],
		}
		return result
	}
	buckets[domain.CategoryCombined] = combined
	result.Buckets = buckets
	return result
}
