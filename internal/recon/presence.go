package recon

import (
	"go.uber.org/zap"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
)

// VendorOnlyKeys returns, in first-seen order, the reference keys of vendor
// rows that no Hub row of the window carries.
func VendorOnlyKeys(cfg rail.Config, hub []domain.RawHubRow, vendor []domain.RawVendorRow) []string {
	canon := NewCanonicalizer(cfg)
	p := Match(canon.Hub(hub), canon.Vendor(vendor))

	seen := make(map[string]bool, len(p.NotInPortal))
	var keys []string
	for _, v := range p.NotInPortal {
		if v.ReferenceKey == nil || seen[*v.ReferenceKey] {
			continue
		}
		seen[*v.ReferenceKey] = true
		keys = append(keys, *v.ReferenceKey)
	}
	return keys
}

// AggregatePresence assembles the buckets and counts of a presence run.
// window is the Matcher output over the window's Hub records; recheck pairs
// the vendor-only records of window with the Hub records found outside it.
func AggregatePresence(cfg rail.Config, window, recheck Partition, hubCount, vendorCount int) *domain.ReconciliationResult {
	render := newRowRenderer(cfg)
	buckets := map[domain.Category][]domain.Row{
		domain.CategoryNotInVendor:      {},
		domain.CategoryNotInPortal:      {},
		domain.CategoryInPortalDiffDate: {},
		domain.CategoryMatched:          {},
	}
	for _, h := range window.NotInVendor {
		buckets[domain.CategoryNotInVendor] = append(buckets[domain.CategoryNotInVendor], render.hub(h, domain.CategoryNotInVendor))
	}
	for _, v := range recheck.NotInPortal {
		buckets[domain.CategoryNotInPortal] = append(buckets[domain.CategoryNotInPortal], render.vendor(v, domain.CategoryNotInPortal))
	}
	for _, pair := range recheck.Matched {
		buckets[domain.CategoryInPortalDiffDate] = append(buckets[domain.CategoryInPortalDiffDate], render.pair(pair, domain.CategoryInPortalDiffDate))
	}
	for _, pair := range window.Matched {
		buckets[domain.CategoryMatched] = append(buckets[domain.CategoryMatched], render.pair(pair, domain.CategoryMatched))
	}

	result := &domain.ReconciliationResult{
		Rail: cfg.Name,
		Counts: domain.Counts{
			HubCount:     hubCount + len(recheck.Matched),
			VendorCount:  vendorCount,
			MatchedCount: len(window.Matched),
			SuccessCount: len(window.Matched) + len(recheck.Matched),
			FailedCount:  len(recheck.NotInPortal) + len(window.NotInVendor),
		},
		Buckets: buckets,
	}
	if len(window.NotInPortal) == 0 && len(window.NotInVendor) == 0 {
		result.Message = domain.MsgAllPresent
	}
	return result
}

// runPresence reconciles a rail whose vendor report carries no status:
// references present on both sides are settled and vendor-only references
// found among in.Recheck are reported as present on another date.
func (e *Engine) runPresence(log *zap.Logger, in Input) *domain.ReconciliationResult {
	canon := NewCanonicalizer(in.Rail)
	hubs := canon.Hub(in.Hub)
	vendors := canon.Vendor(in.Vendor)

	window := Match(hubs, vendors)
	recheck := Match(canon.Hub(in.Recheck), window.NotInPortal)

	anomalies := canon.Anomalies()
	for _, key := range window.Duplicates {
		log.Warn("duplicate reference key", zap.String("reference_key", key))
		anomalies = append(anomalies, Anomaly{Kind: AnomalyDuplicateReference, Side: "hub/vendor", Position: -1, Value: key})
	}

	result := AggregatePresence(in.Rail, window, recheck, len(hubs), len(vendors))
	result.RunID = in.RunID
	result.Notes = Summarize(anomalies)

	log.Info("presence reconciliation finished",
		zap.Int("hub_count", len(hubs)),
		zap.Int("vendor_count", len(vendors)),
		zap.Int("matched", len(window.Matched)),
		zap.Int("in_portal_diff_date", len(recheck.Matched)),
		zap.Int("not_in_vendor", len(window.NotInVendor)),
		zap.Int("not_in_portal", len(recheck.NotInPortal)))
	return result
}
