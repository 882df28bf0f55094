package recon

import "payhub-reconciliation/internal/domain"

// Partition is the Matcher output. Every Hub record is either in Matched or
// NotInVendor, every vendor record either in Matched or NotInPortal.
type Partition struct {
	Matched     []domain.MatchedPair
	NotInVendor []domain.HubRecord
	NotInPortal []domain.VendorRecord
	// Duplicates lists keys repeated on either side, in first-seen order.
	Duplicates []string
}

// Match joins Hub and vendor records on their reference key.
//
// Records sharing a key are paired positionally in input order: the first Hub
// record with the first vendor record, the second with the second, and so on.
// Records left over on either side are routed to their unmatched bucket and
// tagged DUPLICATE_REFERENCE, so no pair is ever multiplied.
func Match(hubs []domain.HubRecord, vendors []domain.VendorRecord) Partition {
	vendorByKey := make(map[string][]int)
	for i, v := range vendors {
		if v.ReferenceKey == nil {
			continue
		}
		vendorByKey[*v.ReferenceKey] = append(vendorByKey[*v.ReferenceKey], i)
	}

	var p Partition
	hubCount := make(map[string]int)
	dupSeen := make(map[string]bool)
	markDup := func(key string) {
		if !dupSeen[key] {
			dupSeen[key] = true
			p.Duplicates = append(p.Duplicates, key)
		}
	}

	consumed := make(map[string]int)
	usedVendor := make([]bool, len(vendors))
	for _, h := range hubs {
		if h.ReferenceKey == nil {
			p.NotInVendor = append(p.NotInVendor, h)
			continue
		}
		key := *h.ReferenceKey
		hubCount[key]++
		if hubCount[key] > 1 {
			markDup(key)
		}
		queue, ok := vendorByKey[key]
		if !ok {
			p.NotInVendor = append(p.NotInVendor, h)
			continue
		}
		if len(queue) > 1 {
			markDup(key)
		}
		n := consumed[key]
		if n >= len(queue) {
			h.DataQuality = string(AnomalyDuplicateReference)
			p.NotInVendor = append(p.NotInVendor, h)
			continue
		}
		consumed[key] = n + 1
		usedVendor[queue[n]] = true
		p.Matched = append(p.Matched, domain.MatchedPair{Hub: h, Vendor: vendors[queue[n]], Category: domain.CategoryMatched})
	}

	for i, v := range vendors {
		if usedVendor[i] {
			continue
		}
		if v.ReferenceKey != nil {
			key := *v.ReferenceKey
			if len(vendorByKey[key]) > 1 {
				markDup(key)
			}
			if hubCount[key] > 0 {
				v.DataQuality = string(AnomalyDuplicateReference)
			}
		}
		p.NotInPortal = append(p.NotInPortal, v)
	}
	return p
}
