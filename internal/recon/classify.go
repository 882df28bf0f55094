package recon

import (
	"strings"

	"payhub-reconciliation/internal/domain"
)

type scenario struct {
	vendor    domain.CanonicalStatus
	hub       domain.CanonicalStatus
	confirmed bool
	category  domain.Category
}

// decisionTable is evaluated top to bottom; the first matching row wins.
var decisionTable = []scenario{
	{domain.StatusSuccess, domain.StatusSuccess, false, domain.CategoryVendIHubSucNIL},
	{domain.StatusFailed, domain.StatusSuccess, false, domain.CategoryVendFailIHubSucNIL},
	{domain.StatusSuccess, domain.StatusFailed, false, domain.CategoryVendSucIHubFailNIL},
	{domain.StatusFailed, domain.StatusFailed, false, domain.CategoryIHubFailVendFailNIL},
	{domain.StatusSuccess, domain.StatusPending, false, domain.CategoryIHubIntVendSucNIL},
	{domain.StatusFailed, domain.StatusPending, false, domain.CategoryVendFailIHubIntNIL},
	{domain.StatusSuccess, domain.StatusSuccess, true, domain.CategoryVendIHubSuc},
	{domain.StatusFailed, domain.StatusFailed, true, domain.CategoryVendIHubFail},
	{domain.StatusFailed, domain.StatusSuccess, true, domain.CategoryVendFailIHubSuc},
	{domain.StatusSuccess, domain.StatusFailed, true, domain.CategoryVendSucIHubFail},
	{domain.StatusSuccess, domain.StatusPending, true, domain.CategoryIHubIntVendSuc},
	{domain.StatusFailed, domain.StatusPending, true, domain.CategoryVendFailIHubInt},
}

// Classify returns the scenario category of a matched pair, or MATCHED when
// no row of the decision table applies.
func Classify(p domain.MatchedPair) domain.Category {
	for _, s := range decisionTable {
		if p.Vendor.Status.Canonical == s.vendor && p.Hub.Status.Canonical == s.hub && p.Hub.LedgerConfirmed == s.confirmed {
			return s.category
		}
	}
	return domain.CategoryMatched
}

// IsMismatched reports whether the two sides of a pair carry different status labels.
func IsMismatched(p domain.MatchedPair) bool {
	return !p.Hub.Status.SameLabel(p.Vendor.Status)
}

// Tally holds the success and failure counts over matched pairs.
type Tally struct {
	Success int
	Failed  int
}

// Count tallies matched pairs where both sides carry the success label or
// both carry the failed label. A vendor "timed out" also counts as failed
// when timedOutAsFailed is set; a Hub "timed out" never does.
func Count(pairs []domain.MatchedPair, timedOutAsFailed bool) Tally {
	var t Tally
	for _, p := range pairs {
		v, h := p.Vendor.Status, p.Hub.Status
		switch {
		case isLabel(v, domain.LabelSuccess) && isLabel(h, domain.LabelSuccess):
			t.Success++
		case isLabel(h, domain.LabelFailed):
			if isLabel(v, domain.LabelFailed) || (timedOutAsFailed && v.IsTimedOut()) {
				t.Failed++
			}
		}
	}
	return t
}

func isLabel(s domain.Status, label string) bool {
	return strings.EqualFold(strings.TrimSpace(s.Label), label)
}

// ClassifyAll sets the category of every pair and returns them.
func ClassifyAll(pairs []domain.MatchedPair) []domain.MatchedPair {
	out := make([]domain.MatchedPair, len(pairs))
	for i, p := range pairs {
		p.Category = Classify(p)
		out[i] = p
	}
	return out
}
