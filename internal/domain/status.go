package domain

import "strings"

// CanonicalStatus is the rail-independent status group a record is classified by.
type CanonicalStatus string

const (
	StatusSuccess CanonicalStatus = "SUCCESS"
	StatusFailed  CanonicalStatus = "FAILED"
	StatusPending CanonicalStatus = "PENDING"
	StatusUnknown CanonicalStatus = "UNKNOWN"
)

// Status labels produced by the per-rail status tables.
const (
	LabelSuccess        = "success"
	LabelFailed         = "failed"
	LabelTimedOut       = "timed out"
	LabelInitiated      = "initiated"
	LabelInProgress     = "inprogress"
	LabelPending        = "pending"
	LabelPartialSuccess = "partial success"
)

var labelGroups = map[string]CanonicalStatus{
	LabelSuccess:    StatusSuccess,
	LabelFailed:     StatusFailed,
	LabelTimedOut:   StatusFailed,
	LabelInitiated:  StatusPending,
	LabelInProgress: StatusPending,
	LabelPending:    StatusPending,
}

// Status is a mapped status value. Label holds the mapped label, or the raw
// value itself when the status table had no entry for it (Unmapped is then set).
// An empty Label means the source carried no status at all.
type Status struct {
	Canonical CanonicalStatus
	Label     string
	Unmapped  bool
}

// NewStatus builds a Status for a label, grouping it into its canonical status.
func NewStatus(label string, unmapped bool) Status {
	return Status{Canonical: GroupOf(label), Label: label, Unmapped: unmapped}
}

// GroupOf returns the canonical group of a status label, case-insensitively.
func GroupOf(label string) CanonicalStatus {
	if g, ok := labelGroups[strings.ToLower(strings.TrimSpace(label))]; ok {
		return g
	}
	return StatusUnknown
}

// IsKnownLabel reports whether label is one of the recognised status names.
func IsKnownLabel(label string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	if l == LabelPartialSuccess {
		return true
	}
	_, ok := labelGroups[l]
	return ok
}

// IsEmpty reports whether no status was present.
func (s Status) IsEmpty() bool { return s.Label == "" }

// IsTimedOut reports whether the label is the vendor "timed out" state.
func (s Status) IsTimedOut() bool { return strings.EqualFold(s.Label, LabelTimedOut) }

// SameLabel compares two statuses case-insensitively on their labels.
func (s Status) SameLabel(o Status) bool { return strings.EqualFold(s.Label, o.Label) }
