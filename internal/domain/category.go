package domain

// Category is an outcome label attached to every reconciled row.
type Category string

const (
	CategoryNotInVendor Category = "NOT_IN_VENDOR"
	CategoryNotInPortal Category = "NOT_IN_PORTAL"
	CategoryMatched     Category = "MATCHED"
	CategoryMismatched  Category = "MISMATCHED"
	CategoryCombined    Category = "COMBINED"

	// Vendor rows whose reference exists on the Hub outside the requested window.
	CategoryInPortalDiffDate Category = "IN_PORTAL_DIFF_DATE"

	// Matched pairs whose Hub transaction has no wallet-ledger movement.
	CategoryVendIHubSucNIL      Category = "VEND_IHUB_SUC-NIL"
	CategoryVendFailIHubSucNIL  Category = "VEND_FAIL_IHUB_SUC-NIL"
	CategoryVendSucIHubFailNIL  Category = "VEND_SUC_IHUB_FAIL-NIL"
	CategoryIHubFailVendFailNIL Category = "IHUB_FAIL_VEND_FAIL-NIL"
	CategoryIHubIntVendSucNIL   Category = "IHUB_INT_VEND_SUC-NIL"
	CategoryVendFailIHubIntNIL  Category = "VEND_FAIL_IHUB_INT-NIL"

	// Matched pairs confirmed in the wallet ledger.
	CategoryVendIHubSuc     Category = "VEND_IHUB_SUC"
	CategoryVendIHubFail    Category = "VEND_IHUB_FAIL"
	CategoryVendFailIHubSuc Category = "VEND_FAIL_IHUB_SUC"
	CategoryVendSucIHubFail Category = "VEND_SUC_IHUB_FAIL"
	CategoryIHubIntVendSuc  Category = "IHUB_INT_VEND_SUC"
	CategoryVendFailIHubInt Category = "VEND_FAIL_IHUB_INT"
)

// MismatchCategories lists, in output order, the buckets whose rows need
// attention. A run where all of them are empty is short-circuited.
var MismatchCategories = []Category{
	CategoryNotInVendor,
	CategoryNotInPortal,
	CategoryVendIHubSucNIL,
	CategoryVendFailIHubSucNIL,
	CategoryVendSucIHubFailNIL,
	CategoryIHubFailVendFailNIL,
	CategoryIHubIntVendSucNIL,
	CategoryVendFailIHubIntNIL,
	CategoryVendFailIHubSuc,
	CategoryVendSucIHubFail,
	CategoryIHubIntVendSuc,
	CategoryVendFailIHubInt,
}

// IsMismatch reports whether c is one of MismatchCategories.
func (c Category) IsMismatch() bool {
	for _, m := range MismatchCategories {
		if m == c {
			return true
		}
	}
	return false
}
