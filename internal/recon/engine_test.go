package recon

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
)

func testRail() rail.Config {
	return rail.Config{
		Name:               "RECHARGE",
		HubStatusCodes:     map[string]string{"0": "initiated", "1": "success", "2": "failed"},
		ServiceStatusCodes: map[string]string{"1": "success", "2": "failed"},
		VendorStatusCodes:  map[string]string{"SUCCESS": "success", "FAILURE": "failed"},
		TenantNames:        map[string]string{"1": "INET-CSC"},
	}
}

func hubRow(hubRef, vendorRef, status, ledger string) domain.RawHubRow {
	return domain.RawHubRow{
		HubReference:    hubRef,
		TenantID:        "1",
		VendorReference: vendorRef,
		MasterStatus:    status,
		ServiceStatus:   status,
		Amount:          "100",
		ServiceDate:     "2024-01-10",
		LedgerStatus:    ledger,
	}
}

func TestEngine_Run_Mismatches(t *testing.T) {
	in := Input{
		RunID: "run-1",
		Rail:  testRail(),
		Hub: []domain.RawHubRow{
			hubRow("IH1", "A1", "1", "No"),
			hubRow("IH2", "B2", "1", "Yes"),
			hubRow("IH3", "C3", "2", "Yes"),
		},
		Vendor: []domain.RawVendorRow{
			{Reference: "A1", Status: "FAILURE", Date: "2024-01-10", Amount: "100.0004"},
			{Reference: "B2", Status: "SUCCESS", Date: "2024-01-10", Amount: "100"},
			{Reference: "Z9", Status: "SUCCESS", Date: "2024-01-10", Amount: "7"},
		},
		Ledger: []domain.RawLedgerRow{
			{Reference: "IH1", InternalTxnID: "11", TransactionCredit: "Yes", TransactionDebit: "No", CommissionCredit: "No", CommissionReversal: "No"},
			{Reference: "IH1", CommissionCredit: "Yes"},
		},
	}

	res := NewEngine(nil).Run(in)

	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, "RECHARGE", res.Rail)
	assert.False(t, res.ShortCircuit)
	assert.Empty(t, res.Message)
	assert.Equal(t, domain.Counts{
		HubCount:        3,
		VendorCount:     3,
		MatchedCount:    2,
		MismatchedCount: 1,
		SuccessCount:    1,
		FailedCount:     0,
	}, res.Counts)

	nil1 := res.Buckets[domain.CategoryVendFailIHubSucNIL]
	require.Len(t, nil1, 1)
	row := nil1[0]
	assert.Equal(t, "A1", row[ColReference])
	assert.Equal(t, "IH1", row[ColHubReference])
	assert.Equal(t, "INET-CSC", row[ColTenantID])
	assert.Equal(t, "failed", row[ColVendorStatus])
	assert.Equal(t, "success", row[ColHubStatus])
	assert.Equal(t, "success", row["RECHARGE_STATUS"])
	assert.Equal(t, json.Number("100.000"), row[ColAmount])
	assert.Equal(t, json.Number("100.000"), row[ColVendorAmount])
	assert.Equal(t, "No", row[ColLedgerStatus])
	assert.Equal(t, "Yes", row[ColTransactionCredit])
	assert.Equal(t, "Yes", row[ColCommissionCredit], "null-id ledger row folds in")
	assert.Equal(t, "No", row[ColCommissionReversal])
	assert.Nil(t, row[ColCommissionAmount])
	assert.Nil(t, row[ColBillFetchStatus])
	assert.Equal(t, "2024-01-10", row[ColVendorDate])
	assert.Equal(t, string(domain.CategoryVendFailIHubSucNIL), row[ColCategory])

	assert.Len(t, res.Buckets[domain.CategoryVendIHubSuc], 1)
	assert.Len(t, res.Buckets[domain.CategoryMatched], 2)
	assert.Len(t, res.Buckets[domain.CategoryMismatched], 1)

	notInVendor := res.Buckets[domain.CategoryNotInVendor]
	require.Len(t, notInVendor, 1)
	assert.Equal(t, "IH3", notInVendor[0][ColHubReference])
	assert.Nil(t, notInVendor[0][ColTransactionCredit], "hub reference without ledger row stays unknown")

	notInPortal := res.Buckets[domain.CategoryNotInPortal]
	require.Len(t, notInPortal, 1)
	assert.Equal(t, json.Number("7.000"), notInPortal[0][ColAmount])
	assert.Nil(t, notInPortal[0][ColHubReference])

	combined := res.Buckets[domain.CategoryCombined]
	assert.Len(t, combined, 3)
	assert.Equal(t, string(domain.CategoryNotInVendor), combined[0][ColCategory])
	assert.Equal(t, string(domain.CategoryNotInPortal), combined[1][ColCategory])
	assert.Equal(t, string(domain.CategoryVendFailIHubSucNIL), combined[2][ColCategory])

	for _, c := range domain.MismatchCategories {
		_, ok := res.Buckets[c]
		assert.True(t, ok, "bucket %s present", c)
	}
}

func TestEngine_Run_ShortCircuit(t *testing.T) {
	in := Input{
		RunID: "run-2",
		Rail:  testRail(),
		Hub: []domain.RawHubRow{
			hubRow("IH1", "A1", "1", "Yes"),
			hubRow("IH2", "B2", "2", "Yes"),
		},
		Vendor: []domain.RawVendorRow{
			{Reference: "A1", Status: "SUCCESS", Amount: "10"},
			{Reference: "B2", Status: "FAILURE", Amount: "10"},
		},
	}

	res := NewEngine(nil).Run(in)

	assert.True(t, res.ShortCircuit)
	assert.Equal(t, domain.MsgNoMismatch, res.Message)
	assert.Len(t, res.Buckets, 2)
	assert.Len(t, res.Buckets[domain.CategoryVendIHubSuc], 1)
	assert.Len(t, res.Buckets[domain.CategoryVendIHubFail], 1)
	assert.Equal(t, 1, res.Counts.SuccessCount)
	assert.Equal(t, 1, res.Counts.FailedCount)

	// empty ledger source defaults every flag to No
	row := res.Buckets[domain.CategoryVendIHubSuc][0]
	assert.Equal(t, "No", row[ColTransactionCredit])
	assert.Contains(t, res.Notes, "LEDGER_SUMMARY_EMPTY: 1 ledger occurrence(s), first \"\"")
}

func TestEngine_Run_DuplicatesAndNotes(t *testing.T) {
	in := Input{
		Rail: testRail(),
		Hub:  []domain.RawHubRow{hubRow("IH1", "D", "1", "Yes")},
		Vendor: []domain.RawVendorRow{
			{Reference: "D", Status: "SUCCESS", Amount: "1"},
			{Reference: "D", Status: "PROCESSING", Amount: "x"},
		},
		Ledger: []domain.RawLedgerRow{{Reference: "IH1", InternalTxnID: "1"}},
	}

	res := NewEngine(nil).Run(in)

	portal := res.Buckets[domain.CategoryNotInPortal]
	require.Len(t, portal, 1)
	assert.Equal(t, string(AnomalyDuplicateReference), portal[0][ColDataQuality])
	assert.Equal(t, ZeroAmount, portal[0][ColVendorAmount])
	assert.Equal(t, "PROCESSING", portal[0][ColVendorStatus])

	assert.Equal(t, res.Counts.VendorCount, res.Counts.MatchedCount+len(portal))
	assert.Len(t, res.Notes, 3)
}

func TestEngine_Run_Empty(t *testing.T) {
	res := NewEngine(nil).Run(Input{Rail: testRail()})
	assert.True(t, res.IsEmpty())
	assert.True(t, res.ShortCircuit)
}

func TestEngine_RunCommission(t *testing.T) {
	res := NewEngine(nil).RunCommission("run-3", "AEPS",
		[]domain.Settlement{settlement(100, "S1", "300"), settlement(100, "S2", "200"), settlement(300, "S3", "1")},
		[]domain.LedgerEntry{entry(100, "500", "debit"), entry(101, "2.5", "credit"), entry(400, "9", "credit")},
	)

	assert.Equal(t, domain.LedgerCounts{
		LedgerCount:       3,
		StatementCount:    3,
		MatchedCount:      2,
		FailedCount:       2,
		LedgerCreditCount: 2,
	}, res.Counts)
	assert.Empty(t, res.Message)

	matched := res.Buckets[BucketMatching]
	require.Len(t, matched, 2)
	assert.Equal(t, "101", matched[0][ColCommissionSNO])
	assert.Equal(t, json.Number("2.500"), matched[0][ColCommissionLedger])
	assert.Equal(t, json.Number("500.000"), matched[0][ColAmountLedger])
	assert.Equal(t, json.Number("300.000"), matched[0][ColAmountStatement])

	require.Len(t, res.Buckets[BucketNotInStatement], 1)
	assert.Equal(t, "400", res.Buckets[BucketNotInStatement][0][ColSettledID])
	require.Len(t, res.Buckets[BucketNotInLedger], 1)
	assert.Equal(t, "S3", res.Buckets[BucketNotInLedger][0][ColSerialNumber])
}

func TestEngine_RunCommission_Clean(t *testing.T) {
	res := NewEngine(nil).RunCommission("run-4", "AEPS",
		[]domain.Settlement{settlement(1, "S1", "10")},
		[]domain.LedgerEntry{entry(1, "10", "debit")},
	)
	assert.Equal(t, domain.MsgLedgerClean, res.Message)
	assert.Empty(t, res.Buckets[BucketAmountMismatch])
}

func TestEngine_RunStatement(t *testing.T) {
	amt := decimal.NewFromInt(10)
	other := decimal.NewFromInt(11)
	res := NewEngine(nil).RunStatement("run-5", "BBPS",
		[]domain.KeyedEntry{
			{Reference: "KM1", Amount: &amt},
			{Reference: "KM2", Amount: &amt},
			{Reference: "KM3", Amount: &amt, Credit: true},
		},
		[]domain.KeyedEntry{
			{Reference: "KM1", Amount: &amt},
			{Reference: "KM2", Amount: &other},
		},
	)

	assert.Equal(t, domain.LedgerCounts{
		LedgerCount:       3,
		StatementCount:    2,
		MatchedCount:      1,
		FailedCount:       1,
		LedgerCreditCount: 1,
	}, res.Counts)
	require.Len(t, res.Buckets[BucketAmountMismatch], 1)
	mm := res.Buckets[BucketAmountMismatch][0]
	assert.Equal(t, "KM2", mm[ColTransRefID])
	assert.Equal(t, json.Number("10.000"), mm[ColAmountLedger])
	assert.Equal(t, json.Number("11.000"), mm[ColAmountStatement])
	require.Len(t, res.Buckets[BucketLedgerCredits], 1)
	assert.Nil(t, res.Buckets[BucketLedgerCredits][0][ColAmountStatement])
}
