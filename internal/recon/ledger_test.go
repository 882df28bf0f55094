package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payhub-reconciliation/internal/domain"
)

func ledgerRow(ref string, txnID string, flags domain.LedgerFlags) domain.LedgerSummaryRow {
	r := domain.LedgerSummaryRow{ReferenceKey: ref, Flags: flags}
	if txnID != "" {
		id := txnID
		r.InternalTxnID = &id
	}
	return r
}

func TestFoldLedger(t *testing.T) {
	no := domain.AllNo()
	yesCommission := no
	yesCommission.CommissionCredit = domain.FlagYes
	yesDebit := no
	yesDebit.TransactionDebit = domain.FlagYes

	tests := []struct {
		name        string
		rows        []domain.LedgerSummaryRow
		want        []domain.LedgerSummaryRow
		wantDropped []string
	}{
		{
			name: "null-id duplicate folds into resolved row",
			rows: []domain.LedgerSummaryRow{
				ledgerRow("R1", "10", no),
				ledgerRow("R1", "", yesCommission),
			},
			want: []domain.LedgerSummaryRow{ledgerRow("R1", "10", yesCommission)},
		},
		{
			name: "null-id row before resolved row still folds",
			rows: []domain.LedgerSummaryRow{
				ledgerRow("R1", "", yesDebit),
				ledgerRow("R1", "", yesCommission),
				ledgerRow("R1", "10", no),
			},
			want: []domain.LedgerSummaryRow{ledgerRow("R1", "10", domain.LedgerFlags{
				TransactionCredit:  domain.FlagNo,
				TransactionDebit:   domain.FlagYes,
				CommissionCredit:   domain.FlagYes,
				CommissionReversal: domain.FlagNo,
			})},
		},
		{
			name: "yes is never downgraded by a null-id no",
			rows: []domain.LedgerSummaryRow{
				ledgerRow("R1", "10", yesCommission),
				ledgerRow("R1", "", no),
			},
			want: []domain.LedgerSummaryRow{ledgerRow("R1", "10", yesCommission)},
		},
		{
			name: "only null-id rows pass through",
			rows: []domain.LedgerSummaryRow{ledgerRow("R2", "", yesDebit)},
			want: []domain.LedgerSummaryRow{ledgerRow("R2", "", yesDebit)},
		},
		{
			name: "only resolved rows pass through",
			rows: []domain.LedgerSummaryRow{ledgerRow("R3", "1", no), ledgerRow("R4", "2", yesDebit)},
			want: []domain.LedgerSummaryRow{ledgerRow("R3", "1", no), ledgerRow("R4", "2", yesDebit)},
		},
		{
			name:        "several null-id rows without resolved row keep the first",
			rows:        []domain.LedgerSummaryRow{ledgerRow("R5", "", no), ledgerRow("R5", "", yesDebit)},
			want:        []domain.LedgerSummaryRow{ledgerRow("R5", "", no)},
			wantDropped: []string{"R5"},
		},
		{
			name:        "several resolved rows keep the first",
			rows:        []domain.LedgerSummaryRow{ledgerRow("R6", "1", no), ledgerRow("R6", "2", yesDebit)},
			want:        []domain.LedgerSummaryRow{ledgerRow("R6", "1", no)},
			wantDropped: []string{"R6"},
		},
		{
			name: "empty",
			rows: nil,
			want: []domain.LedgerSummaryRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := FoldLedger(tt.rows)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDropped, dropped)

			again, droppedAgain := FoldLedger(got)
			assert.Equal(t, got, again, "folding is idempotent")
			assert.Empty(t, droppedAgain)
		})
	}
}

func TestEnricher(t *testing.T) {
	flags := domain.LedgerFlags{TransactionCredit: domain.FlagYes, TransactionDebit: domain.FlagNo}
	withRef := hubRec("A1", 0, domain.StatusSuccess, true)
	withoutLedger := hubRec("B2", 1, domain.StatusSuccess, true)

	t.Run("known reference gets its flags", func(t *testing.T) {
		e := NewEnricher([]domain.LedgerSummaryRow{ledgerRow("H-A1", "1", flags)})
		assert.False(t, e.SourceEmpty())
		assert.Equal(t, flags, e.Apply(withRef).Ledger)
		assert.Equal(t, domain.LedgerFlags{}, e.Apply(withoutLedger).Ledger, "missing reference stays unknown")
	})

	t.Run("empty source defaults to no", func(t *testing.T) {
		e := NewEnricher(nil)
		assert.True(t, e.SourceEmpty())
		assert.Equal(t, domain.AllNo(), e.Apply(withRef).Ledger)
	})

	t.Run("partition enrichment covers matched and hub-only records", func(t *testing.T) {
		p := Match([]domain.HubRecord{withRef, withoutLedger}, []domain.VendorRecord{vendorRec("A1", 0, "success")})
		EnrichPartition(&p, NewEnricher([]domain.LedgerSummaryRow{
			ledgerRow("H-A1", "1", flags),
			ledgerRow("H-B2", "2", domain.AllNo()),
		}))
		require.Len(t, p.Matched, 1)
		require.Len(t, p.NotInVendor, 1)
		assert.Equal(t, flags, p.Matched[0].Hub.Ledger)
		assert.Equal(t, domain.AllNo(), p.NotInVendor[0].Ledger)
	})
}
