package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
	"payhub-reconciliation/internal/usecase"
	mock_usecase "payhub-reconciliation/internal/usecase/mocks"
)

var (
	from = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
)

func rechargeRail(hub rail.HubFetcher) rail.Rail {
	return rail.Rail{
		Config: rail.Config{
			Name:              "RECHARGE",
			RequiredColumns:   []string{"REFID"},
			HubStatusCodes:    map[string]string{"0": "initiated", "1": "success", "2": "failed"},
			VendorStatusCodes: map[string]string{"SUCCESS": "success", "FAILURE": "failed"},
		},
		Hub: hub,
	}
}

func hubRows(rows ...domain.RawHubRow) rail.FetchFunc {
	return func(context.Context, rail.Config, domain.DateRange) ([]domain.RawHubRow, error) {
		return rows, nil
	}
}

func TestReconciliationUseCase_Reconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vendorFile := domain.Upload{Name: "recharge.csv", Body: strings.NewReader("")}
	vendorReport := []domain.RawVendorRow{
		{Reference: "A1", Status: "FAILURE", Date: "2024-01-10", Amount: "100"},
		{Reference: "B2", Status: "SUCCESS", Date: "2024-01-11", Amount: "50"},
		{Reference: "C3", Status: "SUCCESS", Date: "2024-02-05", Amount: "10"},
		{Reference: "D4", Status: "SUCCESS", Date: "garbled-date", Amount: "10"},
	}
	hub := hubRows(
		domain.RawHubRow{HubReference: "IH1", VendorReference: "A1", MasterStatus: "1", LedgerStatus: "No", Amount: "100"},
		domain.RawHubRow{HubReference: "IH2", VendorReference: "B2", MasterStatus: "1", LedgerStatus: "Yes", Amount: "50"},
	)
	ledger := []domain.RawLedgerRow{{Reference: "IH1", InternalTxnID: "7", TransactionDebit: "Yes"}}

	tests := []struct {
		name       string
		rail       string
		setup      func(rails *mock_usecase.MockRailRegistry, files *mock_usecase.MockVendorFileReader, src *mock_usecase.MockLedgerSource)
		wantKind   domain.OutcomeKind
		wantMsg    string
		wantErr    error
		checkState func(t *testing.T, out *domain.Outcome)
	}{
		{
			name: "unknown rail",
			rail: "NOPE",
			setup: func(rails *mock_usecase.MockRailRegistry, _ *mock_usecase.MockVendorFileReader, _ *mock_usecase.MockLedgerSource) {
				rails.EXPECT().Lookup("NOPE").Return(rail.Rail{}, false)
			},
			wantKind: domain.OutcomeConfigError,
			wantMsg:  domain.MsgUnknownRail,
		},
		{
			name: "missing required column",
			rail: "RECHARGE",
			setup: func(rails *mock_usecase.MockRailRegistry, files *mock_usecase.MockVendorFileReader, _ *mock_usecase.MockLedgerSource) {
				rails.EXPECT().Lookup("RECHARGE").Return(rechargeRail(hub), true)
				files.EXPECT().ReadVendorRows(gomock.Any(), vendorFile, gomock.Any(), "").
					Return(nil, fmt.Errorf("%w: REFID", domain.ErrMissingColumn))
			},
			wantKind: domain.OutcomeConfigError,
			wantMsg:  domain.MsgWrongFile,
		},
		{
			name: "unreadable vendor file",
			rail: "RECHARGE",
			setup: func(rails *mock_usecase.MockRailRegistry, files *mock_usecase.MockVendorFileReader, _ *mock_usecase.MockLedgerSource) {
				rails.EXPECT().Lookup("RECHARGE").Return(rechargeRail(hub), true)
				files.EXPECT().ReadVendorRows(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("zip: not a valid zip file"))
			},
			wantErr: errors.New("could not read vendor report: zip: not a valid zip file"),
		},
		{
			name: "no vendor records in window",
			rail: "RECHARGE",
			setup: func(rails *mock_usecase.MockRailRegistry, files *mock_usecase.MockVendorFileReader, _ *mock_usecase.MockLedgerSource) {
				rails.EXPECT().Lookup("RECHARGE").Return(rechargeRail(hub), true)
				files.EXPECT().ReadVendorRows(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]domain.RawVendorRow{{Reference: "X", Date: "2023-12-31"}}, nil)
			},
			wantKind: domain.OutcomeNoRecords,
			wantMsg:  domain.MsgNoRecords,
		},
		{
			name: "ledger source failure aborts the run",
			rail: "RECHARGE",
			setup: func(rails *mock_usecase.MockRailRegistry, files *mock_usecase.MockVendorFileReader, src *mock_usecase.MockLedgerSource) {
				rails.EXPECT().Lookup("RECHARGE").Return(rechargeRail(hub), true)
				files.EXPECT().ReadVendorRows(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(vendorReport, nil)
				src.EXPECT().FetchLedger(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: fetch ledger summary: connection refused", domain.ErrDataSource))
			},
			wantErr: domain.ErrDataSource,
		},
		{
			name: "mismatches are reported",
			rail: "RECHARGE",
			setup: func(rails *mock_usecase.MockRailRegistry, files *mock_usecase.MockVendorFileReader, src *mock_usecase.MockLedgerSource) {
				rails.EXPECT().Lookup("RECHARGE").Return(rechargeRail(hub), true)
				files.EXPECT().ReadVendorRows(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(vendorReport, nil)
				src.EXPECT().FetchLedger(gomock.Any(), domain.DateRange{From: from, To: to}).Return(ledger, nil)
			},
			wantKind: domain.OutcomeResult,
			checkState: func(t *testing.T, out *domain.Outcome) {
				require.NotNil(t, out.Result)
				assert.NotEmpty(t, out.Result.RunID)
				counts := out.Result.Counts
				assert.Equal(t, 4, counts.VendorCount, "rows outside the window or without a readable date are reconciled too")
				assert.Equal(t, 2, counts.HubCount)
				require.Len(t, out.Result.Buckets[domain.CategoryVendFailIHubSucNIL], 1)
				assert.Equal(t, "Yes", out.Result.Buckets[domain.CategoryVendFailIHubSucNIL][0]["TRANSACTION_DEBIT"])

				portal := out.Result.Buckets[domain.CategoryNotInPortal]
				require.Len(t, portal, 2)
				assert.Equal(t, "C3", portal[0]["REFID"])
				assert.Equal(t, "2024-02-05", portal[0]["VENDOR_DATE"])
				assert.Equal(t, "D4", portal[1]["REFID"])
				assert.Nil(t, portal[1]["VENDOR_DATE"])
				assert.Equal(t, counts.VendorCount, counts.MatchedCount+len(portal))
				assert.Equal(t, counts.HubCount, counts.MatchedCount+len(out.Result.Buckets[domain.CategoryNotInVendor]))
				assert.Contains(t, strings.Join(out.Result.Notes, "\n"), "garbled-date")
				assert.Len(t, out.Result.Buckets[domain.CategoryCombined], 3)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rails := mock_usecase.NewMockRailRegistry(ctrl)
			files := mock_usecase.NewMockVendorFileReader(ctrl)
			src := mock_usecase.NewMockLedgerSource(ctrl)
			tt.setup(rails, files, src)

			uc := usecase.NewReconciliationUseCase(rails, files, src, nil, nil)
			got, err := uc.Reconcile(context.Background(), usecase.Request{
				Rail:       tt.rail,
				From:       from,
				To:         to.Add(15 * time.Hour),
				VendorFile: vendorFile,
			})

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)
				if errors.Is(tt.wantErr, domain.ErrDataSource) {
					assert.ErrorIs(t, err, domain.ErrDataSource)
				} else {
					assert.EqualError(t, err, tt.wantErr.Error())
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, got.Kind)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, got.Message)
			}
			if tt.checkState != nil {
				tt.checkState(t, got)
			}
		})
	}
}

func TestReconciliationUseCase_Reconcile_HubFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failing := rail.FetchFunc(func(context.Context, rail.Config, domain.DateRange) ([]domain.RawHubRow, error) {
		return nil, fmt.Errorf("%w: fetch hub records: timeout", domain.ErrDataSource)
	})
	rails := mock_usecase.NewMockRailRegistry(ctrl)
	files := mock_usecase.NewMockVendorFileReader(ctrl)
	src := mock_usecase.NewMockLedgerSource(ctrl)
	rails.EXPECT().Lookup("RECHARGE").Return(rechargeRail(failing), true)
	files.EXPECT().ReadVendorRows(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.RawVendorRow{{Reference: "A1", Date: "2024-01-02"}}, nil)
	src.EXPECT().FetchLedger(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	uc := usecase.NewReconciliationUseCase(rails, files, src, nil, nil)
	got, err := uc.Reconcile(context.Background(), usecase.Request{Rail: "RECHARGE", From: from, To: to})

	assert.Nil(t, got, "no partial result")
	assert.ErrorIs(t, err, domain.ErrDataSource)
	assert.Contains(t, err.Error(), "could not get hub records")
}

func TestReconciliationUseCase_Reconcile_ShortCircuit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rails := mock_usecase.NewMockRailRegistry(ctrl)
	files := mock_usecase.NewMockVendorFileReader(ctrl)
	src := mock_usecase.NewMockLedgerSource(ctrl)
	rails.EXPECT().Lookup("RECHARGE").Return(rechargeRail(hubRows(
		domain.RawHubRow{HubReference: "IH1", VendorReference: "A1", MasterStatus: "1", LedgerStatus: "Yes"},
	)), true)
	// undated reports are not filtered by window
	files.EXPECT().ReadVendorRows(gomock.Any(), gomock.Any(), gomock.Any(), "2").
		Return([]domain.RawVendorRow{{Reference: "A1", Status: "SUCCESS"}}, nil)
	src.EXPECT().FetchLedger(gomock.Any(), gomock.Any()).Return(nil, nil)

	uc := usecase.NewReconciliationUseCase(rails, files, src, nil, nil)
	got, err := uc.Reconcile(context.Background(), usecase.Request{Rail: "RECHARGE", TransactionType: "2", From: from, To: to})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeResult, got.Kind)
	assert.Equal(t, domain.MsgNoMismatch, got.Message)
	assert.True(t, got.Result.ShortCircuit)
	assert.Equal(t, 1, got.Result.Counts.SuccessCount)
}

func presenceRail(lookup rail.HubLookup) rail.Rail {
	return rail.Rail{
		Config: rail.Config{
			Name:            "SULTANPURSCA",
			RequiredColumns: []string{"Application ID"},
			DateLayouts:     []string{"02/01/2006"},
			DayFirst:        true,
			Flow:            rail.FlowPresence,
		},
		Hub: hubRows(
			domain.RawHubRow{HubReference: "IH1", VendorReference: "APP-1", ServiceDate: "2024-01-05"},
			domain.RawHubRow{HubReference: "IH2", VendorReference: "APP-9", ServiceDate: "2024-01-06"},
		),
		Lookup: lookup,
	}
}

func TestReconciliationUseCase_Reconcile_Presence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var lookedUp []string
	lookup := rail.LookupFunc(func(_ context.Context, cfg rail.Config, refs []string) ([]domain.RawHubRow, error) {
		lookedUp = refs
		return []domain.RawHubRow{{HubReference: "IH0", VendorReference: "APP-2", ServiceDate: "2023-12-28"}}, nil
	})
	rails := mock_usecase.NewMockRailRegistry(ctrl)
	files := mock_usecase.NewMockVendorFileReader(ctrl)
	src := mock_usecase.NewMockLedgerSource(ctrl)
	rails.EXPECT().Lookup("SULTANPURSCA").Return(presenceRail(lookup), true)
	files.EXPECT().ReadVendorRows(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.RawVendorRow{
			{Reference: "APP-1", Date: "05/01/2024"},
			{Reference: "APP-2", Date: "06/01/2024"},
			{Reference: "APP-3", Date: "01/03/2024"},
		}, nil)

	uc := usecase.NewReconciliationUseCase(rails, files, src, nil, nil)
	got, err := uc.Reconcile(context.Background(), usecase.Request{Rail: "SULTANPURSCA", From: from, To: to})

	require.NoError(t, err)
	require.Equal(t, domain.OutcomeResult, got.Kind)
	assert.Equal(t, []string{"APP-2", "APP-3"}, lookedUp)

	res := got.Result
	assert.False(t, res.ShortCircuit)
	assert.Empty(t, res.Message)
	require.Len(t, res.Buckets[domain.CategoryMatched], 1)
	assert.Equal(t, "APP-1", res.Buckets[domain.CategoryMatched][0]["REFID"])
	require.Len(t, res.Buckets[domain.CategoryInPortalDiffDate], 1)
	assert.Equal(t, "2023-12-28", res.Buckets[domain.CategoryInPortalDiffDate][0]["SERVICE_DATE"])
	require.Len(t, res.Buckets[domain.CategoryNotInPortal], 1)
	assert.Equal(t, "APP-3", res.Buckets[domain.CategoryNotInPortal][0]["REFID"])
	assert.Equal(t, domain.Counts{HubCount: 3, VendorCount: 3, MatchedCount: 1, SuccessCount: 2, FailedCount: 2}, res.Counts)
}

func TestReconciliationUseCase_Reconcile_PresenceLookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	lookup := rail.LookupFunc(func(context.Context, rail.Config, []string) ([]domain.RawHubRow, error) {
		return nil, fmt.Errorf("%w: look up hub records: timeout", domain.ErrDataSource)
	})
	rails := mock_usecase.NewMockRailRegistry(ctrl)
	files := mock_usecase.NewMockVendorFileReader(ctrl)
	rails.EXPECT().Lookup("SULTANPURSCA").Return(presenceRail(lookup), true)
	files.EXPECT().ReadVendorRows(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.RawVendorRow{{Reference: "APP-7", Date: "05/01/2024"}}, nil)

	uc := usecase.NewReconciliationUseCase(rails, files, mock_usecase.NewMockLedgerSource(ctrl), nil, nil)
	got, err := uc.Reconcile(context.Background(), usecase.Request{Rail: "SULTANPURSCA", From: from, To: to})

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrDataSource)
	assert.Contains(t, err.Error(), "could not recheck vendor references")
}

func TestReconciliationUseCase_Rails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rails := mock_usecase.NewMockRailRegistry(ctrl)
	rails.EXPECT().Names().Return([]string{"AEPS", "BBPS"})

	uc := usecase.NewReconciliationUseCase(rails, nil, nil, nil, nil)
	assert.Equal(t, []string{"AEPS", "BBPS"}, uc.Rails())
}
