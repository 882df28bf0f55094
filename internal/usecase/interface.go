package usecase

import (
	"context"

	"payhub-reconciliation/internal/domain"
	"payhub-reconciliation/internal/rail"
)

// VendorFileReader reads the files a user uploads for a reconciliation.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go
type VendorFileReader interface {
	ReadVendorRows(ctx context.Context, file domain.Upload, cfg rail.Config, txnType string) ([]domain.RawVendorRow, error)
	ReadSettlements(ctx context.Context, file domain.Upload) ([]domain.Settlement, error)
	ReadLedgerEntries(ctx context.Context, file domain.Upload) ([]domain.LedgerEntry, error)
	ReadKeyedLedger(ctx context.Context, file domain.Upload, cols rail.KeyedLedger) ([]domain.KeyedEntry, error)
	ReadKeyedStatement(ctx context.Context, file domain.Upload, cols rail.KeyedLedger) ([]domain.KeyedEntry, error)
}

// LedgerSource provides the wallet-ledger summary of a date window.
type LedgerSource interface {
	FetchLedger(ctx context.Context, window domain.DateRange) ([]domain.RawLedgerRow, error)
}

// RailRegistry resolves rails by name.
type RailRegistry interface {
	Lookup(name string) (rail.Rail, bool)
	Names() []string
}
