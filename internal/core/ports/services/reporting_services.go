package services

import (
	"context"
	"time"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
)

// ReportingSvcFacade is the read-only statement surface. All reports scan
// posted entries only and are recomputed on every call.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)
	BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error)
	GeneralLedger(ctx context.Context, from, to time.Time, accountIDs []string) (*domain.GeneralLedgerReport, error)
	FinancialRatios(ctx context.Context, asOf time.Time, from, to time.Time) (*domain.FinancialRatios, error)
}
