package repositories

import (
	"context"
	"time"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
)

// ReportingRepository supplies the raw data for the financial statement
// aggregators. All queries scan POSTED entries only.
type ReportingRepository interface {
	// GetTrialBalanceData returns per-account debit/credit movements for
	// entries dated on or before asOf, ordered by account code. Closing
	// balances are computed by the service.
	GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error)

	// GetBalanceSheetData returns net normal-side amounts per account,
	// grouped into assets, liabilities and equity, as of the given date.
	GetBalanceSheetData(ctx context.Context, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error)

	// GetIncomeStatementData returns net normal-side amounts per income and
	// expense/cost account for entries dated within [from, to].
	GetIncomeStatementData(ctx context.Context, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error)

	// GetGeneralLedgerData returns per-account movements within [from, to],
	// ordered by (entry_date, line_number). Running balances and totals are
	// computed by the service. An empty accountIDs slice means all accounts
	// with movements.
	GetGeneralLedgerData(ctx context.Context, from, to time.Time, accountIDs []string) ([]domain.GeneralLedgerAccount, error)
}
