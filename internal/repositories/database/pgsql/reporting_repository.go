package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
	portsrepo "github.com/quantabooks/accounting_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface. All
// queries scan POSTED entries only; reversal entries are posted entries like
// any other and are deliberately included.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// normalSideNet flips the sign for credit-normal accounts so every statement
// reads amounts on the account's natural side.
const normalSideNet = `
	CASE WHEN a.account_type IN ('ASSET', 'EXPENSE', 'COST')
		THEN SUM(l.debit_amount - l.credit_amount)
		ELSE SUM(l.credit_amount - l.debit_amount)
	END
`

// GetTrialBalanceData retrieves per-account movement sums as of a date.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			SUM(l.debit_amount) AS debit_movements,
			SUM(l.credit_amount) AS credit_movements
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.status = 'POSTED'
			AND e.entry_date <= $1
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&row.AccountType,
			&row.DebitMovements,
			&row.CreditMovements,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}
		row.OpeningBalance = decimal.Zero
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}
	return result, nil
}

// GetBalanceSheetData retrieves per-account net amounts grouped by statement
// section as of a date.
func (r *reportingRepository) GetBalanceSheetData(ctx context.Context, asOf time.Time) (assets, liabilities, equity []domain.AccountAmount, err error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.code,
			a.name,
			` + normalSideNet + ` AS net_amount
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.status = 'POSTED'
			AND e.entry_date <= $1
			AND a.account_type IN ('ASSET', 'LIABILITY', 'EQUITY')
		GROUP BY a.account_type, a.account_id, a.code, a.name
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, asOf)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error querying balance sheet data: %w", err)
	}
	defer rows.Close()

	assets = []domain.AccountAmount{}
	liabilities = []domain.AccountAmount{}
	equity = []domain.AccountAmount{}
	for rows.Next() {
		var accountType domain.AccountType
		var amount domain.AccountAmount
		if err := rows.Scan(&accountType, &amount.AccountID, &amount.AccountCode, &amount.Name, &amount.NetAmount); err != nil {
			return nil, nil, nil, fmt.Errorf("error scanning balance sheet row: %w", err)
		}
		switch accountType {
		case domain.Asset:
			assets = append(assets, amount)
		case domain.Liability:
			liabilities = append(liabilities, amount)
		case domain.Equity:
			equity = append(equity, amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("error iterating balance sheet rows: %w", err)
	}
	return assets, liabilities, equity, nil
}

// GetIncomeStatementData retrieves net amounts per income and expense/cost
// account within a period.
func (r *reportingRepository) GetIncomeStatementData(ctx context.Context, from, to time.Time) (revenue, expenses []domain.AccountAmount, err error) {
	query := `
		SELECT
			a.account_type,
			a.account_id,
			a.code,
			a.name,
			` + normalSideNet + ` AS net_amount
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.status = 'POSTED'
			AND e.entry_date BETWEEN $1 AND $2
			AND a.account_type IN ('INCOME', 'EXPENSE', 'COST')
		GROUP BY a.account_type, a.account_id, a.code, a.name
		ORDER BY a.code;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying income statement data: %w", err)
	}
	defer rows.Close()

	revenue = []domain.AccountAmount{}
	expenses = []domain.AccountAmount{}
	for rows.Next() {
		var accountType domain.AccountType
		var amount domain.AccountAmount
		if err := rows.Scan(&accountType, &amount.AccountID, &amount.AccountCode, &amount.Name, &amount.NetAmount); err != nil {
			return nil, nil, fmt.Errorf("error scanning income statement row: %w", err)
		}
		if accountType == domain.Income {
			revenue = append(revenue, amount)
		} else {
			expenses = append(expenses, amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating income statement rows: %w", err)
	}
	return revenue, expenses, nil
}

// GetGeneralLedgerData retrieves per-account movements within a period plus
// the opening balance accumulated before it. Movements come back ordered by
// (entry_date, line_number); the service folds the running balances.
func (r *reportingRepository) GetGeneralLedgerData(ctx context.Context, from, to time.Time, accountIDs []string) ([]domain.GeneralLedgerAccount, error) {
	openings, err := r.openingBalances(ctx, from, accountIDs)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			e.entry_id,
			e.entry_number,
			e.entry_date,
			l.line_number,
			l.description,
			l.debit_amount,
			l.credit_amount
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.status = 'POSTED'
			AND e.entry_date BETWEEN $1 AND $2
			AND ($3::text[] IS NULL OR a.account_id = ANY($3))
		ORDER BY a.code, e.entry_date, l.line_number;
	`
	var filter []string
	if len(accountIDs) > 0 {
		filter = accountIDs
	}
	rows, err := r.Pool.Query(ctx, query, from, to, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying general ledger data: %w", err)
	}
	defer rows.Close()

	accounts := []domain.GeneralLedgerAccount{}
	indexByID := map[string]int{}
	for rows.Next() {
		var accountID, code, name string
		var accountType domain.AccountType
		var movement domain.LedgerMovement
		if err := rows.Scan(
			&accountID,
			&code,
			&name,
			&accountType,
			&movement.EntryID,
			&movement.EntryNumber,
			&movement.EntryDate,
			&movement.LineNumber,
			&movement.Description,
			&movement.Debit,
			&movement.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning general ledger row: %w", err)
		}

		idx, ok := indexByID[accountID]
		if !ok {
			opening, hasOpening := openings[accountID]
			if !hasOpening {
				opening = decimal.Zero
			}
			accounts = append(accounts, domain.GeneralLedgerAccount{
				AccountID:      accountID,
				AccountCode:    code,
				AccountName:    name,
				AccountType:    accountType,
				OpeningBalance: opening,
			})
			idx = len(accounts) - 1
			indexByID[accountID] = idx
		}
		accounts[idx].Movements = append(accounts[idx].Movements, movement)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating general ledger rows: %w", err)
	}
	return accounts, nil
}

// openingBalances nets all posted activity strictly before the period start,
// per account, on the account's normal side.
func (r *reportingRepository) openingBalances(ctx context.Context, from time.Time, accountIDs []string) (map[string]decimal.Decimal, error) {
	query := `
		SELECT
			a.account_id,
			` + normalSideNet + ` AS net_amount
		FROM journal_entry_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE e.status = 'POSTED'
			AND e.entry_date < $1
			AND ($2::text[] IS NULL OR a.account_id = ANY($2))
		GROUP BY a.account_id, a.account_type;
	`
	var filter []string
	if len(accountIDs) > 0 {
		filter = accountIDs
	}
	rows, err := r.Pool.Query(ctx, query, from, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying opening balances: %w", err)
	}
	defer rows.Close()

	openings := map[string]decimal.Decimal{}
	for rows.Next() {
		var accountID string
		var net decimal.Decimal
		if err := rows.Scan(&accountID, &net); err != nil {
			return nil, fmt.Errorf("error scanning opening balance row: %w", err)
		}
		openings[accountID] = net
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating opening balance rows: %w", err)
	}
	return openings, nil
}
